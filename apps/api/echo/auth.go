package echoapi

import (
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/upliftai/backend/core"
	"github.com/upliftai/backend/core/account"
)

// accountTokenKey is where the JWT middleware stores the parsed token.
const accountTokenKey = "accountToken"

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

func (c Claims) IsStaff() bool { return c.Role == account.RoleStaff }

func GetAccountClaims(conf *core.Config, acct account.Account) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   acct.ID,
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email: acct.Email,
		Role:  acct.Role,
	}
}

// GenerateToken generates a signed JWT token string representing the account Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    accountTokenKey,
		Claims:        new(Claims),
	}
}

// newJWTMiddleware rejects requests without a valid bearer token.
func newJWTMiddleware(conf *core.Config) echo.MiddlewareFunc {
	return middleware.JWTWithConfig(newJWTConfig(conf))
}

// optionalAuthMiddleware attaches claims when a valid bearer token is present
// and lets anonymous (or badly-authed) requests through untouched.
func optionalAuthMiddleware(conf *core.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			auth := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if strings.HasPrefix(auth, "Bearer ") {
				claims := new(Claims)
				token, err := jwt.ParseWithClaims(
					strings.TrimPrefix(auth, "Bearer "), claims,
					func(t *jwt.Token) (interface{}, error) {
						if t.Method.Alg() != middleware.AlgorithmHS256 {
							return nil, errors.Errorf("unexpected signing method %q", t.Method.Alg())
						}
						return []byte(conf.SecretKey), nil
					},
				)
				if err == nil && token.Valid {
					ctx.Set(accountTokenKey, token)
				}
			}
			return next(ctx)
		}
	}
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(accountTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// contextUserID returns the authenticated account ID, or "" for anonymous
// requests on optional-auth routes.
func contextUserID(ctx echo.Context) string {
	if claims, err := getContextClaims(ctx); err == nil {
		return claims.Subject
	}
	return ""
}
