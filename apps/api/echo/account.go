package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/upliftai/backend/core/account"
)

type (
	authApi struct {
		deps ServerDeps
	}

	RegisterResponse struct {
		OK     bool   `json:"ok"`
		UserID string `json:"userId"`
		Role   string `json:"role"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
		Email string `json:"email"`
	}
)

func registerAccountAPI(e *echo.Echo, deps ServerDeps) {
	api := authApi{deps: deps}

	g := e.Group("/auth")
	g.POST("/register", api.register)
	g.POST("/login", api.login)
}

func (api *authApi) register(ctx echo.Context) error {
	var data account.NewAccount
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAccount")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	acct, err := api.deps.AccountSvc.Register(ctx.Request().Context(), data)
	if err != nil {
		if errors.Cause(err) == account.ErrEmailExists {
			return errEmailTaken
		}
		return errors.Wrap(err, "registering account")
	}

	return ctx.JSON(http.StatusCreated, RegisterResponse{OK: true, UserID: acct.ID, Role: acct.Role})
}

func (api *authApi) login(ctx echo.Context) error {
	var data account.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	acct, err := api.deps.AccountSvc.Authenticate(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		if errors.Cause(err) == account.ErrInvalidCredentials {
			return errInvalidCredentials
		}
		return errors.Wrap(err, "authenticating")
	}

	token, err := GenerateToken(api.deps.Conf, GetAccountClaims(api.deps.Conf, acct))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Role: acct.Role, Email: acct.Email})
}
