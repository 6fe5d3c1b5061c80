package account

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrNotFound           = errors.New("account not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type (
	Repository interface {
		CreateAccount(ctx context.Context, acct Account) (Account, error)
		GetAccountByID(ctx context.Context, id string) (Account, error)
		GetAccountByEmail(ctx context.Context, email string) (Account, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new Account. The email must not be taken; a duplicate
// yields ErrEmailExists.
func (svc *Service) Register(ctx context.Context, na NewAccount) (Account, error) {
	if _, err := svc.repo.GetAccountByEmail(ctx, na.Email); err == nil {
		return Account{}, ErrEmailExists
	} else if errors.Cause(err) != ErrNotFound {
		return Account{}, errors.Wrap(err, "checking email uniqueness")
	}

	now := time.Now().UTC()
	acct := Account{
		ID:        uuid.New().String(),
		Email:     na.Email,
		Role:      na.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := acct.SetPassword(na.Password); err != nil {
		return Account{}, errors.Wrap(err, "hashing password")
	}
	return svc.repo.CreateAccount(ctx, acct)
}

// Authenticate checks the credentials against the stored hash.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (svc *Service) Authenticate(ctx context.Context, email, password string) (Account, error) {
	acct, err := svc.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, errors.Wrap(err, "finding account by email")
	}
	if err := acct.CheckPassword(password); err != nil {
		return Account{}, ErrInvalidCredentials
	}
	return acct, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Account, error) {
	return svc.repo.GetAccountByID(ctx, id)
}
