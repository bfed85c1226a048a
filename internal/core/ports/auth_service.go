package ports

import (
	"context"
	"time"

	"github.com/farmlog/farm-records/internal/core/domain"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Username             string
	Password             string
	PasswordConfirmation string
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
	Principal        *domain.Principal
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

// PrincipalResolver turns a verified token subject into a Principal.
type PrincipalResolver interface {
	Resolve(ctx context.Context, subject string) (*domain.Principal, error)
}
