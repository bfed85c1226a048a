package ports

import (
	"context"

	"github.com/farmlog/farm-records/internal/core/domain"
)

// AccountRepository defines persistence operations for member accounts.
type AccountRepository interface {
	// FindByUsername returns the account including soft-deleted ones; callers
	// decide how to treat DeletedAt.
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SoftDelete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Account, error)
}
