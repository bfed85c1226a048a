package service

import (
	"context"
	"fmt"
	"time"

	"github.com/farmlog/farm-records/internal/core/domain"
	"github.com/farmlog/farm-records/internal/core/ports"
)

const defaultLookupTimeout = 3 * time.Second

// PrincipalResolver loads the account behind a token subject. It only reads.
type PrincipalResolver struct {
	repo    ports.AccountRepository
	timeout time.Duration
}

func NewPrincipalResolver(repo ports.AccountRepository, timeout time.Duration) *PrincipalResolver {
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	return &PrincipalResolver{repo: repo, timeout: timeout}
}

// Resolve fails with domain.ErrAccountNotFound or domain.ErrAccountDeleted
// when the subject cannot authenticate.
func (r *PrincipalResolver) Resolve(ctx context.Context, subject string) (*domain.Principal, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	account, err := r.repo.FindByUsername(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("resolve principal: %w", err)
	}
	if account.Deleted() {
		return nil, domain.ErrAccountDeleted
	}
	return account.Principal(), nil
}
