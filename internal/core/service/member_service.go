package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/farmlog/farm-records/internal/core/domain"
	"github.com/farmlog/farm-records/internal/core/ports"
)

type MemberService struct {
	repo   ports.AccountRepository
	hasher ports.PasswordHasher
	logger zerolog.Logger
}

func NewMemberService(repo ports.AccountRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *MemberService {
	return &MemberService{repo: repo, hasher: hasher, logger: logger}
}

// Get returns a live account. Soft-deleted accounts are reported missing.
func (s *MemberService) Get(ctx context.Context, id int64) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	if account.Deleted() {
		return nil, domain.ErrMemberNotFound
	}
	return account, nil
}

func (s *MemberService) List(ctx context.Context) ([]*domain.Account, error) {
	return s.repo.List(ctx)
}

// ChangePassword replaces the password after checking the current one.
func (s *MemberService) ChangePassword(ctx context.Context, id int64, current, next string) error {
	account, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(current, account.PasswordHash) {
		return domain.ErrWrongCurrentPassword
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}
	s.logger.Info().Int64("principal_id", id).Msg("password changed")
	return nil
}

// Delete soft-deletes the account. Tokens already issued for it stop
// authenticating on their next use.
func (s *MemberService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("principal_id", id).Msg("account deleted")
	return nil
}

// OwnerOf is the owner lookup for member records: a live member owns itself.
func (s *MemberService) OwnerOf(ctx context.Context, id int64) (int64, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return 0, err
	}
	return id, nil
}
