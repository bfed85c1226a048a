package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/farmlog/farm-records/internal/core/domain"
	"github.com/farmlog/farm-records/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo     ports.AccountRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	throttle ports.LoginThrottle
	log      zerolog.Logger
}

func NewAuthService(
	repo ports.AccountRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	throttle ports.LoginThrottle,
	log zerolog.Logger,
) *AuthService {
	if throttle == nil {
		throttle = noThrottle{}
	}
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, throttle: throttle, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if in.Password != in.PasswordConfirmation {
		return nil, domain.ErrPasswordMismatch
	}
	return s.create(ctx, username, in.Password, domain.RoleUser)
}

// EnsureAdmin creates an ADMIN account named username unless an account with
// that name already exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return err
	}

	if _, err := s.create(ctx, username, password, domain.RoleAdmin); err != nil && !errors.Is(err, domain.ErrUserExists) {
		return err
	}
	s.log.Info().Str("username", username).Msg("admin account bootstrapped")
	return nil
}

func (s *AuthService) create(ctx context.Context, username, password string, role domain.Role) (*domain.Account, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("principal_id", created.ID).Str("role", string(role)).Msg("account registered")
	return created, nil
}

// Login verifies the credentials and issues an access and a refresh token.
// Unknown, deleted and wrong-password accounts all fail with
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	allowed, err := s.throttle.Allowed(ctx, username)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login throttle check failed, allowing attempt")
	} else if !allowed {
		return nil, domain.ErrTooManyAttempts
	}

	account, err := s.repo.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return nil, s.loginFailed(ctx, username, "account_not_found")
	case err != nil:
		return nil, err
	case account.Deleted():
		return nil, s.loginFailed(ctx, username, "account_deleted")
	case !s.hasher.Verify(password, account.PasswordHash):
		return nil, s.loginFailed(ctx, username, "bad_password")
	}

	access, accessExp, err := s.tokens.IssueAccessToken(account.Username)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.tokens.IssueRefreshToken(account.Username)
	if err != nil {
		return nil, err
	}

	if err := s.throttle.Reset(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to reset login throttle")
	}

	return &ports.LoginResult{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
		Principal:        account.Principal(),
	}, nil
}

func (s *AuthService) loginFailed(ctx context.Context, username, reason string) error {
	s.log.Info().Str("username", username).Str("reason", reason).Msg("login rejected")
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
	}
	return domain.ErrInvalidCredentials
}

type noThrottle struct{}

func (noThrottle) Allowed(context.Context, string) (bool, error) { return true, nil }
func (noThrottle) RecordFailure(context.Context, string) error  { return nil }
func (noThrottle) Reset(context.Context, string) error          { return nil }
