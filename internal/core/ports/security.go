package ports

import (
	"context"
	"time"
)

// PasswordHasher hashes and verifies member passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenIssuer signs access and refresh tokens for a subject (username).
type TokenIssuer interface {
	IssueAccessToken(subject string) (string, time.Time, error)
	IssueRefreshToken(subject string) (string, time.Time, error)
}

// LoginThrottle tracks failed login attempts per username.
type LoginThrottle interface {
	Allowed(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// OwnerLookup returns the id of the member owning the resource identified by
// resourceID. It must return an error wrapping domain.ErrNotFound when the
// resource does not exist.
type OwnerLookup func(ctx context.Context, resourceID int64) (int64, error)
