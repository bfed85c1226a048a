package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is the root of every "resource does not exist" error.
var ErrNotFound = errors.New("not found")

var (
	ErrFarmNotFound       = fmt.Errorf("farm %w", ErrNotFound)
	ErrCropRecordNotFound = fmt.Errorf("crop record %w", ErrNotFound)
	ErrMemberNotFound     = fmt.Errorf("member %w", ErrNotFound)
)

// Authentication failures. All of them collapse to a single "unauthorized"
// result at the HTTP boundary.
var (
	ErrUnauthenticated = errors.New("authentication failed")

	ErrTokenMalformed        = fmt.Errorf("%w: malformed token", ErrUnauthenticated)
	ErrTokenInvalidSignature = fmt.Errorf("%w: invalid token signature", ErrUnauthenticated)
	ErrTokenExpired          = fmt.Errorf("%w: token expired", ErrUnauthenticated)

	ErrAccountNotFound = fmt.Errorf("%w: account not found", ErrUnauthenticated)
	ErrAccountDeleted  = fmt.Errorf("%w: account deleted", ErrUnauthenticated)
)

var (
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrPasswordMismatch   = errors.New("password and confirmation do not match")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")

	// ErrWrongCurrentPassword rejects a password change whose current
	// password does not match. The caller stays signed in.
	ErrWrongCurrentPassword = errors.New("current password is incorrect")
)

// AccessDeniedError describes an ownership or role mismatch. The details are
// meant for audit logs only; the HTTP layer renders a generic message.
type AccessDeniedError struct {
	Resource    string
	Action      string
	ResourceID  int64
	PrincipalID int64
	OwnerID     int64
	Reason      string
}

func (e *AccessDeniedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("access denied: %s on %s: %s", e.Action, e.Resource, e.Reason)
	}
	return fmt.Sprintf("access denied: %s on %s %d (principal %d, owner %d)",
		e.Action, e.Resource, e.ResourceID, e.PrincipalID, e.OwnerID)
}

func (e *AccessDeniedError) Unwrap() error { return ErrForbidden }

// ConfigurationError reports a guard declared against a route that cannot
// satisfy it. It is raised at route registration, never per request.
type ConfigurationError struct {
	Route  string
	Guard  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("guard %s on route %s: %s", e.Guard, e.Route, e.Reason)
}
