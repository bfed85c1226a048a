package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/farmlog/farm-records/internal/api/metrics"
	"github.com/farmlog/farm-records/internal/core/domain"
	"github.com/farmlog/farm-records/internal/core/ports"
)

// TokenVerifier checks an access token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Authenticate resolves the bearer token of every request into a principal.
//
// It never rejects a request: a missing or foreign Authorization header
// leaves the request anonymous, and a token that fails verification or
// resolution marks the credentials as rejected so guards can answer 401.
// Routes decide through their guards whether anonymous access is acceptable.
func Authenticate(verifier TokenVerifier, resolver ports.PrincipalResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, done := c.Get(authStateKey).(authState); done {
				return next(c)
			}

			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				c.Set(authStateKey, stateAnonymous)
				return next(c)
			}

			req := c.Request()
			subject, err := verifier.Verify(token)
			if err == nil {
				var p *domain.Principal
				p, err = resolver.Resolve(req.Context(), subject)
				if err == nil {
					c.Set(principalKey, p)
					c.Set(authStateKey, stateAuthenticated)
					c.SetRequest(req.WithContext(domain.WithPrincipal(req.Context(), p)))
					return next(c)
				}
			}

			reason := failureReason(err)
			metrics.AuthenticationFailuresTotal.WithLabelValues(reason).Inc()
			ev := log.Debug()
			if errors.Is(err, domain.ErrAccountNotFound) || errors.Is(err, domain.ErrAccountDeleted) || reason == "error" {
				ev = log.Warn()
			}
			ev.Err(err).
				Str("reason", reason).
				Str("subject", subject).
				Str("path", req.URL.Path).
				Msg("bearer credentials rejected")

			c.Set(authStateKey, stateRejected)
			return next(c)
		}
	}
}

// bearerToken extracts the token of an "Authorization: Bearer <token>"
// header. ok is false when the header is absent or uses another scheme.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	if len(parts) != 2 {
		return "", true
	}
	return strings.TrimSpace(parts[1]), true
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, domain.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrAccountDeleted):
		return "account_deleted"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}
