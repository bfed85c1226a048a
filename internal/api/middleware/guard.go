package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/farmlog/farm-records/internal/api/metrics"
	"github.com/farmlog/farm-records/internal/core/domain"
)

// Guard is a declarative check attached to a route at registration time.
type Guard interface {
	Name() string
	// Validate reports why the guard cannot protect a route with this path.
	Validate(path string) error
	Middleware() echo.MiddlewareFunc
}

// Registrar is satisfied by *echo.Echo and *echo.Group.
type Registrar interface {
	Add(method, path string, handler echo.HandlerFunc, middleware ...echo.MiddlewareFunc) *echo.Route
}

// Protect registers handler behind guards, applied in the given order. A
// guard that cannot work with path yields a *domain.ConfigurationError and
// the route is not registered.
func Protect(r Registrar, method, path string, handler echo.HandlerFunc, guards ...Guard) error {
	mws := make([]echo.MiddlewareFunc, 0, len(guards))
	for _, g := range guards {
		if err := g.Validate(path); err != nil {
			return &domain.ConfigurationError{
				Route:  method + " " + path,
				Guard:  g.Name(),
				Reason: err.Error(),
			}
		}
		mws = append(mws, g.Middleware())
	}
	r.Add(method, path, handler, mws...)
	return nil
}

// pathParams lists the ":name" parameters of an echo route path.
func pathParams(path string) []string {
	var names []string
	for _, seg := range strings.Split(path, "/") {
		if strings.HasPrefix(seg, ":") && len(seg) > 1 {
			names = append(names, seg[1:])
		}
	}
	return names
}

// AuditRecorder receives one event per authorization denial.
type AuditRecorder interface {
	Record(event domain.AccessDeniedEvent)
}

// AuthorizerConfig holds the collaborators shared by every guard.
type AuthorizerConfig struct {
	Log zerolog.Logger
	// Audit may be nil, in which case denials are only logged.
	Audit AuditRecorder
	// LookupTimeout bounds each owner lookup.
	LookupTimeout time.Duration
	// AnonymousStatus is returned when a protected route is called without
	// credentials. Defaults to 403.
	AnonymousStatus int
}

// Authorizer builds guards.
type Authorizer struct {
	log             zerolog.Logger
	audit           AuditRecorder
	lookupTimeout   time.Duration
	anonymousStatus int
}

func NewAuthorizer(cfg AuthorizerConfig) *Authorizer {
	status := cfg.AnonymousStatus
	if status != http.StatusUnauthorized && status != http.StatusForbidden {
		status = http.StatusForbidden
	}
	return &Authorizer{
		log:             cfg.Log,
		audit:           cfg.Audit,
		lookupTimeout:   cfg.LookupTimeout,
		anonymousStatus: status,
	}
}

// requirePrincipal returns the caller or the error for a missing one:
// rejected credentials are 401, no credentials at all are the configured
// anonymous status.
func (a *Authorizer) requirePrincipal(c echo.Context, guard string) (*domain.Principal, error) {
	if p := PrincipalFrom(c); p != nil {
		return p, nil
	}
	metrics.AuthorizationDenialsTotal.WithLabelValues(guard, "anonymous").Inc()
	if credentialsRejected(c) {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}
	return nil, echo.NewHTTPError(a.anonymousStatus, "authentication required")
}

func (a *Authorizer) deny(c echo.Context, guard string, p *domain.Principal, denied *domain.AccessDeniedError) {
	metrics.AuthorizationDenialsTotal.WithLabelValues(guard, denied.Resource).Inc()

	req := c.Request()
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	a.log.Warn().
		Str("guard", guard).
		Str("resource", denied.Resource).
		Str("action", denied.Action).
		Int64("resource_id", denied.ResourceID).
		Int64("principal_id", p.ID).
		Int64("owner_id", denied.OwnerID).
		Str("reason", denied.Reason).
		Str("method", req.Method).
		Str("path", c.Path()).
		Str("request_id", requestID).
		Msg("access denied")

	if a.audit == nil {
		return
	}
	a.audit.Record(domain.AccessDeniedEvent{
		PrincipalID: p.ID,
		Username:    p.Username,
		Resource:    denied.Resource,
		Action:      denied.Action,
		ResourceID:  denied.ResourceID,
		OwnerID:     denied.OwnerID,
		Reason:      denied.Reason,
		Method:      req.Method,
		Path:        req.URL.Path,
		RequestID:   requestID,
		OccurredAt:  time.Now().UTC(),
	})
}
