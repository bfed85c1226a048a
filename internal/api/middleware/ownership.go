package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/farmlog/farm-records/internal/api/metrics"
	"github.com/farmlog/farm-records/internal/core/domain"
	"github.com/farmlog/farm-records/internal/core/ports"
	"github.com/farmlog/farm-records/internal/core/service"
)

// OwnershipRule declares that the caller must own the resource named by a
// path parameter.
type OwnershipRule struct {
	// Resource is the resource type, e.g. "farm".
	Resource string
	// Action names the protected operation for audit logs, e.g. "farm.update".
	Action string
	// Param is the route parameter holding the resource id, without ':'.
	Param string
	// Lookup returns the owner id of a resource.
	Lookup ports.OwnerLookup
	// AdminBypass lets ADMIN principals through after the resource is found.
	AdminBypass bool
}

type ownerGuard struct {
	a    *Authorizer
	rule OwnershipRule
}

// Owner requires the caller to own the resource described by rule.
func (a *Authorizer) Owner(rule OwnershipRule) Guard { return ownerGuard{a: a, rule: rule} }

func (g ownerGuard) Name() string { return "owner(" + g.rule.Resource + ")" }

func (g ownerGuard) Validate(path string) error {
	switch {
	case g.rule.Resource == "":
		return errors.New("ownership rule without resource")
	case g.rule.Action == "":
		return errors.New("ownership rule without action")
	case g.rule.Lookup == nil:
		return errors.New("ownership rule without owner lookup")
	case g.rule.Param == "":
		return errors.New("ownership rule without path parameter")
	case !slices.Contains(pathParams(path), g.rule.Param):
		return fmt.Errorf("path has no :%s parameter", g.rule.Param)
	}
	return nil
}

func (g ownerGuard) Middleware() echo.MiddlewareFunc {
	rule := g.rule
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := g.a.requirePrincipal(c, "owner")
			if err != nil {
				return err
			}

			id, err := strconv.ParseInt(c.Param(rule.Param), 10, 64)
			if err != nil || id <= 0 {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid "+rule.Param)
			}

			start := time.Now()
			err = service.CheckOwnership(c.Request().Context(), p, service.OwnershipCheck{
				Resource:    rule.Resource,
				Action:      rule.Action,
				ResourceID:  id,
				Lookup:      rule.Lookup,
				AdminBypass: rule.AdminBypass,
				Timeout:     g.a.lookupTimeout,
			})
			metrics.OwnerLookupDuration.WithLabelValues(rule.Resource).Observe(time.Since(start).Seconds())
			if err != nil {
				var denied *domain.AccessDeniedError
				if errors.As(err, &denied) {
					g.a.deny(c, "owner", p, denied)
				}
				return err
			}

			c.Set(resourceKeyPfx+rule.Param, id)
			return next(c)
		}
	}
}
