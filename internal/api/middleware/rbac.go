package middleware

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/farmlog/farm-records/internal/core/domain"
	"github.com/farmlog/farm-records/internal/core/service"
)

type authenticatedGuard struct{ a *Authorizer }

// Authenticated requires a principal of any role.
func (a *Authorizer) Authenticated() Guard { return authenticatedGuard{a: a} }

func (g authenticatedGuard) Name() string           { return "authenticated" }
func (g authenticatedGuard) Validate(string) error { return nil }

func (g authenticatedGuard) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := g.a.requirePrincipal(c, g.Name()); err != nil {
				return err
			}
			return next(c)
		}
	}
}

type roleGuard struct {
	a    *Authorizer
	role domain.Role
}

// Role requires a principal whose role equals role exactly.
func (a *Authorizer) Role(role domain.Role) Guard { return roleGuard{a: a, role: role} }

func (g roleGuard) Name() string { return "role" }

func (g roleGuard) Validate(string) error {
	if !g.role.Valid() {
		return fmt.Errorf("unknown role %q", g.role)
	}
	return nil
}

func (g roleGuard) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := g.a.requirePrincipal(c, g.Name())
			if err != nil {
				return err
			}
			if err := service.RequireRole(p, g.role); err != nil {
				var denied *domain.AccessDeniedError
				if errors.As(err, &denied) {
					g.a.deny(c, g.Name(), p, denied)
				}
				return err
			}
			return next(c)
		}
	}
}
