package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/farmlog/farm-records/internal/core/domain"
)

const (
	principalKey   = "principal"
	authStateKey   = "auth_state"
	resourceKeyPfx = "resource_id:"
)

type authState int

const (
	stateAnonymous authState = iota + 1
	stateRejected
	stateAuthenticated
)

// PrincipalFrom returns the principal attached by Authenticate, or nil for
// anonymous requests.
func PrincipalFrom(c echo.Context) *domain.Principal {
	p, _ := c.Get(principalKey).(*domain.Principal)
	return p
}

// ResourceID returns the path id validated by the ownership guard declared
// for param.
func ResourceID(c echo.Context, param string) (int64, bool) {
	id, ok := c.Get(resourceKeyPfx + param).(int64)
	return id, ok
}

func credentialsRejected(c echo.Context) bool {
	s, _ := c.Get(authStateKey).(authState)
	return s == stateRejected
}
