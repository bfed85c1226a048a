package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/farmlog/farm-records/internal/api/middleware"
	"github.com/farmlog/farm-records/internal/core/domain"
)

// currentPrincipal returns the caller attached by the Authenticate
// middleware. Handlers using it must sit behind at least the Authenticated
// guard; a nil principal here means the route was registered without one.
func currentPrincipal(c echo.Context) (*domain.Principal, error) {
	p := middleware.PrincipalFrom(c)
	if p == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return p, nil
}

// pathID returns the id the ownership guard validated for param, parsing
// the raw path value when no guard ran.
func pathID(c echo.Context, param string) (int64, error) {
	if id, ok := middleware.ResourceID(c, param); ok {
		return id, nil
	}
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+param)
	}
	return id, nil
}

// bindAndValidate decodes the request body into req and runs the struct
// validator over it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
