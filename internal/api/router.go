package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/farmlog/farm-records/docs"
	"github.com/farmlog/farm-records/internal/api/handler"
	"github.com/farmlog/farm-records/internal/api/middleware"
	"github.com/farmlog/farm-records/internal/core/domain"
	"github.com/farmlog/farm-records/internal/core/ports"
)

// Dependencies is everything NewRouter wires into the HTTP layer.
type Dependencies struct {
	Log zerolog.Logger

	Auth    ports.AuthService
	Farms   ports.FarmService
	Crops   ports.CropRecordService
	Members ports.MemberService

	Tokens     middleware.TokenVerifier
	Principals ports.PrincipalResolver
	// Audit receives authorization denials; nil only logs them.
	Audit middleware.AuditRecorder

	// HealthChecks are pinged by the readiness probe, keyed by dependency name.
	HealthChecks map[string]handler.Pinger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	AnonymousStatus int
	LookupTimeout   time.Duration

	// AuthRateLimit bounds requests per second per client IP on /v1/auth.
	// Zero disables the limiter.
	AuthRateLimit rate.Limit
	AuthRateBurst int
}

// NewRouter builds the Echo instance with all routes registered. It fails
// when a route declares a guard it cannot satisfy.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	httpMetrics, err := echoprometheus.MiddlewareConfig{
		Namespace:  "farm",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}.ToMiddleware()
	if err != nil {
		return nil, err
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(httpMetrics)
	e.Use(middleware.Authenticate(deps.Tokens, deps.Principals, deps.Log))

	authz := middleware.NewAuthorizer(middleware.AuthorizerConfig{
		Log:             deps.Log,
		Audit:           deps.Audit,
		LookupTimeout:   deps.LookupTimeout,
		AnonymousStatus: deps.AnonymousStatus,
	})

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewHealthDependenciesHandler(deps.HealthChecks).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	v1 := e.Group("/v1")
	var authLimits []echo.MiddlewareFunc
	if deps.AuthRateLimit > 0 {
		authLimits = append(authLimits, authRateLimiter(deps.AuthRateLimit, deps.AuthRateBurst))
	}
	v1.POST("/auth/register", authHandler.Register, authLimits...)
	v1.POST("/auth/login", authHandler.Login, authLimits...)

	// --- Guarded resources ---
	farms := handler.NewFarmHandler(deps.Farms)
	crops := handler.NewCropRecordHandler(deps.Crops)
	members := handler.NewMemberHandler(deps.Members)

	farmRule := func(action string) middleware.OwnershipRule {
		return middleware.OwnershipRule{Resource: "farm", Action: action, Param: "farmId", Lookup: deps.Farms.OwnerOf}
	}
	cropRule := func(action string) middleware.OwnershipRule {
		return middleware.OwnershipRule{Resource: "crop_record", Action: action, Param: "cropId", Lookup: deps.Crops.OwnerOf}
	}
	memberRule := func(action string, adminBypass bool) middleware.OwnershipRule {
		return middleware.OwnershipRule{
			Resource:    "member",
			Action:      action,
			Param:       "memberId",
			Lookup:      deps.Members.OwnerOf,
			AdminBypass: adminBypass,
		}
	}

	signedIn := authz.Authenticated()
	routes := []struct {
		method  string
		path    string
		handler echo.HandlerFunc
		guards  []middleware.Guard
	}{
		{http.MethodPost, "/farms", farms.Create, []middleware.Guard{signedIn}},
		{http.MethodGet, "/farms", farms.List, []middleware.Guard{signedIn}},
		{http.MethodGet, "/farms/:farmId", farms.Get, []middleware.Guard{signedIn, authz.Owner(farmRule("farm.read"))}},
		{http.MethodPut, "/farms/:farmId", farms.Update, []middleware.Guard{signedIn, authz.Owner(farmRule("farm.update"))}},
		{http.MethodDelete, "/farms/:farmId", farms.Delete, []middleware.Guard{signedIn, authz.Owner(farmRule("farm.delete"))}},

		{http.MethodPost, "/farms/:farmId/crops", crops.Create, []middleware.Guard{signedIn, authz.Owner(farmRule("crop_record.create"))}},
		{http.MethodGet, "/farms/:farmId/crops", crops.List, []middleware.Guard{signedIn, authz.Owner(farmRule("crop_record.list"))}},
		{http.MethodGet, "/crops/:cropId", crops.Get, []middleware.Guard{signedIn, authz.Owner(cropRule("crop_record.read"))}},
		{http.MethodDelete, "/crops/:cropId", crops.Delete, []middleware.Guard{signedIn, authz.Owner(cropRule("crop_record.delete"))}},

		{http.MethodGet, "/members/:memberId", members.Get, []middleware.Guard{signedIn, authz.Owner(memberRule("member.read", true))}},
		{http.MethodPut, "/members/:memberId/password", members.ChangePassword, []middleware.Guard{signedIn, authz.Owner(memberRule("member.change_password", false))}},
		{http.MethodDelete, "/members/:memberId", members.Delete, []middleware.Guard{signedIn, authz.Owner(memberRule("member.delete", false))}},

		{http.MethodGet, "/admin/members", members.List, []middleware.Guard{signedIn, authz.Role(domain.RoleAdmin)}},
	}
	for _, r := range routes {
		if err := middleware.Protect(v1, r.method, r.path, r.handler, r.guards...); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// authRateLimiter throttles credential endpoints per client IP.
func authRateLimiter(limit rate.Limit, burst int) echo.MiddlewareFunc {
	if burst <= 0 {
		burst = 1
	}
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      limit,
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "client not identifiable")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
		},
	})
}

// requestLogger feeds echo's request logger into zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
