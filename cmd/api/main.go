// Command api is the entry point for the farm-records HTTP API server.
//
// @title                       Farm Records API
// @version                     1.0
// @description                 Farm record keeping with per-member ownership of farms, crop records and accounts.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/farmlog/farm-records/internal/api"
	"github.com/farmlog/farm-records/internal/api/handler"
	"github.com/farmlog/farm-records/internal/core/service"
	"github.com/farmlog/farm-records/internal/infrastructure/config"
	mongostore "github.com/farmlog/farm-records/internal/infrastructure/db/mongo"
	redisstore "github.com/farmlog/farm-records/internal/infrastructure/db/redis"
	"github.com/farmlog/farm-records/internal/infrastructure/queue"
	"github.com/farmlog/farm-records/internal/infrastructure/security"
	"github.com/farmlog/farm-records/pkg/logger"
)

const (
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 15 * time.Second
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(context.Background())
	if err != nil {
		boot := logger.Init(logger.Options{Service: "farm-records"})
		boot.Fatal().Err(err).Msg("load configuration")
	}

	// --- Logger ---
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
		Service: "farm-records",
	})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("configuration loaded")

	startupCtx, startupCancel := context.WithTimeout(context.Background(), startupTimeout)
	defer startupCancel()

	// --- MongoDB ---
	mongoClient, db, err := mongostore.Connect(startupCtx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	must(log, err, "connect to mongodb")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()
	must(log, mongostore.EnsureIndexes(startupCtx, db), "ensure mongodb indexes")

	// --- Redis ---
	rdb, err := redisstore.Connect(startupCtx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	must(log, err, "connect to redis")
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}()

	// --- Security ---
	tokens, err := security.NewTokenService(security.TokenConfig{
		Secret:     []byte(cfg.JWT.Secret),
		Issuer:     cfg.JWT.Issuer,
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
	})
	must(log, err, "initialise token service")
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)

	// --- Repositories & services ---
	accounts := mongostore.NewAccountRepository(db)
	farmRepo := mongostore.NewFarmRepository(db)
	cropRepo := mongostore.NewCropRecordRepository(db)
	throttle := redisstore.NewLoginThrottle(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)

	authService := service.NewAuthService(accounts, hasher, tokens, throttle, logger.Component("auth"))
	if cfg.Admin.Username != "" {
		must(log, authService.EnsureAdmin(startupCtx, cfg.Admin.Username, cfg.Admin.Password), "bootstrap admin account")
	}

	// --- Audit dispatcher ---
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workersCtx, stopWorkers := context.WithCancel(context.Background())
	audit := queue.NewDispatcher(cfg.Audit.Workers, mongostore.NewAuditRepository(db), logger.Component("audit"))
	audit.Start(workersCtx)

	// --- HTTP ---
	e, err := api.NewRouter(api.Dependencies{
		Log:        logger.Component("http"),
		Auth:       authService,
		Farms:      service.NewFarmService(farmRepo, cropRepo, logger.Component("farms")),
		Crops:      service.NewCropRecordService(cropRepo, farmRepo, logger.Component("crops")),
		Members:    service.NewMemberService(accounts, hasher, logger.Component("members")),
		Tokens:     tokens,
		Principals: service.NewPrincipalResolver(accounts, cfg.Auth.LookupTimeout),
		Audit:      audit,
		HealthChecks: map[string]handler.Pinger{
			"mongodb": mongostore.Ping(db),
			"redis":   redisstore.Ping(rdb),
		},
		AnonymousStatus: cfg.Auth.AnonymousStatus,
		LookupTimeout:   cfg.Auth.LookupTimeout,
		AuthRateLimit:   rate.Limit(cfg.Auth.RateLimit),
		AuthRateBurst:   cfg.Auth.RateBurst,
	})
	must(log, err, "build router")

	server := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-rootCtx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-serverErr:
		log.Error().Err(err).Msg("http server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}

	stopWorkers()
	audit.Wait()
	log.Info().Msg("server stopped cleanly")
}

// must logs a fatal startup error and exits. It is only used while wiring.
func must(log zerolog.Logger, err error, step string) {
	if err != nil {
		log.Fatal().Err(err).Str("step", step).Msg("startup failure")
	}
}
