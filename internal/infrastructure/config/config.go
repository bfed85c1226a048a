package config

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT   JWTConfig
	Auth  AuthConfig
	Admin AdminConfig
	Audit AuditConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET, required"`
	Issuer     string        `env:"JWT_ISSUER,      default=farm-records"`
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL,  default=15m"`
	RefreshTTL time.Duration `env:"JWT_REFRESH_TTL, default=168h"`
}

type AuthConfig struct {
	BcryptCost       int           `env:"AUTH_BCRYPT_COST,        default=10"`
	LookupTimeout    time.Duration `env:"AUTH_LOOKUP_TIMEOUT,     default=3s"`
	AnonymousStatus  int           `env:"AUTH_ANONYMOUS_STATUS,   default=403"`
	LoginMaxAttempts int           `env:"AUTH_LOGIN_MAX_ATTEMPTS, default=5"`
	LoginWindow      time.Duration `env:"AUTH_LOGIN_WINDOW,       default=15m"`
	// RateLimit is requests per second per client IP on /v1/auth; 0 disables it.
	RateLimit float64 `env:"AUTH_RATE_LIMIT, default=5"`
	RateBurst int     `env:"AUTH_RATE_BURST, default=10"`
}

// AdminConfig bootstraps an ADMIN account at startup when both are set.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME"`
	Password string `env:"ADMIN_PASSWORD"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=farm_records"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL < c.JWT.AccessTTL {
		return errors.New("JWT_REFRESH_TTL must be at least JWT_ACCESS_TTL, and both positive")
	}
	if c.Auth.AnonymousStatus != http.StatusUnauthorized && c.Auth.AnonymousStatus != http.StatusForbidden {
		return fmt.Errorf("AUTH_ANONYMOUS_STATUS must be 401 or 403, got %d", c.Auth.AnonymousStatus)
	}
	if (c.Admin.Username == "") != (c.Admin.Password == "") {
		return errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	return nil
}

// Production reports whether logs should be emitted as plain JSON.
func (c *Config) Production() bool {
	return c.Env == "production"
}
