// Package config provides configuration for the chat server.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// DefaultDatabaseURL is used when DATABASE_URL is unset.
const DefaultDatabaseURL = "file:chat.db?_busy_timeout=5000&_txlock=immediate&_foreign_keys=on"

// Config holds the server configuration.
type Config struct {
	// Server settings
	HTTPPort     int    `env:"HTTP_PORT,default=8080"`
	InternalPort int    `env:"INTERNAL_PORT,default=8081"`
	AppEnv       string `env:"APP_ENV,default=development"`

	// Database
	DatabaseURL string `env:"DATABASE_URL"`

	// Auth
	JWTSecret string        `env:"JWT_SECRET,required=true"`
	JWTTTL    time.Duration `env:"JWT_TTL,default=720h"`

	// User cache; an empty RedisURL disables it.
	RedisURL     string        `env:"REDIS_URL"`
	UserCacheTTL time.Duration `env:"USER_CACHE_TTL,default=10m"`

	// Latest message reconciler; a zero interval disables it.
	ReconcileInterval time.Duration `env:"RECONCILE_INTERVAL,default=30s"`
	ReconcileBatch    int           `env:"RECONCILE_BATCH,default=100"`

	SearchLimit int    `env:"SEARCH_LIMIT,default=20"`
	GroupPolicy string `env:"GROUP_POLICY,default=default"`
	DefaultPic  string `env:"DEFAULT_PIC,default=https://icon-library.com/images/anonymous-avatar-icon/anonymous-avatar-icon-25.jpg"`

	// Logging
	LogLevel string `env:"LOG_LEVEL,default=INFO"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	es, err := env.EnvironToEnvSet(os.Environ())
	if err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return Parse(es)
}

// Parse builds a Config from es and validates it.
func Parse(es env.EnvSet) (*Config, error) {
	cfg := &Config{}
	if err := env.Unmarshal(es, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = DefaultDatabaseURL
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.HTTPPort <= 0 || c.InternalPort <= 0 {
		errs = append(errs, errors.New("ports must be positive"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.ReconcileInterval < 0 {
		errs = append(errs, errors.New("RECONCILE_INTERVAL must not be negative"))
	}
	if c.ReconcileBatch <= 0 {
		errs = append(errs, errors.New("RECONCILE_BATCH must be positive"))
	}
	if c.SearchLimit <= 0 {
		errs = append(errs, errors.New("SEARCH_LIMIT must be positive"))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether the server runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
