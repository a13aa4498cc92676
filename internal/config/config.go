// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/mkcms/mkcms-go/internal/util"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	SiteName    string `env:"MKCMS_SITE_NAME" envDefault:"main"`
	DefaultLang string `env:"MKCMS_DEFAULT_LANGUAGE" envDefault:"en"`
	ServerHost  string `env:"MKCMS_SERVER_HOST" envDefault:"localhost"`
	ServerPort  int    `env:"MKCMS_SERVER_PORT" envDefault:"8080"`
	Env         string `env:"MKCMS_ENV" envDefault:"development"`
	LogLevel    string `env:"MKCMS_LOG_LEVEL" envDefault:"info"`

	// Durable store configuration. An empty DBPath disables the durable tier
	// entirely; the application then runs on the in-memory store alone.
	DBPath           string `env:"MKCMS_DB_PATH"`
	DurableTimeoutMS int    `env:"MKCMS_DURABLE_TIMEOUT_MS" envDefault:"5000"`

	// Session configuration
	SessionTTLHours int `env:"MKCMS_SESSION_TTL_HOURS" envDefault:"24"`

	// Cache configuration for the stats aggregator
	RedisURL         string `env:"MKCMS_REDIS_URL"`                       // Optional Redis URL for distributed caching
	CachePrefix      string `env:"MKCMS_CACHE_PREFIX" envDefault:"mkcms:"`
	StatsCacheTTLSec int    `env:"MKCMS_STATS_CACHE_TTL" envDefault:"60"` // Seconds; 0 disables caching

	// Seeding configuration
	DoSeed bool `env:"MKCMS_DO_SEED" envDefault:"false"` // Seed sample content into the durable store
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// DurableEnabled returns true if a durable store path is configured.
func (c Config) DurableEnabled() bool {
	return c.DBPath != ""
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// SessionTTL returns the admin session lifetime.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// DurableTimeout returns the per-operation deadline for durable store calls.
func (c Config) DurableTimeout() time.Duration {
	return time.Duration(c.DurableTimeoutMS) * time.Millisecond
}

// StatsCacheTTL returns the stats cache lifetime; zero disables caching.
func (c Config) StatsCacheTTL() time.Duration {
	return time.Duration(c.StatsCacheTTLSec) * time.Second
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Normalize the default language to its canonical base form
	lang, ok := util.NormalizeLangCode(cfg.DefaultLang)
	if !ok {
		return nil, fmt.Errorf("MKCMS_DEFAULT_LANGUAGE %q is not a valid language code", cfg.DefaultLang)
	}
	cfg.DefaultLang = lang

	if cfg.SessionTTLHours < 1 {
		return nil, fmt.Errorf("MKCMS_SESSION_TTL_HOURS must be at least 1, got %d", cfg.SessionTTLHours)
	}

	return cfg, nil
}
