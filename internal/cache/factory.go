package cache

import "time"

// Config selects and configures a cache backend.
type Config struct {
	// RedisURL switches to the Redis backend when non-empty.
	RedisURL string

	// Prefix namespaces keys in shared backends.
	Prefix string

	// DefaultTTL applies when Set is called with a zero TTL.
	DefaultTTL time.Duration
}

// New builds a cache from the config: Redis when a URL is set, in-memory
// otherwise.
func New(cfg Config) (Cache, error) {
	if cfg.RedisURL != "" {
		return NewRedisCache(cfg.RedisURL, cfg.Prefix, cfg.DefaultTTL)
	}
	return NewMemoryCache(cfg.DefaultTTL), nil
}
