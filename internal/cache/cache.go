// Package cache provides the byte-oriented caching layer used by the stats
// aggregator: an in-memory backend for single-process deployments and a
// Redis backend for shared ones, behind a common interface.
package cache

import (
	"context"
	"time"
)

// Cache is a thread-safe key/value cache with per-entry TTLs.
type Cache interface {
	// Get retrieves a value. Returns ErrCacheMiss when the key is absent
	// or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value. A zero TTL uses the backend's default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Error is a sentinel cache error.
type Error string

func (e Error) Error() string { return string(e) }

// Cache errors
const (
	ErrCacheMiss   Error = "cache miss"
	ErrCacheClosed Error = "cache closed"
)
