// Package cache stores rendered maze artifacts.
//
// Only reproducible requests are cached: an artifact is addressed by every
// input that determines its bytes (algorithm, dimensions, seed, format and
// rendering options), so a hit is always identical to a fresh render.
// Generated grids themselves are never stored.
//
// Backends:
//   - [FileCache]: JSON entries under a local directory, used by the CLI
//   - [RedisCache]: a shared Redis instance, used by the HTTP server
//   - [NullCache]: stores nothing
//
// Keys are built by a [Keyer]; [ScopedKeyer] namespaces them when several
// producers share one backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present and
	// unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DefaultTTL is how long rendered artifacts are kept.
const DefaultTTL = 7 * 24 * time.Hour
