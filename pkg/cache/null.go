package cache

import (
	"context"
	"time"
)

// NullCache drops every artifact it is given. The CLI selects it for
// --no-cache, for cache.disabled in the config and when no cache directory
// can be resolved. A Runner built without a cache falls back to it too.
type NullCache struct{}

// NewNullCache returns a cache that never hits.
func NewNullCache() *NullCache { return &NullCache{} }

// Get reports a miss, so the pipeline always renders a fresh maze.
func (*NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the rendered artifact.
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete has nothing to remove.
func (*NullCache) Delete(context.Context, string) error { return nil }

// Close holds no resources.
func (*NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
