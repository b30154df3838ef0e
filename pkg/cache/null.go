package cache

import (
	"context"
	"time"
)

// NullCache is a no-op cache that never stores anything. The runner uses it
// when caching is disabled (--no-cache) and tests use it to force every
// stage to recompute.
type NullCache struct{}

// NewNullCache returns a cache where every lookup misses.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always reports a miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the value.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete is a no-op.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close is a no-op.
func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
