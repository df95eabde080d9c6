package cache

import (
	"context"
	"time"

	"github.com/pricelens/backend/internal/domain"
)

// NopCache satisfies the cache interface without storing anything, for
// deployments that disable memoization (cache.type = "none").
type NopCache struct{}

// NewNopCache creates a cache that never hits
func NewNopCache() *NopCache {
	return &NopCache{}
}

// Get always misses
func (NopCache) Get(ctx context.Context, key string) (interface{}, error) {
	return nil, domain.ErrCacheMiss
}

// Set discards the value
func (NopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

// Delete is a no-op
func (NopCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Exists always reports false
func (NopCache) Exists(ctx context.Context, key string) (bool, error) {
	return false, nil
}
