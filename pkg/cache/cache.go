// Package cache provides cache backends for memoizing match scores.
package cache

import (
	"context"
	"time"
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns nil if the key is not found or expired.
	Get(ctx context.Context, key string) (any, error)

	// Set stores a value in the cache.
	// If ttl is 0, the default TTL is used.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes a value from the cache.
	// Returns true if the key was deleted, false if it didn't exist.
	Delete(ctx context.Context, key string) (bool, error)

	// Clear removes all entries from the cache.
	Clear(ctx context.Context) error

	// Close releases any resources held by the cache.
	Close() error
}

// StatsProvider provides cache statistics.
type StatsProvider interface {
	Stats(ctx context.Context) (Stats, error)
}

// Stats contains cache statistics.
type Stats struct {
	// Size is the current number of entries
	Size int `json:"size"`
	// MaxSize is the entry limit, 0 when unbounded
	MaxSize int `json:"max_size,omitempty"`
	// Hits is the number of lookups that found a live entry
	Hits int64 `json:"hits"`
	// Misses is the number of lookups that found nothing or an expired entry
	Misses int64 `json:"misses"`
	// Evictions is the number of entries dropped to stay within MaxSize
	Evictions int64 `json:"evictions"`
}

// HitRate returns the share of lookups that were hits.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// NullCache is a cache that doesn't cache anything.
type NullCache struct{}

// NewNullCache creates a new NullCache.
func NewNullCache() *NullCache {
	return &NullCache{}
}

// Get always returns nil.
func (c *NullCache) Get(_ context.Context, _ string) (any, error) {
	return nil, nil
}

// Set does nothing.
func (c *NullCache) Set(_ context.Context, _ string, _ any, _ time.Duration) error {
	return nil
}

// Delete always returns false.
func (c *NullCache) Delete(_ context.Context, _ string) (bool, error) {
	return false, nil
}

// Clear does nothing.
func (c *NullCache) Clear(_ context.Context) error {
	return nil
}

// Close does nothing.
func (c *NullCache) Close() error {
	return nil
}
