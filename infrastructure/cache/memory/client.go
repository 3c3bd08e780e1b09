// ABOUTME: In-memory cache implementation backed by patrickmn/go-cache
// ABOUTME: Provides a process-local cache with TTL support and periodic cleanup

package memory

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"kvk-insights-api/core/interfaces"
)

// ErrNotFound is returned on a cache miss
var ErrNotFound = fmt.Errorf("key not found: %w", interfaces.ErrCacheMiss)

// MemoryCache implements the Cache interface using in-memory storage
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache instance.
// defaultTTL applies to entries stored with a negative ttl.
func NewMemoryCache(defaultTTL time.Duration) *MemoryCache {
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}
	return &MemoryCache{
		store: gocache.New(defaultTTL, 10*time.Minute),
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, ok := c.store.Get(key)
	if !ok {
		return nil, ErrNotFound
	}

	stored := value.([]byte)
	result := make([]byte, len(stored))
	copy(result, stored)
	return result, nil
}

// Set stores a value in the cache with the given TTL.
// A zero ttl stores the value without expiration.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	switch {
	case ttl == 0:
		ttl = gocache.NoExpiration
	case ttl < 0:
		ttl = gocache.DefaultExpiration
	}

	c.store.Set(key, valueCopy, ttl)
	return nil
}

// Delete removes a key from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.store.Delete(key)
	return nil
}

// Len returns the number of entries, including expired ones not yet cleaned up
func (c *MemoryCache) Len() int {
	return c.store.ItemCount()
}
