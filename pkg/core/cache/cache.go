// File: cache.go
// Title: In-Memory Cache
// Description: Thread-safe, size-bounded cache with optional per-entry TTL.
//              Expired entries are dropped lazily on access. When the cache
//              is full the entry stored first is evicted.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Generic cache for parse results

package cache

import (
	"sync"
	"time"
)

// entry is a cached item with expiration
type entry[V any] struct {
	value      V
	stored     time.Time
	expiration time.Time
}

func (e *entry[V]) isExpired(now time.Time) bool {
	if e.expiration.IsZero() {
		return false // Never expires
	}
	return now.After(e.expiration)
}

// Config holds cache configuration
type Config struct {
	// MaxItems bounds the number of entries
	MaxItems int
	// TTL is the default lifetime; 0 keeps entries until evicted
	TTL time.Duration
}

// DefaultConfig returns default cache configuration
func DefaultConfig() Config {
	return Config{
		MaxItems: 64,
	}
}

// Cache is a thread-safe in-memory cache
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	items    map[K]*entry[V]
	maxItems int
	ttl      time.Duration
	now      func() time.Time

	// Metrics
	hits   int64
	misses int64
}

// New creates a cache
func New[K comparable, V any](cfg Config) *Cache[K, V] {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = DefaultConfig().MaxItems
	}
	if cfg.TTL < 0 {
		cfg.TTL = 0
	}
	return &Cache[K, V]{
		items:    make(map[K]*entry[V]),
		maxItems: cfg.MaxItems,
		ttl:      cfg.TTL,
		now:      time.Now,
	}
}

// Get retrieves a value from the cache
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, exists := c.items[key]
	if !exists {
		c.misses++
		return zero, false
	}
	if e.isExpired(c.now()) {
		delete(c.items, key)
		c.misses++
		return zero, false
	}
	c.hits++
	return e.value, true
}

// Set stores a value with the configured TTL
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxItems {
		c.evict(now)
	}

	var exp time.Time
	if c.ttl > 0 {
		exp = now.Add(c.ttl)
	}
	c.items[key] = &entry[V]{value: value, stored: now, expiration: exp}
}

// Clear removes all items from the cache
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]*entry[V])
}

// Size returns the number of items in the cache
func (c *Cache[K, V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns cache statistics; hitRate is a percentage
func (c *Cache[K, V]) Stats() (hits, misses int64, hitRate float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	hits = c.hits
	misses = c.misses
	total := hits + misses
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return
}

// evict drops expired entries, or the oldest one if none expired. Must be
// called with the lock held.
func (c *Cache[K, V]) evict(now time.Time) {
	var (
		oldestKey K
		oldest    time.Time
		found     bool
		expired   bool
	)
	for key, e := range c.items {
		if e.isExpired(now) {
			delete(c.items, key)
			expired = true
			continue
		}
		if !found || e.stored.Before(oldest) {
			oldestKey, oldest, found = key, e.stored, true
		}
	}
	if !expired && found {
		delete(c.items, oldestKey)
	}
}

// GetOrSet returns the cached value for key or computes and stores it.
// Errors from fn are returned and not cached.
func (c *Cache[K, V]) GetOrSet(key K, fn func() (V, error)) (V, error) {
	if val, ok := c.Get(key); ok {
		return val, nil
	}

	val, err := fn()
	if err != nil {
		var zero V
		return zero, err
	}

	c.Set(key, val)
	return val, nil
}
