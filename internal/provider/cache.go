package provider

import (
	"sync"
	"time"
)

// Cache is a thread-safe TTL cache. Expired entries are dropped lazily on
// read and swept on write once the cache holds more than sweepAt entries.
type Cache[V any] struct {
	mu    sync.RWMutex
	items map[string]cacheItem[V]
	ttl   time.Duration
	now   func() time.Time
}

type cacheItem[V any] struct {
	value  V
	expiry time.Time
}

const sweepAt = 1024

// NewCache creates a cache whose entries live for ttl.
func NewCache[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		items: make(map[string]cacheItem[V]),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the cached value for key, if present and not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || c.now().After(item.expiry) {
		var zero V
		return zero, false
	}
	return item.value, true
}

// Set stores value under key.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if len(c.items) >= sweepAt {
		for k, v := range c.items {
			if now.After(v.expiry) {
				delete(c.items, k)
			}
		}
	}
	c.items[key] = cacheItem[V]{value: value, expiry: now.Add(c.ttl)}
}
