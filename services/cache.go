package services

import (
	"strings"
	"sync"
	"time"
)

// DefaultCacheTTL is how long dashboard categories stay fresh before the next
// read refetches.
const DefaultCacheTTL = 5 * time.Minute

// TTLCache is the explicit contract behind the dashboard's memoization:
// entries are keyed by (category, params), expire after a TTL, and can be
// invalidated per key or wholesale on refresh. Every fetch is tagged with a
// generation number per key; a response only lands if no newer fetch has been
// issued for that key in the meantime, so a slow superseded fetch can never
// overwrite fresher state.
type TTLCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	gens    map[string]uint64
	now     func() time.Time
}

type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

func NewTTLCache() *TTLCache {
	return &TTLCache{
		entries: make(map[string]cacheEntry),
		gens:    make(map[string]uint64),
		now:     time.Now,
	}
}

// CacheKey builds a cache key from a data category and its parameters.
func CacheKey(category string, params ...string) string {
	if len(params) == 0 {
		return category
	}
	return category + "?" + strings.Join(params, "&")
}

// GetOrFetch returns the cached value for key if it is still fresh, otherwise
// runs fetch and caches its result for ttl. Fetch errors are returned to the
// caller and cache nothing.
func (c *TTLCache) GetOrFetch(key string, ttl time.Duration, fetch func() (interface{}, error)) (interface{}, error) {
	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && c.now().Before(entry.expiresAt) {
		c.mu.Unlock()
		return entry.value, nil
	}
	c.gens[key]++
	gen := c.gens[key]
	c.mu.Unlock()

	value, err := fetch()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[key] != gen {
		// A newer fetch was issued (or the key was invalidated) while this one
		// was in flight. Serve the value but leave the cache alone.
		return value, nil
	}
	c.entries[key] = cacheEntry{value: value, expiresAt: c.now().Add(ttl)}
	return value, nil
}

// Invalidate drops a single key. The generation bump also discards any fetch
// for that key still in flight.
func (c *TTLCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.gens[key]++
}

// InvalidateAll drops every entry; this backs the dashboard's explicit
// wholesale refresh.
func (c *TTLCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		delete(c.entries, key)
	}
	for key := range c.gens {
		c.gens[key]++
	}
}

// Cache is the process-wide dashboard cache.
var Cache = NewTTLCache()
