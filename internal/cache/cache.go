package cache

import (
	"sync"
	"time"
)

// DefaultTTL is the lifetime of an entry when none is configured
const DefaultTTL = time.Hour

type entry struct {
	value    any
	storedAt time.Time
	tags     []string
}

// Cache maps a key to a value and the time it was stored.
// Entries expire after the TTL and can be dropped early by tag.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

// New creates a cache whose entries live for ttl.
// A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Get returns the value stored under key if it has not expired
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, labelled with tags for invalidation
func (c *Cache) Set(key string, value any, tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{value: value, storedAt: c.now(), tags: tags}
}

// Invalidate drops every entry carrying tag
func (c *Cache) Invalidate(tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		for _, t := range e.tags {
			if t == tag {
				delete(c.entries, key)
				break
			}
		}
	}
}

// Load returns the cached value for key, calling fetch and caching its
// result on a miss. Errors are returned as is and never cached.
func Load[V any](c *Cache, key string, tags []string, fetch func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		if typed, ok := v.(V); ok {
			return typed, nil
		}
	}

	v, err := fetch()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Set(key, v, tags...)
	return v, nil
}
