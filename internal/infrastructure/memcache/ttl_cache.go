// Package memcache holds the process-local lookup cache.
package memcache

import (
	"sync"
	"time"
)

const (
	DefaultCapacity = 100
	DefaultTTL      = 10 * time.Minute
)

type entry[V any] struct {
	value      V
	insertedAt time.Time
	seq        uint64
}

// TTLCache is a bounded map with lazy expiry. Stale entries stay in place and
// count towards capacity until they are overwritten or evicted. When a Set pushes
// the store past capacity, the entry with the oldest insertion time is removed,
// whether it has expired or not.
type TTLCache[V any] struct {
	mu       sync.Mutex
	entries  map[string]*entry[V]
	ttl      time.Duration
	capacity int
	seq      uint64
	now      func() time.Time
	onEvict  func(key string)
}

type Option func(*options)

type options struct {
	now     func() time.Time
	onEvict func(key string)
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithEvictionHook is called, under the cache lock, with every key evicted for capacity.
func WithEvictionHook(fn func(key string)) Option {
	return func(o *options) { o.onEvict = fn }
}

// NewTTLCache creates a cache. Non-positive ttl or capacity fall back to the defaults.
func NewTTLCache[V any](ttl time.Duration, capacity int, opts ...Option) *TTLCache[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &TTLCache[V]{
		entries:  make(map[string]*entry[V], capacity+1),
		ttl:      ttl,
		capacity: capacity,
		now:      o.now,
		onEvict:  o.onEvict,
	}
}

func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().Sub(e.insertedAt) >= c.ttl {
		return zero, false
	}
	return e.value, true
}

func (c *TTLCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.entries[key] = &entry[V]{value: value, insertedAt: c.now(), seq: c.seq}
	if len(c.entries) > c.capacity {
		c.evictOldest()
	}
}

// evictOldest removes one entry; callers hold c.mu.
func (c *TTLCache[V]) evictOldest() {
	var (
		oldestKey string
		oldest    *entry[V]
	)
	for k, e := range c.entries {
		if oldest == nil || e.insertedAt.Before(oldest.insertedAt) ||
			(e.insertedAt.Equal(oldest.insertedAt) && e.seq < oldest.seq) {
			oldestKey, oldest = k, e
		}
	}
	if oldest == nil {
		return
	}
	delete(c.entries, oldestKey)
	if c.onEvict != nil {
		c.onEvict(oldestKey)
	}
}

func (c *TTLCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Contains reports whether key is stored, stale or not.
func (c *TTLCache[V]) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

func (c *TTLCache[V]) TTL() time.Duration { return c.ttl }

func (c *TTLCache[V]) Capacity() int { return c.capacity }
