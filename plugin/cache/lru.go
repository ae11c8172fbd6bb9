// Package cache provides a bounded in-memory LRU cache with per-entry TTL,
// used to memoize resolution results for repeated messages.
package cache

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// LRU is an LRU cache with TTL support. It is safe for concurrent use.
type LRU[K comparable, V any] struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	mu    sync.Mutex
	items map[K]*list.Element
	order *list.List // front is most recently used

	hits   atomic.Int64
	misses atomic.Int64
}

type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

// Option configures an LRU.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New creates an LRU holding at most capacity entries, each living for ttl.
func New[K comparable, V any](capacity int, ttl time.Duration, opts ...Option) *LRU[K, V] {
	if capacity <= 0 {
		capacity = 1000
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &LRU[K, V]{
		capacity: capacity,
		ttl:      ttl,
		now:      o.now,
		items:    make(map[K]*list.Element),
		order:    list.New(),
	}
}

// Get returns the value stored under key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.items[key]
	if !ok {
		c.misses.Add(1)
		return zero, false
	}
	e := el.Value.(*entry[K, V])
	if c.now().After(e.expiresAt) {
		c.remove(el)
		c.misses.Add(1)
		return zero, false
	}
	c.order.MoveToFront(el)
	c.hits.Add(1)
	return e.value, true
}

// Set stores value under key, evicting the least recently used entry when full.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry[K, V])
		e.value, e.expiresAt = value, expiresAt
		c.order.MoveToFront(el)
		return
	}

	for len(c.items) >= c.capacity {
		c.remove(c.order.Back())
	}
	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value, expiresAt: expiresAt})
}

// Delete removes key. It reports whether the key was present.
func (c *LRU[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if ok {
		c.remove(el)
	}
	return ok
}

// Len returns the number of entries, expired ones included until they are swept.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear removes all entries.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]*list.Element)
	c.order.Init()
}

// Stats returns the hit and miss counters.
func (c *LRU[K, V]) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// CleanupExpired removes all expired entries and returns how many were removed.
func (c *LRU[K, V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if now.After(el.Value.(*entry[K, V]).expiresAt) {
			c.remove(el)
			removed++
		}
		el = prev
	}
	return removed
}

// RunCleanup sweeps expired entries every interval until ctx is done.
func (c *LRU[K, V]) RunCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.CleanupExpired()
		}
	}
}

// remove must be called with the lock held.
func (c *LRU[K, V]) remove(el *list.Element) {
	if el == nil {
		return
	}
	c.order.Remove(el)
	delete(c.items, el.Value.(*entry[K, V]).key)
}
