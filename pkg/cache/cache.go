package cache

import (
	"sync"
	"time"
)

// Timed is a cache that invalidates elements on a timer basis. It is safe for
// concurrent use.
type Timed[K comparable, V any] struct {
	ttl   time.Duration
	limit int

	mu        sync.Mutex
	cache     map[K]element[V]
	lastSweep time.Time
}

// element holds a timestamped value to save.
type element[V any] struct {
	value    V
	creation time.Time
}

// NewTimed creates a new Timed cache where elements will be invalidated after
// a time in cache corresponding to TTL. At most limit elements are held; the
// oldest is evicted to make room. A limit <= 0 means no limit.
func NewTimed[K comparable, V any](ttl time.Duration, limit int) *Timed[K, V] {
	return &Timed[K, V]{
		ttl:   ttl,
		limit: limit,
		cache: make(map[K]element[V]),
	}
}

// Set assigns a value to a key.
func (c *Timed[K, V]) Set(key K, val V) {
	c.set(key, val, time.Now())
}

// set performs Set's work with the wall clock factored out.
func (c *Timed[K, V]) set(key K, val V, t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// expired elements are dropped at most once per ttl, or when full
	_, replacing := c.cache[key]
	full := !replacing && c.limit > 0 && len(c.cache) >= c.limit
	if full || t.Sub(c.lastSweep) > c.ttl {
		c.sweep(t)
	}
	if full && len(c.cache) >= c.limit {
		c.evictOldest()
	}

	c.cache[key] = element[V]{
		value:    val,
		creation: t,
	}
}

// Get retrieves a value for a key. The value may not exist or have expired, in
// which case ok will be false.
func (c *Timed[K, V]) Get(key K) (value V, ok bool) {
	return c.get(key, time.Now())
}

// get is like set in that the time is factored out
func (c *Timed[K, V]) get(key K, t time.Time) (value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// check if the element is in memory
	el, ok := c.cache[key]
	if !ok {
		return value, false
	}

	// in memory elements might still be invalid
	if elapsed := t.Sub(el.creation); elapsed > c.ttl {
		delete(c.cache, key)
		return value, false
	}

	return el.value, true
}

// Len returns the number of unexpired elements held.
func (c *Timed[K, V]) Len() int {
	return c.len(time.Now())
}

func (c *Timed[K, V]) len(t time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweep(t)
	return len(c.cache)
}

// sweep deletes every element expired at t. c.mu must be held.
func (c *Timed[K, V]) sweep(t time.Time) {
	for key, el := range c.cache {
		if t.Sub(el.creation) > c.ttl {
			delete(c.cache, key)
		}
	}
	c.lastSweep = t
}

// evictOldest deletes the element created first. c.mu must be held.
func (c *Timed[K, V]) evictOldest() {
	var (
		oldest K
		when   time.Time
		found  bool
	)
	for key, el := range c.cache {
		if !found || el.creation.Before(when) {
			oldest, when, found = key, el.creation, true
		}
	}
	if found {
		delete(c.cache, oldest)
	}
}
