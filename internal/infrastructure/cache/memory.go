package cache

import (
	"sync"
	"time"

	"github.com/99minutos/crossborder-pricing/internal/core/domain"
	"github.com/99minutos/crossborder-pricing/internal/core/ports"
)

// RatesCache is an in-process TTL cache for destination rate results.
// Expired entries are removed lazily by Prune or on Get; there is no janitor.
type RatesCache struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]entry
}

type entry struct {
	result    domain.RatesResult
	expiresAt time.Time
}

// Option customises a RatesCache.
type Option func(*RatesCache)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *RatesCache) { c.now = now }
}

// NewRatesCache returns an empty cache.
func NewRatesCache(opts ...Option) *RatesCache {
	c := &RatesCache{
		now:     time.Now,
		entries: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns a copy of the cached result while it is still valid.
func (c *RatesCache) Get(key string) (domain.RatesResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.RatesResult{}, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return domain.RatesResult{}, false
	}
	return e.result.Clone(), true
}

// Put stores a copy of result, replacing any previous entry for key.
func (c *RatesCache) Put(key string, result domain.RatesResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		result:    result.Clone(),
		expiresAt: c.now().Add(ttl),
	}
}

// Prune drops every entry whose expiry is at or before now.
func (c *RatesCache) Prune(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// Len reports the number of stored entries, expired or not.
func (c *RatesCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

var _ ports.RatesCache = (*RatesCache)(nil)
