// Package ratelimit holds the inbound per-client limiters: an in-process
// token bucket per key, and a Redis fixed window shared across replicas.
package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/99minutos/crossborder-pricing/internal/core/domain"
	"github.com/99minutos/crossborder-pricing/internal/core/ports"
)

// MemoryLimiter keeps one token bucket per key. Buckets refill at
// requests/window and hold at most requests tokens.
type MemoryLimiter struct {
	mu           sync.Mutex
	entries      map[string]*bucket
	limit        int
	every        rate.Limit
	idleTTL      time.Duration
	cleanupEvery time.Duration
	now          func() time.Time
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type MemoryOption func(*MemoryLimiter)

func WithIdleTTL(d time.Duration) MemoryOption {
	return func(m *MemoryLimiter) { m.idleTTL = d }
}

func WithCleanupEvery(d time.Duration) MemoryOption {
	return func(m *MemoryLimiter) { m.cleanupEvery = d }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryLimiter) { m.now = now }
}

func NewMemoryLimiter(requests int, window time.Duration, opts ...MemoryOption) *MemoryLimiter {
	if window <= 0 {
		window = time.Minute
	}
	m := &MemoryLimiter{
		entries:      make(map[string]*bucket),
		limit:        requests,
		every:        rate.Limit(float64(requests) / window.Seconds()),
		idleTTL:      15 * time.Minute,
		cleanupEvery: 2 * time.Minute,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Allow consumes one token for key.
func (m *MemoryLimiter) Allow(_ context.Context, key string) (domain.RateLimitDecision, error) {
	if m.limit <= 0 {
		return domain.RateLimitDecision{Allowed: true, Limit: m.limit, Remaining: m.limit}, nil
	}
	now := m.now()
	lim := m.get(key, now)

	allowed := lim.AllowN(now, 1)
	tokens := lim.TokensAt(now)

	remaining := int(math.Floor(tokens))
	if remaining < 0 {
		remaining = 0
	}

	// ResetAt is when the next token becomes available.
	resetAt := now
	if tokens < 1 && m.every > 0 {
		wait := time.Duration((1 - tokens) / float64(m.every) * float64(time.Second))
		resetAt = now.Add(wait)
	}

	return domain.RateLimitDecision{
		Allowed:   allowed,
		Limit:     m.limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}

func (m *MemoryLimiter) get(key string, now time.Time) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ent, ok := m.entries[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}

	lim := rate.NewLimiter(m.every, m.limit)
	m.entries[key] = &bucket{lim: lim, lastSeen: now}
	return lim
}

// Cleanup drops buckets that have been idle longer than the idle TTL.
func (m *MemoryLimiter) Cleanup() {
	cutoff := m.now().Add(-m.idleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()

	for k, ent := range m.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(m.entries, k)
		}
	}
}

// Len reports the number of tracked keys.
func (m *MemoryLimiter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// StartJanitor runs Cleanup periodically until ctx is cancelled.
func (m *MemoryLimiter) StartJanitor(ctx context.Context) {
	if m.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(m.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				m.Cleanup()
			}
		}
	}()
}

var _ ports.RateLimiter = (*MemoryLimiter)(nil)
