package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/crossborder-pricing/internal/core/domain"
)

type stubLimiter struct {
	decision domain.RateLimitDecision
	err      error
	gotKey   string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (domain.RateLimitDecision, error) {
	s.gotKey = key
	return s.decision, s.err
}

func runRateLimit(t *testing.T, limiter *stubLimiter) (*httptest.ResponseRecorder, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/shipping-rates", nil)
	req.Header.Set(echo.HeaderXRealIP, "203.0.113.7")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := RateLimit(limiter, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	err := h(c)
	return rec, called, err
}

func TestRateLimit_Allowed(t *testing.T) {
	limiter := &stubLimiter{decision: domain.RateLimitDecision{
		Allowed: true, Limit: 60, Remaining: 59, ResetAt: time.Now().Add(time.Minute),
	}}

	rec, called, err := runRateLimit(t, limiter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("next not called")
	}
	if limiter.gotKey != "203.0.113.7" {
		t.Errorf("expected client IP key, got %q", limiter.gotKey)
	}
	if rec.Header().Get("RateLimit-Limit") != "60" || rec.Header().Get("RateLimit-Remaining") != "59" {
		t.Errorf("unexpected headers: %v", rec.Header())
	}
	if rec.Header().Get("Retry-After") != "" {
		t.Error("Retry-After must only be set on rejection")
	}
}

func TestRateLimit_Rejected(t *testing.T) {
	limiter := &stubLimiter{decision: domain.RateLimitDecision{
		Allowed: false, Limit: 60, Remaining: 0, ResetAt: time.Now().Add(10 * time.Second),
	}}

	rec, called, err := runRateLimit(t, limiter)
	if called {
		t.Fatal("next must not be called when limited")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis down")}

	_, called, err := runRateLimit(t, limiter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("limiter failure must let the request through")
	}
}

func TestWriteRateLimitHeaders_RetryAfterRoundsUp(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	h := http.Header{}
	writeRateLimitHeaders(h, domain.RateLimitDecision{
		Allowed: false, Limit: 5, Remaining: 0, ResetAt: now.Add(1500 * time.Millisecond),
	}, now)

	if got := h.Get("Retry-After"); got != "2" {
		t.Errorf("expected Retry-After 2, got %q", got)
	}
}
