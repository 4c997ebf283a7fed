package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/crossborder-pricing/internal/core/domain"
	"github.com/99minutos/crossborder-pricing/internal/infrastructure/cache"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubRatesClient struct {
	mu    sync.Mutex
	calls []domain.RateQuoteRequest
	fn    func(req domain.RateQuoteRequest) ([]domain.RawRateQuote, error)
}

func (c *stubRatesClient) FetchRates(_ context.Context, req domain.RateQuoteRequest) ([]domain.RawRateQuote, error) {
	c.mu.Lock()
	c.calls = append(c.calls, req)
	c.mu.Unlock()
	return c.fn(req)
}

func (c *stubRatesClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var nopLog = zerolog.Nop()

func gbRequest() domain.RateQuoteRequest {
	return domain.RateQuoteRequest{
		Country:    domain.CountryGB,
		PostalCode: "SW1A 1AA",
		WeightG:    500,
		WidthCm:    20,
		HeightCm:   10,
		DepthCm:    5,
	}
}

func newFetcherWithClock(client *stubRatesClient) (*RateFetcher, *testClock) {
	clock := &testClock{now: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)}
	c := cache.NewRatesCache(cache.WithClock(clock.Now))
	return NewRateFetcher(client, c, nopLog, WithFetcherClock(clock.Now)), clock
}

func okClient() *stubRatesClient {
	return &stubRatesClient{fn: func(domain.RateQuoteRequest) ([]domain.RawRateQuote, error) {
		return append(allJapanPostQuotes(), quote("DHL", "express", 8000)), nil
	}}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestRateFetcher_FetchesAndFilters(t *testing.T) {
	client := okClient()
	f, _ := newFetcherWithClock(client)

	got := f.FetchRates(context.Background(), gbRequest())

	if len(got.Rates) != 4 {
		t.Fatalf("expected 4 rates, got %+v", got.Rates)
	}
	if len(got.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", got.Errors)
	}
	if client.callCount() != 1 {
		t.Fatalf("expected one API call, got %d", client.callCount())
	}
}

func TestRateFetcher_CachedWithinTTL(t *testing.T) {
	client := okClient()
	f, clock := newFetcherWithClock(client)

	first := f.FetchRates(context.Background(), gbRequest())
	clock.Advance(59 * time.Second)

	req := gbRequest()
	req.PostalCode = "  sw1a 1aa "
	second := f.FetchRates(context.Background(), req)

	if client.callCount() != 1 {
		t.Fatalf("expected cached result within TTL, got %d calls", client.callCount())
	}
	if len(first.Rates) != len(second.Rates) || first.Rates[0] != second.Rates[0] {
		t.Fatalf("cached result differs: %+v vs %+v", first, second)
	}
}

func TestRateFetcher_RefetchesAfterTTL(t *testing.T) {
	client := okClient()
	f, clock := newFetcherWithClock(client)

	f.FetchRates(context.Background(), gbRequest())
	clock.Advance(domain.RatesCacheTTL)
	f.FetchRates(context.Background(), gbRequest())

	if client.callCount() != 2 {
		t.Fatalf("expected a fresh fetch after 60s, got %d calls", client.callCount())
	}
}

func TestRateFetcher_DifferentDimensionsMiss(t *testing.T) {
	client := okClient()
	f, _ := newFetcherWithClock(client)

	f.FetchRates(context.Background(), gbRequest())
	req := gbRequest()
	req.WeightG = 750
	f.FetchRates(context.Background(), req)

	if client.callCount() != 2 {
		t.Fatalf("expected separate fetches for different weights, got %d", client.callCount())
	}
}

func TestRateFetcher_APIErrorIsData(t *testing.T) {
	client := &stubRatesClient{fn: func(domain.RateQuoteRequest) ([]domain.RawRateQuote, error) {
		return nil, &domain.RatesAPIError{StatusCode: 422, Message: "invalid postal code"}
	}}
	f, _ := newFetcherWithClock(client)

	got := f.FetchRates(context.Background(), gbRequest())

	if len(got.Rates) != 0 || got.Rates == nil {
		t.Fatalf("expected empty non-nil rates, got %+v", got.Rates)
	}
	if len(got.Errors) != 1 {
		t.Fatalf("expected a single error, got %v", got.Errors)
	}
	msg := got.Errors[0]
	for _, want := range []string{"GB", "422", "invalid postal code"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q should mention %q", msg, want)
		}
	}
}

func TestRateFetcher_APIErrorWithoutMessage(t *testing.T) {
	client := &stubRatesClient{fn: func(domain.RateQuoteRequest) ([]domain.RawRateQuote, error) {
		return nil, &domain.RatesAPIError{StatusCode: 502}
	}}
	f, _ := newFetcherWithClock(client)

	got := f.FetchRates(context.Background(), gbRequest())

	if !strings.Contains(got.Errors[0], "failed to fetch shipping rates") {
		t.Fatalf("expected generic message, got %q", got.Errors[0])
	}
}

func TestRateFetcher_FailuresAreNotCached(t *testing.T) {
	fail := true
	client := &stubRatesClient{fn: func(domain.RateQuoteRequest) ([]domain.RawRateQuote, error) {
		if fail {
			return nil, errors.New("connection reset")
		}
		return allJapanPostQuotes(), nil
	}}
	f, _ := newFetcherWithClock(client)

	first := f.FetchRates(context.Background(), gbRequest())
	fail = false
	second := f.FetchRates(context.Background(), gbRequest())

	if len(first.Rates) != 0 || len(second.Rates) != 3 {
		t.Fatalf("expected failure then success, got %+v then %+v", first, second)
	}
	if client.callCount() != 2 {
		t.Fatalf("expected the failure to be retried on the next request, got %d calls", client.callCount())
	}
}

func TestDescribeFetchError(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{domain.ErrMissingAccessToken, "US: shipping API access token is not configured"},
		{fmt.Errorf("wrap: %w", domain.ErrRatesAPIUnavailable), "US: shipping rates API temporarily unavailable"},
		{fmt.Errorf("post: %w", context.DeadlineExceeded), "US: shipping rates API timed out"},
		{errors.New("dial tcp: refused"), "US: failed to fetch shipping rates"},
	}
	for _, tc := range cases {
		if got := describeFetchError("US", tc.err); got != tc.want {
			t.Errorf("describeFetchError(%v): expected %q, got %q", tc.err, tc.want, got)
		}
	}
}
