package ports

import (
	"context"
	"time"

	"github.com/99minutos/crossborder-pricing/internal/core/domain"
)

// RatesClient calls the external shipping rates API for a single destination.
// It returns the coerced raw quotes, or an error describing why the call
// could not produce them.
type RatesClient interface {
	FetchRates(ctx context.Context, req domain.RateQuoteRequest) ([]domain.RawRateQuote, error)
}

// RatesCache stores destination results for a short time.
type RatesCache interface {
	Get(key string) (domain.RatesResult, bool)
	Put(key string, result domain.RatesResult, ttl time.Duration)
	// Prune removes every entry whose expiry is at or before now.
	Prune(now time.Time)
}

// RateFetcher resolves one destination, from cache or from the API.
// Failures are reported inside the result, never as an error.
type RateFetcher interface {
	FetchRates(ctx context.Context, req domain.RateQuoteRequest) domain.RatesResult
}
