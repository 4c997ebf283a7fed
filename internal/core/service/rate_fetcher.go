package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/crossborder-pricing/internal/core/domain"
	"github.com/99minutos/crossborder-pricing/internal/core/ports"
	"github.com/99minutos/crossborder-pricing/internal/pkg/metrics"
)

// RateFetcher resolves a single destination: cache first, then the rates API.
type RateFetcher struct {
	client ports.RatesClient
	cache  ports.RatesCache
	now    func() time.Time
	log    zerolog.Logger
}

// FetcherOption customises a RateFetcher.
type FetcherOption func(*RateFetcher)

// WithFetcherClock replaces time.Now for cache pruning.
func WithFetcherClock(now func() time.Time) FetcherOption {
	return func(f *RateFetcher) { f.now = now }
}

// NewRateFetcher returns a RateFetcher backed by client and cache.
func NewRateFetcher(client ports.RatesClient, cache ports.RatesCache, log zerolog.Logger, opts ...FetcherOption) *RateFetcher {
	f := &RateFetcher{
		client: client,
		cache:  cache,
		now:    time.Now,
		log:    log,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchRates never fails: API and configuration problems come back as a
// result with no rates and a single explanatory error. Only successful API
// responses are cached.
func (f *RateFetcher) FetchRates(ctx context.Context, req domain.RateQuoteRequest) domain.RatesResult {
	key := req.Fingerprint()

	f.cache.Prune(f.now())
	if cached, ok := f.cache.Get(key); ok {
		metrics.RatesCacheTotal.WithLabelValues("hit").Inc()
		f.log.Debug().Str("destination", req.Country).Str("key", key).Msg("shipping rates served from cache")
		return cached
	}
	metrics.RatesCacheTotal.WithLabelValues("miss").Inc()

	raw, err := f.client.FetchRates(ctx, req)
	if err != nil {
		f.log.Warn().
			Err(err).
			Str("destination", req.Country).
			Str("postal_code", req.PostalCode).
			Msg("shipping rates request failed")
		return domain.FailedRatesResult(describeFetchError(req.Country, err))
	}

	result := FilterAndAnnotate(raw)
	f.cache.Put(key, result, domain.RatesCacheTTL)

	f.log.Info().
		Str("destination", req.Country).
		Int("raw_quotes", len(raw)).
		Int("accepted", len(result.Rates)).
		Int("errors", len(result.Errors)).
		Msg("shipping rates fetched")

	return result
}

// describeFetchError turns a client error into the message shown to users.
func describeFetchError(country string, err error) string {
	var apiErr *domain.RatesAPIError
	switch {
	case errors.Is(err, domain.ErrMissingAccessToken):
		return fmt.Sprintf("%s: %s", country, domain.ErrMissingAccessToken.Error())
	case errors.Is(err, domain.ErrRatesAPIUnavailable):
		return fmt.Sprintf("%s: %s", country, domain.ErrRatesAPIUnavailable.Error())
	case errors.As(err, &apiErr):
		msg := apiErr.Message
		if msg == "" {
			msg = "failed to fetch shipping rates"
		}
		return fmt.Sprintf("%s: shipping rates API error (HTTP %d): %s", country, apiErr.StatusCode, msg)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("%s: shipping rates API timed out", country)
	default:
		return fmt.Sprintf("%s: failed to fetch shipping rates", country)
	}
}
