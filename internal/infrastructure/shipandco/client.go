// Package shipandco is the outbound adapter for the Ship&co rates API.
package shipandco

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/99minutos/crossborder-pricing/internal/core/domain"
	"github.com/99minutos/crossborder-pricing/internal/core/ports"
	"github.com/99minutos/crossborder-pricing/internal/pkg/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20

	accessTokenHeader = "x-access-token"
)

// Config captures the settings for the rates API client.
type Config struct {
	URL     string
	Token   string
	Timeout time.Duration
	// RPS and Burst shape outbound traffic; RPS <= 0 disables the limiter.
	RPS   float64
	Burst int
	// BreakerFailures is the number of consecutive transport or 5xx failures
	// that open the circuit. Defaults to 5.
	BreakerFailures uint32
	// BreakerCooldown is how long the circuit stays open. Defaults to 30s.
	BreakerCooldown time.Duration
}

// Client implements ports.RatesClient.
type Client struct {
	url     string
	token   string
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	log     zerolog.Logger
}

// NewClient builds a Client. A missing token is not an error here; it is
// reported on every FetchRates call instead.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	cooldown := cfg.BreakerCooldown
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RPS > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), burst)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "shipping-rates-api",
		Timeout: cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: countsAsSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})

	return &Client{
		url:     cfg.URL,
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
		limiter: limiter,
		breaker: breaker,
		log:     log,
	}
}

// FetchRates posts a rate request for req and returns the coerced quotes.
func (c *Client) FetchRates(ctx context.Context, req domain.RateQuoteRequest) ([]domain.RawRateQuote, error) {
	if c.token == "" {
		metrics.RatesUpstreamRequestsTotal.WithLabelValues(req.Country, "config_error").Inc()
		return nil, domain.ErrMissingAccessToken
	}

	// Throttling is local and stays outside the breaker's failure counts.
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			metrics.RatesUpstreamRequestsTotal.WithLabelValues(req.Country, "throttled").Inc()
			return nil, fmt.Errorf("fetch rates %s: rate limit wait: %w", req.Country, err)
		}
	}

	start := time.Now()
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.post(ctx, req)
	})
	metrics.RatesUpstreamDuration.WithLabelValues(req.Country).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.RatesUpstreamRequestsTotal.WithLabelValues(req.Country, outcome(err)).Inc()
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("fetch rates %s: %w", req.Country, domain.ErrRatesAPIUnavailable)
		}
		return nil, fmt.Errorf("fetch rates %s: %w", req.Country, err)
	}

	metrics.RatesUpstreamRequestsTotal.WithLabelValues(req.Country, "success").Inc()
	return out.([]domain.RawRateQuote), nil
}

func (c *Client) post(ctx context.Context, req domain.RateQuoteRequest) ([]domain.RawRateQuote, error) {
	payload, err := json.Marshal(buildRateRequest(req))
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(accessTokenHeader, c.token)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("post rates: %w", context.DeadlineExceeded)
		}
		return nil, fmt.Errorf("post rates: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var body any
	parseErr := json.Unmarshal(raw, &body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &domain.RatesAPIError{StatusCode: resp.StatusCode}
		if parseErr == nil {
			apiErr.Message = apiMessage(body)
		}
		return nil, apiErr
	}
	if parseErr != nil {
		return nil, &domain.RatesAPIError{StatusCode: resp.StatusCode, Message: "unparseable response body"}
	}

	return extractRates(body), nil
}

// countsAsSuccess keeps client-side problems (4xx, bad input, missing token)
// from tripping the breaker; only transport errors and 5xx do.
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	var apiErr *domain.RatesAPIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode < 500
	}
	return errors.Is(err, context.Canceled)
}

func outcome(err error) string {
	var apiErr *domain.RatesAPIError
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit_open"
	case errors.As(err, &apiErr):
		return "api_error"
	default:
		return "transport_error"
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

var _ ports.RatesClient = (*Client)(nil)
