// Package metrics defines and registers the custom Prometheus metrics for the
// cross-border pricing API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry on package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pricing"

// ── Shipping rate metrics ─────────────────────────────────────────────────────

// RatesCacheTotal counts destination cache lookups.
// Label:
//   - result: "hit" or "miss"
var RatesCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rates_cache_total",
		Help:      "Total number of shipping rate cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// RatesUpstreamRequestsTotal counts calls to the external rates API.
// Labels:
//   - destination: country code ("US", "GB")
//   - outcome: "success", "api_error", "transport_error", "circuit_open", "config_error", "throttled"
var RatesUpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rates_upstream_requests_total",
		Help:      "Total number of shipping rate API calls, by destination and outcome.",
	},
	[]string{"destination", "outcome"},
)

// RatesUpstreamDuration measures the latency of the external rates API.
var RatesUpstreamDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rates_upstream_duration_seconds",
		Help:      "Duration of shipping rate API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"destination"},
)

// RatesMissingServiceTotal counts gap-fill messages synthesized for a
// required Japan Post service.
var RatesMissingServiceTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rates_missing_service_total",
		Help:      "Total number of required services absent from an API response.",
	},
	[]string{"service"},
)

// ── Pricing metrics ───────────────────────────────────────────────────────────

// ExchangeRateFallbackTotal counts price quotes that used the fallback rate.
var ExchangeRateFallbackTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exchange_rate_fallback_total",
		Help:      "Total number of times the fallback exchange rate was used.",
	},
)

// RateLimitRejectedTotal counts inbound requests rejected by the rate limiter.
var RateLimitRejectedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_rejected_total",
		Help:      "Total number of inbound requests rejected by the rate limiter.",
	},
)
