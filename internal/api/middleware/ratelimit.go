package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/crossborder-pricing/internal/core/domain"
	"github.com/99minutos/crossborder-pricing/internal/core/ports"
	"github.com/99minutos/crossborder-pricing/internal/pkg/metrics"
)

// RateLimit rejects callers that exceed the limiter's budget with 429.
// Requests are keyed by client IP. If the limiter itself fails the request is
// let through.
func RateLimit(limiter ports.RateLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()

			decision, err := limiter.Allow(c.Request().Context(), key)
			if err != nil {
				log.Warn().Err(err).Str("client_ip", key).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			writeRateLimitHeaders(c.Response().Header(), decision, time.Now())
			if !decision.Allowed {
				metrics.RateLimitRejectedTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}

func writeRateLimitHeaders(h http.Header, d domain.RateLimitDecision, now time.Time) {
	if d.Limit > 0 {
		h.Set("RateLimit-Limit", strconv.Itoa(d.Limit))
	}
	if d.Remaining >= 0 {
		h.Set("RateLimit-Remaining", strconv.Itoa(d.Remaining))
	}
	if d.ResetAt.IsZero() {
		return
	}
	h.Set("RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))
	if !d.Allowed {
		retryAfter := int64(math.Ceil(d.ResetAt.Sub(now).Seconds()))
		if retryAfter < 0 {
			retryAfter = 0
		}
		h.Set("Retry-After", strconv.FormatInt(retryAfter, 10))
	}
}
