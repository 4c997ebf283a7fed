package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/99minutos/crossborder-pricing/internal/core/domain"
	"github.com/99minutos/crossborder-pricing/internal/core/ports"
)

type fakeShipping struct{}

func (fakeShipping) GetRates(context.Context, ports.ShippingRatesInput) ports.ShippingRatesResult {
	return ports.ShippingRatesResult{US: domain.NewRatesResult(), UK: domain.NewRatesResult()}
}

type fakePricing struct{}

func (fakePricing) Quote(_ context.Context, in domain.PriceInput) (*ports.PriceQuote, error) {
	b, err := domain.CalculatePrice(in)
	if err != nil {
		return nil, err
	}
	return &ports.PriceQuote{
		SellPriceJPY: b.SellPrice,
		ExchangeRate: ports.ExchangeRate{JPYPerUSD: 145, Source: domain.ExchangeRateFallback},
	}, nil
}

func (fakePricing) CurrentRate(context.Context) ports.ExchangeRate {
	return ports.ExchangeRate{JPYPerUSD: 145, Source: domain.ExchangeRateFallback}
}

type denyAfter struct{ n int }

func (d *denyAfter) Allow(context.Context, string) (domain.RateLimitDecision, error) {
	d.n--
	return domain.RateLimitDecision{Allowed: d.n >= 0, Limit: 1}, nil
}

func newTestRouter(limiter ports.RateLimiter) http.Handler {
	reg := prometheus.NewRegistry()
	return NewRouter(Deps{
		Shipping:                fakeShipping{},
		Pricing:                 fakePricing{},
		RateLimiter:             limiter,
		ShippingTokenConfigured: true,
		Registerer:              reg,
		Gatherer:                reg,
		Log:                     zerolog.Nop(),
	})
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_ShippingRates(t *testing.T) {
	h := newTestRouter(nil)

	rec := do(h, http.MethodPost, "/api/shipping-rates", `{"weight":500,"width":20,"height":10,"depth":5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := resp["US"]; !ok {
		t.Error("missing US key")
	}
	if _, ok := resp["UK"]; !ok {
		t.Error("missing UK key")
	}
}

func TestRouter_ShippingRates_InvalidBodyIs400(t *testing.T) {
	h := newTestRouter(nil)

	rec := do(h, http.MethodPost, "/api/shipping-rates", `{"weight":500}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Error == "" {
		t.Fatalf("expected JSON error body, got %s", rec.Body.String())
	}
}

func TestRouter_PriceExceedingRatesIs422(t *testing.T) {
	h := newTestRouter(nil)

	rec := do(h, http.MethodPost, "/api/price", `{"costPrice":1000,"shippingFee":3000,"feePercent":60,"targetProfitRate":40}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "rates exceed 100%") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestRouter_RateLimitAppliesToAPIOnly(t *testing.T) {
	h := newTestRouter(&denyAfter{n: 1})

	if rec := do(h, http.MethodGet, "/api/exchange-rate", ""); rec.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", rec.Code)
	}
	if rec := do(h, http.MethodGet, "/api/exchange-rate", ""); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", rec.Code)
	}
	if rec := do(h, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("health must not be rate limited, got %d", rec.Code)
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	h := newTestRouter(nil)

	if rec := do(h, http.MethodGet, "/health/ready", ""); rec.Code != http.StatusOK {
		t.Fatalf("readiness: expected 200, got %d", rec.Code)
	}

	do(h, http.MethodGet, "/api/exchange-rate", "")
	rec := do(h, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "requests_total") {
		t.Errorf("expected HTTP request metrics, got:\n%s", rec.Body.String())
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/price", nil)
	req.Header.Set("Origin", "https://seller.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("expected wildcard CORS origin, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestRouter_UnknownRouteIsJSON404(t *testing.T) {
	h := newTestRouter(nil)

	rec := do(h, http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error"`) {
		t.Errorf("expected JSON error envelope, got %s", rec.Body.String())
	}
}
