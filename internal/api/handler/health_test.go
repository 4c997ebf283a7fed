package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	e := newTestEcho()
	c, rec := jsonContext(e, http.MethodGet, "/health", "")

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthDependenciesHandler_Readiness(t *testing.T) {
	cases := []struct {
		name       string
		checks     map[string]DependencyCheck
		tokenOK    bool
		wantCode   int
		wantStatus string
		wantShip   string
	}{
		{
			name:       "no dependencies",
			tokenOK:    true,
			wantCode:   http.StatusOK,
			wantStatus: "ok",
			wantShip:   "ok",
		},
		{
			name:       "redis up, token missing",
			checks:     map[string]DependencyCheck{"redis": func(context.Context) error { return nil }},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
			wantShip:   "unconfigured",
		},
		{
			name:       "redis down",
			checks:     map[string]DependencyCheck{"redis": func(context.Context) error { return errors.New("connection refused") }},
			tokenOK:    true,
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "degraded",
			wantShip:   "ok",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			c, rec := jsonContext(e, http.MethodGet, "/health/ready", "")

			if err := NewHealthDependenciesHandler(tc.checks, tc.tokenOK).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}

			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Status != tc.wantStatus {
				t.Errorf("expected status %q, got %q", tc.wantStatus, resp.Status)
			}
			if resp.Dependencies["shipping_api"].Status != tc.wantShip {
				t.Errorf("expected shipping_api %q, got %+v", tc.wantShip, resp.Dependencies["shipping_api"])
			}
		})
	}
}
