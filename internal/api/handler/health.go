package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler handles GET /health, the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// DependencyCheck returns nil when the dependency is reachable.
type DependencyCheck func(ctx context.Context) error

// HealthDependenciesHandler handles GET /health/ready, the readiness probe.
//
// Only the registered checks affect the status code. A missing shipping API
// token is reported but does not make the service unready: every lookup still
// answers, with a configuration error per destination.
type HealthDependenciesHandler struct {
	checks          map[string]DependencyCheck
	shippingTokenOK bool
	timeout         time.Duration
}

func NewHealthDependenciesHandler(checks map[string]DependencyCheck, shippingTokenOK bool) *HealthDependenciesHandler {
	if checks == nil {
		checks = map[string]DependencyCheck{}
	}
	return &HealthDependenciesHandler{
		checks:          checks,
		shippingTokenOK: shippingTokenOK,
		timeout:         3 * time.Second,
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.checks)+1)
	healthy := true

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}

	if h.shippingTokenOK {
		deps["shipping_api"] = dependencyStatus{Status: "ok"}
	} else {
		deps["shipping_api"] = dependencyStatus{Status: "unconfigured", Error: "access token is not set"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
