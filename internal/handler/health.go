package handler

import (
	"context"
	"net/http"
	"time"
)

const readyTimeout = 5 * time.Second

// HealthChecker defines an interface for checking service health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Dependency is a backing service reported by Readyz.
type Dependency struct {
	Name    string
	Checker HealthChecker
	// Required dependencies make the instance unready when they fail.
	// Optional ones only degrade it.
	Required bool
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	deps []Dependency
}

// NewHealthHandler creates a HealthHandler reporting on favoritesDB and
// trendingCache. The favorites database backs accounts and favorites, so it
// is required. The trending cache is optional because trending falls back to
// the upstream provider. Nil checkers are reported as not configured.
func NewHealthHandler(favoritesDB, trendingCache HealthChecker) *HealthHandler {
	return &HealthHandler{deps: []Dependency{
		{Name: "favorites_db", Checker: favoritesDB, Required: true},
		{Name: "trending_cache", Checker: trendingCache},
	}}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult is the outcome of one dependency check.
type CheckResult struct {
	Status    string `json:"status"`
	Required  bool   `json:"required"`
	LatencyMS int64  `json:"latency_ms"`
}

// Healthz is a liveness probe endpoint.
// It returns 200 while the process is serving; dependencies are not checked.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz is a readiness probe endpoint.
// It returns 503 when a required dependency fails. A failing optional
// dependency reports "degraded" with 200.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	status := "ok"
	checks := make(map[string]CheckResult, len(h.deps))
	for _, dep := range h.deps {
		result := checkDependency(ctx, dep)
		checks[dep.Name] = result
		if result.Status != "unavailable" {
			continue
		}
		if dep.Required {
			status = "unhealthy"
		} else if status == "ok" {
			status = "degraded"
		}
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, statusCode, HealthResponse{Status: status, Checks: checks})
}

func checkDependency(ctx context.Context, dep Dependency) CheckResult {
	result := CheckResult{Required: dep.Required}
	if dep.Checker == nil {
		result.Status = "not configured"
		return result
	}

	start := time.Now()
	err := dep.Checker.Ping(ctx)
	result.LatencyMS = time.Since(start).Milliseconds()
	if err != nil {
		result.Status = "unavailable"
	} else {
		result.Status = "ok"
	}
	return result
}
