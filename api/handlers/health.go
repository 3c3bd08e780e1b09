// ABOUTME: Health and metrics handlers for the Huma API
// ABOUTME: Metrics expose per-source call and failure counts from the go-metrics registry

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"kvk-insights-api/api/dto/responses"
	"kvk-insights-api/pkg/featureflags"
)

// MetricsSnapshotter exposes counters by metric name
type MetricsSnapshotter interface {
	Snapshot() map[string]int64
}

// HealthHandler serves liveness and metrics
type HealthHandler struct {
	version string
	flags   featureflags.Manager
	metrics MetricsSnapshotter
}

// NewHealthHandler creates a new health handler. metrics may be nil.
func NewHealthHandler(version string, flags featureflags.Manager, metrics MetricsSnapshotter) *HealthHandler {
	return &HealthHandler{version: version, flags: flags, metrics: metrics}
}

// RegisterRoutes registers the health and metrics routes
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Liveness check",
		Tags:        []string{"Operations"},
	}, h.Health)

	huma.Register(api, huma.Operation{
		OperationID: "metrics",
		Method:      http.MethodGet,
		Path:        "/metrics",
		Summary:     "Upstream source counters",
		Tags:        []string{"Operations"},
	}, h.Metrics)
}

// HealthOutput defines the output for the Health operation
type HealthOutput struct {
	Body responses.HealthResponse
}

// Health handles the GET /healthz endpoint
func (h *HealthHandler) Health(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	flags := map[string]bool{}
	if h.flags != nil {
		for flag, enabled := range h.flags.GetAllFlags() {
			flags[string(flag)] = enabled
		}
	}
	return &HealthOutput{Body: responses.HealthResponse{Status: "ok", Version: h.version, Flags: flags}}, nil
}

// MetricsOutput defines the output for the Metrics operation
type MetricsOutput struct {
	Body map[string]int64
}

// Metrics handles the GET /metrics endpoint
func (h *HealthHandler) Metrics(ctx context.Context, _ *struct{}) (*MetricsOutput, error) {
	if h.metrics == nil {
		return &MetricsOutput{Body: map[string]int64{}}, nil
	}
	return &MetricsOutput{Body: h.metrics.Snapshot()}, nil
}
