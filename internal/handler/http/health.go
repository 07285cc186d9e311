// Package http wires the HTTP surface: middleware, health and metrics
// endpoints, and the route groups in its subpackages.
package http

import (
	"net/http"
	"time"

	"feedboard/internal/domain/entity"
	"feedboard/internal/handler/http/respond"
)

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status      string     `json:"status"`    // "healthy", "ready" or "starting"
	Timestamp   string     `json:"timestamp"` // RFC 3339
	Version     string     `json:"version"`
	Items       int        `json:"items"`
	Failures    int        `json:"failures"`
	RefreshedAt *time.Time `json:"refreshed_at,omitempty"`
}

// ReadinessChecker reports whether the first refresh cycle has completed.
type ReadinessChecker interface {
	Ready() bool
}

// Snapshotter provides the aggregated state.
type Snapshotter interface {
	Snapshot() entity.Snapshot
}

// HealthHandler serves liveness at /health and readiness at /health/ready.
type HealthHandler struct {
	Readiness ReadinessChecker
	Snapshots Snapshotter
	Version   string
}

// Live reports healthy while the process can serve requests.
func (h HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.response("healthy"))
}

// Ready returns 503 until the first cycle has finished.
func (h HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.Readiness == nil || !h.Readiness.Ready() {
		respond.JSON(w, http.StatusServiceUnavailable, h.response("starting"))
		return
	}
	respond.JSON(w, http.StatusOK, h.response("ready"))
}

func (h HealthHandler) response(status string) HealthResponse {
	resp := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.Version,
	}
	if h.Snapshots != nil {
		snap := h.Snapshots.Snapshot()
		resp.Items = len(snap.Items)
		resp.Failures = len(snap.Failures)
		if !snap.RefreshedAt.IsZero() {
			at := snap.RefreshedAt.UTC()
			resp.RefreshedAt = &at
		}
	}
	return resp
}
