// Package item serves the aggregated item collection, the failure report and
// the manual refresh trigger.
package item

import (
	"net/http"

	"feedboard/internal/domain/entity"
)

// Snapshotter provides the current aggregated state.
type Snapshotter interface {
	Snapshot() entity.Snapshot
}

// Refresher starts a refresh cycle unless one is already running.
type Refresher interface {
	TriggerRefresh() bool
}

// Register registers the item routes on mux.
func Register(mux *http.ServeMux, snap Snapshotter, refresher Refresher) {
	mux.Handle("GET /api/items", ListHandler{Snapshots: snap})
	mux.Handle("GET /api/failures", FailuresHandler{Snapshots: snap})
	mux.Handle("POST /api/refresh", RefreshHandler{Refresher: refresher})
}
