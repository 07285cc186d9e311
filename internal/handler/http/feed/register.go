// Package feed serves the feed registry routes: listing, adding and retrying
// configured feeds.
package feed

import (
	"context"
	"net/http"

	"feedboard/internal/domain/entity"
	srcUC "feedboard/internal/usecase/source"
)

// Registry is the feed list the handlers read and extend.
type Registry interface {
	List() []entity.FeedConfig
	Add(in srcUC.AddInput) (entity.FeedConfig, error)
}

// Retrier re-runs the pipeline for one feed.
type Retrier interface {
	RetrySingle(ctx context.Context, feedID string) error
}

// BackgroundRetrier starts a tracked fetch of one feed without waiting for it.
type BackgroundRetrier interface {
	RetryInBackground(feedID string) bool
}

// Register registers the feed routes on mux. bg may be nil, in which case
// added feeds wait for the next refresh cycle.
func Register(mux *http.ServeMux, reg Registry, retrier Retrier, bg BackgroundRetrier) {
	mux.Handle("GET /api/feeds", ListHandler{Registry: reg})
	mux.Handle("POST /api/feeds", CreateHandler{Registry: reg, Background: bg})
	mux.Handle("POST /api/feeds/{id}/retry", RetryHandler{Retrier: retrier})
}
