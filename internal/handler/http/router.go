package http

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"feedboard/internal/handler/http/feed"
	"feedboard/internal/handler/http/item"
	"feedboard/internal/handler/http/relay"
	"feedboard/internal/handler/http/requestid"
	"feedboard/internal/observability/tracing"
)

// Deps are the collaborators the routes are served from.
type Deps struct {
	Logger     *slog.Logger
	Version    string
	Snapshots  item.Snapshotter
	Refresher  item.Refresher
	Readiness  ReadinessChecker
	Registry   feed.Registry
	Retrier    feed.Retrier
	Background feed.BackgroundRetrier
	Relay      relay.Handler
	RelayRate  *rate.Limiter
}

// NewRouter registers every route and wraps the mux in the middleware
// chain: request id, tracing, logging, panic recovery, then metrics.
func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	health := HealthHandler{Readiness: d.Readiness, Snapshots: d.Snapshots, Version: d.Version}
	mux.HandleFunc("GET /health", health.Live)
	mux.HandleFunc("GET /health/ready", health.Ready)
	mux.Handle("GET /metrics", MetricsHandler())

	item.Register(mux, d.Snapshots, d.Refresher)
	feed.Register(mux, d.Registry, d.Retrier, d.Background)

	if d.Relay.Logger == nil {
		d.Relay.Logger = logger
	}
	relay.Register(mux, d.Relay, d.RelayRate)

	return Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		Logging(logger),
		Recover(logger),
		Metrics,
	)
}
