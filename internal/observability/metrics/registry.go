package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, route pattern, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedboard_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "code"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feedboard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Ingestion metrics track transport attempts and pipeline outcomes
var (
	// FeedFetchTotal counts transport attempts by strategy and result
	FeedFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedboard_feed_fetch_total",
			Help: "Total number of feed transport attempts",
		},
		[]string{"strategy", "result"},
	)

	// FeedFetchDuration measures transport attempt latency
	FeedFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feedboard_feed_fetch_duration_seconds",
			Help:    "Duration of feed transport attempts in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 7, 10},
		},
		[]string{"strategy"},
	)

	// PipelineOutcomesTotal counts per-feed pipeline results (success, empty, failure)
	PipelineOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedboard_pipeline_outcomes_total",
			Help: "Total number of per-feed pipeline outcomes",
		},
		[]string{"result"},
	)
)

// Aggregation metrics track refresh cycles and the displayed state
var (
	// RefreshDuration measures full refresh cycle duration
	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feedboard_refresh_duration_seconds",
			Help:    "Duration of refresh cycles in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
	)

	// RefreshSkippedTotal counts refresh requests dropped because a cycle was in flight
	RefreshSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feedboard_refresh_skipped_total",
			Help: "Total number of refresh cycles dropped because another cycle was running",
		},
	)

	// ItemsDisplayed is the size of the aggregated item collection
	ItemsDisplayed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feedboard_items_displayed",
			Help: "Number of items in the aggregated collection",
		},
	)

	// FeedsFailed is the size of the failure report
	FeedsFailed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feedboard_feeds_failed",
			Help: "Number of feeds currently in the failure report",
		},
	)
)
