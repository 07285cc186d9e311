// Package ingest runs one feed through transport, parsing, image resolution
// and normalization, producing an entity.FeedOutcome.
package ingest

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"feedboard/internal/domain/entity"
	"feedboard/internal/observability/metrics"
	"feedboard/internal/observability/tracing"
)

// Fetcher resolves a feed URL into a raw payload.
type Fetcher interface {
	Resolve(ctx context.Context, feedURL string) (entity.Payload, error)
}

// FeedParser interprets a raw payload.
type FeedParser interface {
	Parse(payload entity.Payload) (entity.ParsedFeed, error)
}

// FeedLister exposes the configured feed set for source title reconciliation.
type FeedLister interface {
	List() []entity.FeedConfig
}

// Pipeline processes a single feed. It holds no per-run state and is safe
// for concurrent use.
type Pipeline struct {
	Fetcher    Fetcher
	Parser     FeedParser
	Images     ImageResolver
	Normalizer Normalizer
	Feeds      FeedLister
	Logger     *slog.Logger
}

// NewPipeline creates a Pipeline.
func NewPipeline(fetcher Fetcher, parser FeedParser, images ImageResolver, feeds FeedLister, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		Fetcher: fetcher,
		Parser:  parser,
		Images:  images,
		Feeds:   feeds,
		Logger:  logger,
	}
}

// Run fetches, parses and normalizes feed. Every error is reported through
// the returned outcome. A successful outcome may carry zero items.
func (p *Pipeline) Run(ctx context.Context, feed entity.FeedConfig) entity.FeedOutcome {
	ctx, span := tracing.Start(ctx, "ingest.Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("feed.id", feed.ID),
		attribute.String("feed.url", feed.URL),
	)

	start := time.Now()
	logger := p.Logger.With(slog.String("feed_id", feed.ID))

	payload, err := p.Fetcher.Resolve(ctx, feed.URL)
	if err != nil {
		tracing.RecordError(span, err)
		metrics.RecordPipelineOutcome(metrics.ResultFailure)
		return entity.FeedOutcome{FeedID: feed.ID, Err: err}
	}

	parsed, err := p.Parser.Parse(payload)
	if err != nil {
		logger.Warn("feed payload could not be parsed",
			slog.String("strategy", payload.Strategy),
			slog.Any("error", err))
		tracing.RecordError(span, err)
		metrics.RecordPipelineOutcome(metrics.ResultFailure)
		return entity.FeedOutcome{FeedID: feed.ID, Err: err}
	}

	var configured []entity.FeedConfig
	if p.Feeds != nil {
		configured = p.Feeds.List()
	}
	sourceTitle := ReconcileSourceTitle(parsed.Title, feed, configured)
	base := baseURL(parsed.Link, feed.URL)

	items := make([]entity.Item, 0, len(parsed.Items))
	for _, raw := range parsed.Items {
		image := p.Images.Resolve(raw, base, feed)
		items = append(items, p.Normalizer.Normalize(raw, feed, sourceTitle, image))
	}

	result := metrics.ResultSuccess
	if len(items) == 0 {
		result = metrics.ResultEmpty
	}
	metrics.RecordPipelineOutcome(result)
	span.SetAttributes(
		attribute.String("feed.strategy", payload.Strategy),
		attribute.Int("items.count", len(items)),
	)

	logger.Debug("feed processed",
		slog.String("strategy", payload.Strategy),
		slog.Int("items", len(items)),
		slog.Duration("duration", time.Since(start)))

	return entity.FeedOutcome{FeedID: feed.ID, Items: items}
}

// baseURL prefers the feed's declared site link and falls back to the feed
// URL itself.
func baseURL(declared, feedURL string) string {
	if u, err := url.Parse(declared); err == nil && u.IsAbs() && u.Host != "" {
		return declared
	}
	return feedURL
}
