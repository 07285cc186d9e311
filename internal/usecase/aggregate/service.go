package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"feedboard/internal/domain/entity"
	"feedboard/internal/observability/tracing"
)

// Runner executes the ingest pipeline for one feed.
type Runner interface {
	Run(ctx context.Context, feed entity.FeedConfig) entity.FeedOutcome
}

// FeedSource provides the configured feeds.
type FeedSource interface {
	List() []entity.FeedConfig
	Get(id string) (entity.FeedConfig, error)
}

// Service owns the aggregated state. Refresh replaces it wholesale;
// RetrySingle merges one feed into it.
type Service struct {
	runner      Runner
	feeds       FeedSource
	concurrency int
	logger      *slog.Logger
	now         func() time.Time

	mu       sync.RWMutex
	items    []entity.Item
	failures []entity.FailureEntry
	at       time.Time
}

// NewService creates a Service. concurrency bounds the pipelines run at
// once; concurrency <= 0 starts every feed's pipeline immediately.
func NewService(runner Runner, feeds FeedSource, concurrency int, logger *slog.Logger) *Service {
	if concurrency < 0 {
		concurrency = 0
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		runner:      runner,
		feeds:       feeds,
		concurrency: concurrency,
		logger:      logger,
		now:         time.Now,
		failures:    []entity.FailureEntry{},
	}
}

// RefreshAll refreshes every feed currently in the feed source.
func (s *Service) RefreshAll(ctx context.Context) entity.Snapshot {
	return s.Refresh(ctx, s.feeds.List())
}

// Refresh runs one pipeline per feed concurrently, waits for all of them and
// replaces the displayed state with the merged result. It never fails as a
// whole; failing feeds are listed in the snapshot's failure report.
func (s *Service) Refresh(ctx context.Context, feeds []entity.FeedConfig) entity.Snapshot {
	ctx, span := tracing.Start(ctx, "aggregate.Refresh")
	defer span.End()
	span.SetAttributes(attribute.Int("feeds.count", len(feeds)))

	outcomes := make([]entity.FeedOutcome, len(feeds))

	// 各パイプラインは自身のスロットにのみ書き込む
	var eg errgroup.Group
	if s.concurrency > 0 {
		eg.SetLimit(s.concurrency)
	}
	for i, feed := range feeds {
		eg.Go(func() error {
			outcomes[i] = s.run(ctx, feed)
			return nil
		})
	}
	_ = eg.Wait()

	items, failures := mergeOutcomes(feeds, outcomes)

	s.mu.Lock()
	s.items = items
	s.failures = failures
	s.at = s.now()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	span.SetAttributes(
		attribute.Int("items.count", len(snap.Items)),
		attribute.Int("failures.count", len(snap.Failures)),
	)
	return snap
}

// RetrySingle re-runs the pipeline for one feed. On success its items replace
// the feed's previous items in the existing collection and its failure entry
// is removed. On failure, or when the feed yields no items, only the feed's
// failure entry is updated and the error is returned.
func (s *Service) RetrySingle(ctx context.Context, feedID string) error {
	feed, err := s.feeds.Get(feedID)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrFeedNotFound, feedID)
	}

	outcome := s.run(ctx, feed)

	retryErr := outcome.Err
	if retryErr == nil && len(outcome.Items) == 0 {
		retryErr = entity.ErrNoItems
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if retryErr != nil {
		s.upsertFailureLocked(failureFor(feed, retryErr))
		return retryErr
	}

	merged := make([]entity.Item, 0, len(s.items)+len(outcome.Items))
	for _, it := range s.items {
		if it.FeedID != feed.ID {
			merged = append(merged, it)
		}
	}
	merged = append(merged, outcome.Items...)
	s.items = sortItems(dedupe(merged))
	s.removeFailureLocked(feed.ID)
	return nil
}

// Snapshot returns a copy of the current state.
func (s *Service) Snapshot() entity.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// run executes the pipeline and turns a panic into a failure outcome.
func (s *Service) run(ctx context.Context, feed entity.FeedConfig) (out entity.FeedOutcome) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("feed pipeline panicked",
				slog.String("feed_id", feed.ID),
				slog.Any("panic", rec))
			out = entity.FeedOutcome{FeedID: feed.ID, Err: fmt.Errorf("internal error: %v", rec)}
		}
	}()
	return s.runner.Run(ctx, feed)
}

func (s *Service) snapshotLocked() entity.Snapshot {
	items := make([]entity.Item, len(s.items))
	copy(items, s.items)
	failures := make([]entity.FailureEntry, len(s.failures))
	copy(failures, s.failures)
	return entity.Snapshot{Items: items, Failures: failures, RefreshedAt: s.at}
}

func (s *Service) upsertFailureLocked(entry entity.FailureEntry) {
	for i := range s.failures {
		if s.failures[i].FeedID == entry.FeedID {
			s.failures[i].Message = entry.Message
			return
		}
	}
	s.failures = append(s.failures, entry)
}

func (s *Service) removeFailureLocked(feedID string) {
	kept := s.failures[:0]
	for _, f := range s.failures {
		if f.FeedID != feedID {
			kept = append(kept, f)
		}
	}
	s.failures = kept
}
