package aggregate

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"feedboard/internal/observability/metrics"
)

// DefaultInterval is the time between scheduled refresh cycles.
const DefaultInterval = 5 * time.Minute

// Controller runs refresh cycles on a fixed interval and on demand. At most
// one cycle is in flight; a trigger that arrives while one is running is
// dropped.
type Controller struct {
	svc      *Service
	interval time.Duration
	logger   *slog.Logger

	cron    *cron.Cron
	ctx     context.Context
	running atomic.Bool
	ready   atomic.Bool

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

// NewController creates a Controller. interval <= 0 selects DefaultInterval.
func NewController(svc *Service, interval time.Duration, logger *slog.Logger) *Controller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		svc:      svc,
		interval: interval,
		logger:   logger,
		ctx:      context.Background(),
	}
}

// Start runs the startup cycle and arms the interval schedule. Cycles run
// under ctx; cancelling it aborts in-flight fetches.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	c.ctx = ctx
	c.cron = cron.New()
	c.cron.Schedule(cron.Every(c.interval), cron.FuncJob(func() {
		c.TriggerRefresh()
	}))
	c.cron.Start()
	c.mu.Unlock()

	c.logger.Info("refresh scheduler started",
		slog.Duration("interval", c.interval))

	c.TriggerRefresh()
}

// Stop disarms the schedule and waits for an in-flight cycle and any
// background retries to finish.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.stopped = true
	cr := c.cron
	c.mu.Unlock()

	if cr != nil {
		<-cr.Stop().Done()
	}
	c.wg.Wait()
	c.logger.Info("refresh scheduler stopped")
}

// TriggerRefresh starts a cycle in the background. It reports false when a
// cycle is already running or the controller has been stopped.
func (c *Controller) TriggerRefresh() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return false
	}
	if !c.running.CompareAndSwap(false, true) {
		c.logger.Info("refresh skipped: cycle already in flight")
		metrics.RecordRefreshSkipped()
		return false
	}

	ctx := c.ctx
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer c.running.Store(false)
		c.runCycle(ctx)
	}()
	return true
}

// RetryInBackground re-runs one feed's pipeline without blocking the caller.
// The fetch runs under the controller's context and Stop waits for it. It
// reports false once the controller has been stopped.
func (c *Controller) RetryInBackground(feedID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return false
	}

	ctx := c.ctx
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.svc.RetrySingle(ctx, feedID); err != nil {
			c.logger.Warn("background fetch failed",
				slog.String("feed_id", feedID),
				slog.Any("error", err))
		}
	}()
	return true
}

// Running reports whether a cycle is in flight.
func (c *Controller) Running() bool {
	return c.running.Load()
}

// Ready reports whether at least one cycle has completed.
func (c *Controller) Ready() bool {
	return c.ready.Load()
}

func (c *Controller) runCycle(ctx context.Context) {
	start := time.Now()
	c.logger.Info("refresh started")

	snap := c.svc.RefreshAll(ctx)

	duration := time.Since(start)
	metrics.RecordRefresh(duration, len(snap.Items), len(snap.Failures))
	c.ready.Store(true)

	c.logger.Info("refresh completed",
		slog.Int("items", len(snap.Items)),
		slog.Int("failures", len(snap.Failures)),
		slog.Duration("duration", duration))
}
