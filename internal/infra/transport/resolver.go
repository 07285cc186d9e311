// Package transport fetches raw feed payloads through an ordered chain of
// strategies: the origin itself, then one or more relay endpoints.
package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"feedboard/internal/domain/entity"
	"feedboard/internal/observability/metrics"
	"feedboard/internal/resilience/circuitbreaker"
)

var errCircuitOpen = errors.New("circuit open")

// Resolver tries each strategy in order until one returns a payload.
type Resolver struct {
	strategies []Strategy
	timeout    time.Duration
	logger     *slog.Logger

	mu       sync.Mutex
	breakers map[breakerKey]*circuitbreaker.CircuitBreaker
}

type breakerKey struct {
	strategy string
	host     string
}

// NewResolver builds a resolver over the given strategies. Circuit breakers
// are kept per strategy and feed host.
func NewResolver(timeout time.Duration, logger *slog.Logger, strategies ...Strategy) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		strategies: strategies,
		timeout:    timeout,
		logger:     logger,
		breakers:   make(map[breakerKey]*circuitbreaker.CircuitBreaker),
	}
}

// breaker returns the breaker for strategy against feedURL's host, creating
// it on first use.
func (r *Resolver) breaker(strategy, feedURL string) *circuitbreaker.CircuitBreaker {
	key := breakerKey{strategy: strategy, host: feedHost(feedURL)}

	r.mu.Lock()
	defer r.mu.Unlock()
	cb, ok := r.breakers[key]
	if !ok {
		cb = circuitbreaker.New(circuitbreaker.TransportConfig(key.strategy, key.host))
		r.breakers[key] = cb
	}
	return cb
}

func feedHost(feedURL string) string {
	if u, err := url.Parse(feedURL); err == nil && u.Host != "" {
		return strings.ToLower(u.Host)
	}
	return feedURL
}

// NewDefaultResolver wires direct, relay and alt-relay strategies from cfg.
// Relays with an empty URL are left out of the chain.
func NewDefaultResolver(cfg Config, logger *slog.Logger) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transport config: %w", err)
	}
	client := NewClient(cfg)

	strategies := []Strategy{NewDirectStrategy(client, cfg.MaxBodySize)}
	if cfg.RelayURL != "" {
		strategies = append(strategies, NewRelayStrategy(StrategyRelay, client, cfg.RelayURL, cfg.RelayParam, cfg.MaxBodySize))
	}
	if cfg.AltRelayURL != "" {
		strategies = append(strategies, NewRelayStrategy(StrategyAltRelay, client, cfg.AltRelayURL, cfg.AltRelayParam, cfg.MaxBodySize))
	}

	return NewResolver(cfg.Timeout, logger, strategies...), nil
}

// Strategies returns the strategy names in attempt order.
func (r *Resolver) Strategies() []string {
	names := make([]string, len(r.strategies))
	for i, s := range r.strategies {
		names[i] = s.Name()
	}
	return names
}

// Resolve fetches feedURL. The returned error is always a *entity.TransportError.
func (r *Resolver) Resolve(ctx context.Context, feedURL string) (entity.Payload, error) {
	attempts := make([]entity.AttemptError, 0, len(r.strategies))

	for _, s := range r.strategies {
		if ctx.Err() != nil {
			attempts = append(attempts, entity.AttemptError{Strategy: s.Name(), Err: ctx.Err()})
			break
		}

		payload, attempt, ok := r.attempt(ctx, r.breaker(s.Name(), feedURL), s, feedURL)
		if ok {
			return payload, nil
		}
		attempts = append(attempts, attempt)

		r.logger.Debug("transport attempt failed",
			slog.String("feed_url", feedURL),
			slog.String("strategy", s.Name()),
			slog.Bool("timed_out", attempt.TimedOut),
			slog.Any("error", attempt.Err))
	}

	tErr := entity.NewTransportError(feedURL, attempts)
	r.logger.Error("all transport strategies failed",
		slog.String("feed_url", feedURL),
		slog.Int("attempts", len(attempts)),
		slog.String("error", tErr.Message))
	return entity.Payload{}, tErr
}

func (r *Resolver) attempt(ctx context.Context, cb *circuitbreaker.CircuitBreaker, s Strategy, feedURL string) (entity.Payload, entity.AttemptError, bool) {
	attemptCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	result, err := cb.Execute(func() (interface{}, error) {
		return s.Fetch(attemptCtx, feedURL)
	})
	metrics.RecordFetchAttempt(s.Name(), err == nil, time.Since(start))

	if err == nil {
		return result.(entity.Payload), entity.AttemptError{}, true
	}

	if errors.Is(err, circuitbreaker.ErrOpenState) || errors.Is(err, circuitbreaker.ErrTooManyRequests) {
		err = errCircuitOpen
	}
	timedOut := errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil
	return entity.Payload{}, entity.AttemptError{Strategy: s.Name(), Err: err, TimedOut: timedOut}, false
}
