// Package metrics provides Prometheus collectors and recording helpers.
//
// All metrics are registered with the Prometheus default registry through
// promauto and exposed via the /metrics endpoint.
//
// Example usage:
//
//	start := time.Now()
//	payload, err := strategy.Fetch(ctx, url)
//	metrics.RecordFetchAttempt(strategy.Name(), err == nil, time.Since(start))
package metrics
