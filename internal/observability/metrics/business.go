package metrics

import (
	"strconv"
	"time"
)

// Pipeline result labels.
const (
	ResultSuccess = "success"
	ResultEmpty   = "empty"
	ResultFailure = "failure"
)

// RecordFetchAttempt records one transport attempt.
func RecordFetchAttempt(strategy string, success bool, duration time.Duration) {
	result := ResultSuccess
	if !success {
		result = ResultFailure
	}
	FeedFetchTotal.WithLabelValues(strategy, result).Inc()
	FeedFetchDuration.WithLabelValues(strategy).Observe(duration.Seconds())
}

// RecordPipelineOutcome records the outcome of one feed's pipeline.
func RecordPipelineOutcome(result string) {
	PipelineOutcomesTotal.WithLabelValues(result).Inc()
}

// RecordRefresh records a completed refresh cycle and the resulting state sizes.
func RecordRefresh(duration time.Duration, items, failures int) {
	RefreshDuration.Observe(duration.Seconds())
	UpdateState(items, failures)
}

// UpdateState sets the displayed item and failure gauges.
func UpdateState(items, failures int) {
	ItemsDisplayed.Set(float64(items))
	FeedsFailed.Set(float64(failures))
}

// RecordRefreshSkipped records a refresh request dropped by the in-flight guard.
func RecordRefreshSkipped() {
	RefreshSkippedTotal.Inc()
}

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(method, path string, code int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(code)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
