package entity

import "time"

// Payload is the raw body returned by a successful transport attempt.
type Payload struct {
	Body        []byte
	ContentType string
	Strategy    string
}

// FeedOutcome is the result of one feed's pipeline run.
// Err is nil on success, in which case Items holds the normalized entries.
type FeedOutcome struct {
	FeedID string
	Items  []Item
	Err    error
}

// Failed reports whether the pipeline ended in a failure.
func (o FeedOutcome) Failed() bool {
	return o.Err != nil
}

// FailureEntry is one row of the failure report.
type FailureEntry struct {
	FeedID  string `json:"feed_id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Message string `json:"message"`
}

// Snapshot is an immutable copy of the aggregated state.
type Snapshot struct {
	Items       []Item         `json:"items"`
	Failures    []FailureEntry `json:"failures"`
	RefreshedAt time.Time      `json:"refreshed_at"`
}
