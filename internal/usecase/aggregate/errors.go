// Package aggregate fans the ingest pipeline out over every configured feed,
// merges the outcomes and owns the displayed item collection and failure
// report.
package aggregate

import "errors"

// Sentinel errors for aggregate use case operations.
var (
	// ErrFeedNotFound indicates that a retry was requested for an unknown feed id.
	ErrFeedNotFound = errors.New("feed not found")
)
