// Package source manages the set of configured feeds: the static list loaded
// at startup plus feeds added at runtime.
package source

import "errors"

// Sentinel errors for source use case operations.
var (
	// ErrSourceNotFound indicates that no feed with the requested id exists.
	ErrSourceNotFound = errors.New("feed not found")

	// ErrDuplicateSource indicates that a feed with the same URL is already configured.
	ErrDuplicateSource = errors.New("feed with this URL already exists")
)
