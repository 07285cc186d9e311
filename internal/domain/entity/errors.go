package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNoItems indicates that a feed was fetched and parsed but yielded no items.
	ErrNoItems = errors.New("no items")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// AttemptError records why a single transport strategy failed.
type AttemptError struct {
	Strategy string
	Err      error
	TimedOut bool
}

// TransportError is returned when every fetch strategy for a feed URL failed.
type TransportError struct {
	URL      string
	Message  string
	Attempts []AttemptError
}

// Error returns the exhaustion message including the URL.
func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
}

// TimedOut reports whether any attempt hit its deadline.
func (e *TransportError) TimedOut() bool {
	for _, a := range e.Attempts {
		if a.TimedOut {
			return true
		}
	}
	return false
}

// NewTransportError builds a TransportError whose message summarizes each attempt.
func NewTransportError(url string, attempts []AttemptError) *TransportError {
	parts := make([]string, 0, len(attempts))
	for _, a := range attempts {
		if a.TimedOut {
			parts = append(parts, fmt.Sprintf("%s: timed out", a.Strategy))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %v", a.Strategy, a.Err))
	}
	msg := "all strategies failed"
	if len(parts) > 0 {
		msg += " (" + strings.Join(parts, "; ") + ")"
	}
	return &TransportError{URL: url, Message: msg, Attempts: attempts}
}

// ParseError indicates that a payload could not be recognized as a feed.
type ParseError struct {
	Reason string
	Err    error
}

// Error returns the parse failure reason.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse feed: %s: %v", e.Reason, e.Err)
	}
	return "parse feed: " + e.Reason
}

// Unwrap returns the underlying parser error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
