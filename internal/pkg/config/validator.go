package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ValidateDuration validates that duration lies within [min, max].
func ValidateDuration(duration, min, max time.Duration) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%v) cannot be greater than max (%v)", min, max)
	}
	if duration < min {
		return fmt.Errorf("duration %v is below minimum %v", duration, min)
	}
	if duration > max {
		return fmt.Errorf("duration %v exceeds maximum %v", duration, max)
	}
	return nil
}

// DurationRange returns a validator bound to [min, max], suitable for LoadEnvDuration.
func DurationRange(min, max time.Duration) func(time.Duration) error {
	return func(d time.Duration) error { return ValidateDuration(d, min, max) }
}

// ValidateIntRange validates that value lies within [min, max].
func ValidateIntRange(value, min, max int) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%d) cannot be greater than max (%d)", min, max)
	}
	if value < min {
		return fmt.Errorf("value %d is below minimum %d", value, min)
	}
	if value > max {
		return fmt.Errorf("value %d exceeds maximum %d", value, max)
	}
	return nil
}

// IntRange returns a validator bound to [min, max], suitable for LoadEnvInt.
func IntRange(min, max int) func(int) error {
	return func(v int) error { return ValidateIntRange(v, min, max) }
}

// ValidatePositiveFloat rejects zero and negative values.
func ValidatePositiveFloat(v float64) error {
	if v <= 0 {
		return fmt.Errorf("value must be positive, got %v", v)
	}
	return nil
}

// ValidateHTTPURL validates that raw is an absolute http or https URL with a host.
func ValidateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must use http or https scheme")
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}

// ValidateOneOf returns a validator accepting only the given values (case-insensitive).
func ValidateOneOf(allowed ...string) func(string) error {
	return func(v string) error {
		for _, a := range allowed {
			if strings.EqualFold(v, a) {
				return nil
			}
		}
		return fmt.Errorf("must be one of %s", strings.Join(allowed, ", "))
	}
}
