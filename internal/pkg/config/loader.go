// Package config provides fail-open helpers for reading configuration from
// environment variables. Loaders never return errors: an unset variable yields
// the default silently, and an unparsable or invalid value yields the default
// together with a warning describing the fallback.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadResult is the outcome of loading one configuration value.
//
// Example:
//
//	result := LoadEnvDuration("FETCH_TIMEOUT", 7*time.Second, nil)
//	for _, w := range result.Warnings {
//	    logger.Warn("configuration fallback", slog.String("warning", w))
//	}
//	timeout := result.Value
type LoadResult[T any] struct {
	Value           T
	Warnings        []string
	FallbackApplied bool
}

// Parser converts the raw environment string into a typed value.
type Parser[T any] func(string) (T, error)

// LoadEnv reads envKey, parses it with parse and validates it with validate.
// validate may be nil. Whitespace around the raw value is trimmed.
func LoadEnv[T any](envKey string, defaultValue T, parse Parser[T], validate func(T) error) LoadResult[T] {
	raw := strings.TrimSpace(os.Getenv(envKey))
	if raw == "" {
		return LoadResult[T]{Value: defaultValue}
	}

	value, err := parse(raw)
	if err == nil && validate != nil {
		err = validate(value)
	}
	if err != nil {
		return LoadResult[T]{
			Value: defaultValue,
			Warnings: []string{fmt.Sprintf(
				"Invalid %s='%s': %v, falling back to default '%v'",
				envKey, raw, err, defaultValue,
			)},
			FallbackApplied: true,
		}
	}

	return LoadResult[T]{Value: value}
}

// LoadEnvString returns the environment value or defaultValue when unset.
// No validation is performed.
func LoadEnvString(envKey, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(envKey))
	if value == "" {
		return defaultValue
	}
	return value
}

// LoadEnvWithFallback loads a validated string value.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) LoadResult[string] {
	return LoadEnv(envKey, defaultValue, parseString, validator)
}

// LoadEnvDuration loads a Go duration string such as "30s" or "5m".
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) LoadResult[time.Duration] {
	return LoadEnv(envKey, defaultValue, time.ParseDuration, validator)
}

// LoadEnvInt loads a base-10 integer.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) LoadResult[int] {
	return LoadEnv(envKey, defaultValue, parseInt, validator)
}

// LoadEnvFloat loads a floating point number.
func LoadEnvFloat(envKey string, defaultValue float64, validator func(float64) error) LoadResult[float64] {
	return LoadEnv(envKey, defaultValue, parseFloat, validator)
}

// LoadEnvBool loads a boolean. Accepted values are those of strconv.ParseBool
// plus "yes"/"no" and "on"/"off".
func LoadEnvBool(envKey string, defaultValue bool) LoadResult[bool] {
	return LoadEnv(envKey, defaultValue, parseBool, nil)
}

func parseString(s string) (string, error) { return s, nil }

func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid integer format")
	}
	return v, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number format")
	}
	return v, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid boolean format")
	}
	return v, nil
}
