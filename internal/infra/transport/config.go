package transport

import (
	"fmt"
	"time"
)

// Config holds the transport settings shared by every strategy.
type Config struct {
	// Timeout bounds a single strategy attempt. An attempt that exceeds it is
	// aborted and counts as failed; it is never retried within the strategy.
	// Default: 7s
	Timeout time.Duration

	// MaxBodySize is the maximum response body size in bytes. It is enforced
	// while reading, not from Content-Length.
	// Default: 10485760 (10MB)
	MaxBodySize int64

	// MaxRedirects is the maximum number of HTTP redirects to follow.
	// Default: 5
	MaxRedirects int

	// DenyPrivateIPs rejects redirect targets that resolve to private,
	// loopback or link-local addresses.
	// Default: false (AppConfig turns it on)
	DenyPrivateIPs bool

	// UserAgent is sent on every request.
	UserAgent string

	// RelayURL echoes raw feed bytes for the URL passed in RelayParam.
	// Empty disables the relay strategy.
	RelayURL   string
	RelayParam string

	// AltRelayURL is an independent public relay, typically returning the
	// JSON-wrapped shape. Empty disables the strategy.
	AltRelayURL   string
	AltRelayParam string
}

// DefaultConfig returns the default transport configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:       7 * time.Second,
		MaxBodySize:   10 * 1024 * 1024,
		MaxRedirects:  5,
		UserAgent:     "feedboard/1.0 (+https://github.com/feedboard)",
		RelayURL:      "https://api.allorigins.win/raw",
		RelayParam:    "url",
		AltRelayURL:   "https://api.rss2json.com/v1/api.json",
		AltRelayParam: "rss_url",
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	minBodySize := int64(1024)
	maxBodySize := int64(100 * 1024 * 1024)
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	if c.RelayURL != "" && c.RelayParam == "" {
		return fmt.Errorf("relay param is required when relay URL is set")
	}
	if c.AltRelayURL != "" && c.AltRelayParam == "" {
		return fmt.Errorf("alt relay param is required when alt relay URL is set")
	}

	return nil
}
