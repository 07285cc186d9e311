// Package config assembles the application configuration from environment
// variables and the feed list file.
package config

import (
	"fmt"
	"strings"
	"time"

	"feedboard/internal/infra/feedparser"
	"feedboard/internal/infra/transport"
	pkgconfig "feedboard/internal/pkg/config"
)

// AppConfig holds every runtime setting of the server and the CLI.
type AppConfig struct {
	// Port the HTTP server listens on. Default: 8080
	Port int

	// FeedsFile is the path of the YAML feed list. Empty selects the
	// embedded default list.
	FeedsFile string

	// RefreshInterval between scheduled refresh cycles. Default: 5m, min 30s
	RefreshInterval time.Duration

	// FetchTimeout bounds each transport attempt. Default: 7s
	FetchTimeout time.Duration

	// MaxItemsPerFeed caps items taken from one feed. Default: 20
	MaxItemsPerFeed int

	// PipelineConcurrency bounds the feeds fetched at once. 0 fetches every
	// feed at once. Default: 0
	PipelineConcurrency int

	// RelayURL and AltRelayURL are the public relay endpoints used when the
	// direct fetch fails.
	RelayURL    string
	AltRelayURL string

	// DenyPrivateIPs rejects feed and relay URLs that resolve to private
	// addresses. Default: true
	DenyPrivateIPs bool

	// RelayRateLimit is the /rss-proxy budget in requests per second. Default: 5
	RelayRateLimit float64

	LogLevel  string
	LogFormat string
}

// Defaults for AppConfig.
const (
	DefaultPort                = 8080
	DefaultRefreshInterval     = 5 * time.Minute
	MinRefreshInterval         = 30 * time.Second
	MaxRefreshInterval         = 24 * time.Hour
	DefaultFetchTimeout        = 7 * time.Second
	MinFetchTimeout            = time.Second
	MaxFetchTimeout            = 60 * time.Second
	DefaultPipelineConcurrency = 0
	DefaultRelayRateLimit      = 5.0
)

// Load reads AppConfig from the environment. It never fails: invalid values
// fall back to their defaults and are reported in the returned warnings.
// When m is non-nil each fallback is also counted.
func Load(m *pkgconfig.ConfigMetrics) (*AppConfig, []string) {
	var warnings []string
	fallbacks := 0

	track := func(field string, w []string, applied bool) {
		warnings = append(warnings, w...)
		if applied {
			fallbacks++
			if m != nil {
				m.RecordFallback(field)
			}
		}
	}

	port := pkgconfig.LoadEnvInt("PORT", DefaultPort, pkgconfig.IntRange(1, 65535))
	track("port", port.Warnings, port.FallbackApplied)

	interval := pkgconfig.LoadEnvDuration("REFRESH_INTERVAL", DefaultRefreshInterval,
		pkgconfig.DurationRange(MinRefreshInterval, MaxRefreshInterval))
	track("refresh_interval", interval.Warnings, interval.FallbackApplied)

	timeout := pkgconfig.LoadEnvDuration("FETCH_TIMEOUT", DefaultFetchTimeout,
		pkgconfig.DurationRange(MinFetchTimeout, MaxFetchTimeout))
	track("fetch_timeout", timeout.Warnings, timeout.FallbackApplied)

	maxItems := pkgconfig.LoadEnvInt("MAX_ITEMS_PER_FEED", feedparser.DefaultItemsPerFeed,
		pkgconfig.IntRange(feedparser.MinItemsPerFeed, feedparser.MaxItemsPerFeed))
	track("max_items_per_feed", maxItems.Warnings, maxItems.FallbackApplied)

	concurrency := pkgconfig.LoadEnvInt("PIPELINE_CONCURRENCY", DefaultPipelineConcurrency,
		pkgconfig.IntRange(0, 64))
	track("pipeline_concurrency", concurrency.Warnings, concurrency.FallbackApplied)

	defaults := transport.DefaultConfig()
	relay := pkgconfig.LoadEnvWithFallback("RELAY_URL", defaults.RelayURL, pkgconfig.ValidateHTTPURL)
	track("relay_url", relay.Warnings, relay.FallbackApplied)

	altRelay := pkgconfig.LoadEnvWithFallback("ALT_RELAY_URL", defaults.AltRelayURL, pkgconfig.ValidateHTTPURL)
	track("alt_relay_url", altRelay.Warnings, altRelay.FallbackApplied)

	denyPrivate := pkgconfig.LoadEnvBool("DENY_PRIVATE_IPS", true)
	track("deny_private_ips", denyPrivate.Warnings, denyPrivate.FallbackApplied)

	rateLimit := pkgconfig.LoadEnvFloat("RELAY_RATE_LIMIT", DefaultRelayRateLimit, pkgconfig.ValidatePositiveFloat)
	track("relay_rate_limit", rateLimit.Warnings, rateLimit.FallbackApplied)

	logLevel := pkgconfig.LoadEnvWithFallback("LOG_LEVEL", "info",
		pkgconfig.ValidateOneOf("debug", "info", "warn", "warning", "error"))
	track("log_level", logLevel.Warnings, logLevel.FallbackApplied)

	logFormat := pkgconfig.LoadEnvWithFallback("LOG_FORMAT", "json", pkgconfig.ValidateOneOf("json", "text"))
	track("log_format", logFormat.Warnings, logFormat.FallbackApplied)

	if m != nil {
		m.RecordLoadTimestamp()
		m.SetFallbackActive(fallbacks > 0)
	}

	return &AppConfig{
		Port:                port.Value,
		FeedsFile:           pkgconfig.LoadEnvString("FEEDS_FILE", ""),
		RefreshInterval:     interval.Value,
		FetchTimeout:        timeout.Value,
		MaxItemsPerFeed:     maxItems.Value,
		PipelineConcurrency: concurrency.Value,
		RelayURL:            relay.Value,
		AltRelayURL:         altRelay.Value,
		DenyPrivateIPs:      denyPrivate.Value,
		RelayRateLimit:      rateLimit.Value,
		LogLevel:            strings.ToLower(logLevel.Value),
		LogFormat:           strings.ToLower(logFormat.Value),
	}, warnings
}

// Addr returns the listen address for Port.
func (c *AppConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Transport returns the transport configuration derived from c.
func (c *AppConfig) Transport() transport.Config {
	cfg := transport.DefaultConfig()
	cfg.Timeout = c.FetchTimeout
	cfg.RelayURL = c.RelayURL
	cfg.AltRelayURL = c.AltRelayURL
	cfg.DenyPrivateIPs = c.DenyPrivateIPs
	return cfg
}
