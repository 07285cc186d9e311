package config

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgconfig "feedboard/internal/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "FEEDS_FILE", "REFRESH_INTERVAL", "FETCH_TIMEOUT", "MAX_ITEMS_PER_FEED",
		"PIPELINE_CONCURRENCY", "RELAY_URL", "ALT_RELAY_URL", "DENY_PRIVATE_IPS", "RELAY_RATE_LIMIT", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}

	cfg, warnings := Load(nil)

	assert.Empty(t, warnings)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "", cfg.FeedsFile)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 7*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 20, cfg.MaxItemsPerFeed)
	assert.Equal(t, 0, cfg.PipelineConcurrency)
	assert.Equal(t, "https://api.allorigins.win/raw", cfg.RelayURL)
	assert.Equal(t, "https://api.rss2json.com/v1/api.json", cfg.AltRelayURL)
	assert.True(t, cfg.DenyPrivateIPs)
	assert.InDelta(t, 5.0, cfg.RelayRateLimit, 0.0001)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FEEDS_FILE", "/etc/feedboard/feeds.yaml")
	t.Setenv("REFRESH_INTERVAL", "2m")
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("MAX_ITEMS_PER_FEED", "25")
	t.Setenv("PIPELINE_CONCURRENCY", "4")
	t.Setenv("RELAY_URL", "https://relay.internal/raw")
	t.Setenv("DENY_PRIVATE_IPS", "off")
	t.Setenv("LOG_FORMAT", "TEXT")

	cfg, warnings := Load(nil)

	assert.Empty(t, warnings)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/etc/feedboard/feeds.yaml", cfg.FeedsFile)
	assert.Equal(t, 2*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 25, cfg.MaxItemsPerFeed)
	assert.Equal(t, 4, cfg.PipelineConcurrency)
	assert.Equal(t, "https://relay.internal/raw", cfg.RelayURL)
	assert.False(t, cfg.DenyPrivateIPs)
	assert.Equal(t, "text", cfg.LogFormat)

	tc := cfg.Transport()
	assert.Equal(t, 3*time.Second, tc.Timeout)
	assert.Equal(t, "https://relay.internal/raw", tc.RelayURL)
	assert.False(t, tc.DenyPrivateIPs)
	assert.NoError(t, tc.Validate())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "10s")
	t.Setenv("FETCH_TIMEOUT", "soon")
	t.Setenv("MAX_ITEMS_PER_FEED", "100")
	t.Setenv("RELAY_URL", "ftp://relay")

	reg := prometheus.NewRegistry()
	m := pkgconfig.NewConfigMetrics("feedboard_test", reg)

	cfg, warnings := Load(m)

	assert.Equal(t, DefaultRefreshInterval, cfg.RefreshInterval)
	assert.Equal(t, DefaultFetchTimeout, cfg.FetchTimeout)
	assert.Equal(t, 20, cfg.MaxItemsPerFeed)
	assert.Equal(t, "https://api.allorigins.win/raw", cfg.RelayURL)

	require.Len(t, warnings, 4)
	assert.Contains(t, warnings[0], "Invalid REFRESH_INTERVAL='10s'")
	assert.Contains(t, warnings[1], "Invalid FETCH_TIMEOUT='soon'")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("refresh_interval")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbackActive))
}
