package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedboard/internal/config"
)

const rss = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Local</title><link>https://local.example</link>
<item><title>One</title><link>https://local.example/1</link><pubDate>Tue, 07 Jan 2025 09:00:00 GMT</pubDate></item>
<item><title>Two</title><link>https://local.example/2</link><pubDate>Tue, 07 Jan 2025 10:00:00 GMT</pubDate></item>
</channel></rss>`

func TestBuild_EndToEnd(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rss))
	}))
	defer upstream.Close()

	path := filepath.Join(t.TempDir(), "feeds.yaml")
	doc := "feeds:\n  - id: local\n    title: Local\n    url: " + upstream.URL + "/rss\n    tag: news\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg := &config.AppConfig{
		FeedsFile:           path,
		FetchTimeout:        2 * time.Second,
		MaxItemsPerFeed:     20,
		PipelineConcurrency: 2,
		RelayURL:            "",
		AltRelayURL:         "",
	}
	c, err := Build(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	snap := c.Aggregate.RefreshAll(context.Background())
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "Two", snap.Items[0].Title)
	assert.Equal(t, "Local", snap.Items[0].SourceTitle)
	assert.NotEmpty(t, snap.Items[0].ImageURL)
	assert.Empty(t, snap.Failures)
}

func TestBuild_InvalidFeedsFile(t *testing.T) {
	cfg := &config.AppConfig{FeedsFile: filepath.Join(t.TempDir(), "missing.yaml"), FetchTimeout: time.Second}
	_, err := Build(cfg, nil)
	assert.Error(t, err)
}
