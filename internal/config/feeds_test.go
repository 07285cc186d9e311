package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedboard/internal/domain/entity"
)

func TestLoadFeeds_EmbeddedDefault(t *testing.T) {
	f, err := LoadFeeds("")
	require.NoError(t, err)

	require.NotEmpty(t, f.Feeds)
	tags := map[entity.Tag]int{}
	for _, feed := range f.Feeds {
		tags[feed.Tag]++
	}
	assert.Positive(t, tags[entity.TagNews])
	assert.Positive(t, tags[entity.TagOnChain])
	assert.Positive(t, tags[entity.TagResearch])
	assert.NotEmpty(t, f.Placeholders.Default)
	assert.NotEmpty(t, f.Placeholders.ByTag[entity.TagOnChain])
}

func TestLoadFeeds_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	doc := `feeds:
  - id: glassnode
    title: Glassnode Insights
    url: https://insights.glassnode.com/rss/
    tag: On-Chain
    fallback_image: https://insights.glassnode.com/logo.png
  - id: mine
    title: My Feed
    url: https://example.com/feed.xml
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	f, err := LoadFeeds(path)
	require.NoError(t, err)
	require.Len(t, f.Feeds, 2)
	assert.Equal(t, entity.TagOnChain, f.Feeds[0].Tag)
	assert.Equal(t, "https://insights.glassnode.com/logo.png", f.Feeds[0].FallbackImage)
	assert.Equal(t, entity.TagCustom, f.Feeds[1].Tag)
}

func TestLoadFeeds_MissingFile(t *testing.T) {
	_, err := LoadFeeds(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "failed to read feeds file")
}

func TestParseFeeds_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"malformed yaml", "feeds: [", "failed to parse feeds file"},
		{"empty list", "feeds: []", "at least one feed is required"},
		{"unknown tag", "feeds:\n  - {id: a, title: A, url: 'https://a.example', tag: memes}", "unknown tag"},
		{"bad url", "feeds:\n  - {id: a, title: A, url: 'ftp://a.example', tag: news}", "feeds[0]"},
		{"duplicate id", "feeds:\n  - {id: a, title: A, url: 'https://a.example', tag: news}\n  - {id: a, title: B, url: 'https://b.example', tag: news}", "duplicate id"},
		{"unknown placeholder tag", "feeds:\n  - {id: a, title: A, url: 'https://a.example', tag: news}\nplaceholders:\n  by_tag:\n    memes: https://x.example/p.png", "placeholders"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFeeds([]byte(tt.doc))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
