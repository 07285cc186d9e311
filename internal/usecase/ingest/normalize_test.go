package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedboard/internal/domain/entity"
)

func TestNormalizer_Defaults(t *testing.T) {
	feed := entity.FeedConfig{ID: "decrypt", Title: "Decrypt", Tag: entity.TagNews}

	item := Normalizer{}.Normalize(entity.RawItem{PubDateRaw: "not-a-date"}, feed, "", "https://img.example/x.png")

	assert.Equal(t, entity.DefaultTitle, item.Title)
	assert.Equal(t, "", item.Link)
	assert.Nil(t, item.PubDate)
	assert.Equal(t, "Decrypt", item.SourceTitle)
	assert.Equal(t, entity.TagNews, item.Tag)
	assert.Equal(t, "decrypt", item.FeedID)
	assert.Equal(t, "https://img.example/x.png", item.ImageURL)
	assert.NotEmpty(t, item.ID)
}

func TestNormalizer_MapsFields(t *testing.T) {
	feed := entity.FeedConfig{ID: "glassnode", Title: "Glassnode", Tag: entity.TagOnChain}
	raw := entity.RawItem{
		Title:           "  Week On-chain  ",
		Link:            "https://insights.glassnode.com/w1/",
		DescriptionHTML: "<p>Miners <b>sold</b></p>",
		PubDateRaw:      "Mon, 06 Jan 2025 10:00:00 +0100",
	}

	item := Normalizer{}.Normalize(raw, feed, "Glassnode Insights", "https://img.example/x.png")

	assert.Equal(t, "Week On-chain", item.Title)
	assert.Equal(t, "Miners sold", item.Excerpt)
	assert.Equal(t, "Glassnode Insights", item.SourceTitle)
	require.NotNil(t, item.PubDate)
	assert.Equal(t, time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC), *item.PubDate)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want *time.Time
	}{
		{"", nil},
		{"not-a-date", nil},
		{"2025-01-05T12:00:00Z", ptr(time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC))},
		{"2025-01-04 08:30:00", ptr(time.Date(2025, 1, 4, 8, 30, 0, 0, time.UTC))},
		{"Sat, 04 Jan 2025 08:30:00 GMT", ptr(time.Date(2025, 1, 4, 8, 30, 0, 0, time.UTC))},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseDate(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "want %v got %v", tt.want, got)
		})
	}
}

func TestReconcileSourceTitle(t *testing.T) {
	coindesk := entity.FeedConfig{ID: "coindesk", Title: "CoinDesk", Tag: entity.TagNews}
	messari := entity.FeedConfig{ID: "messari", Title: "Messari", Tag: entity.TagResearch}
	configured := []entity.FeedConfig{coindesk, messari}

	tests := []struct {
		name     string
		declared string
		feed     entity.FeedConfig
		want     string
	}{
		{"no declared title", "", coindesk, "CoinDesk"},
		{"declared contains own title", "CoinDesk: Bitcoin, Ethereum, Crypto News", coindesk, "CoinDesk"},
		{"own title contains declared", "coin", coindesk, "CoinDesk"},
		{"unrelated declared title", "Some Blog", messari, "Messari"},
		// A relay that served another source's feed under Messari's URL: the
		// declared title wins even though the items stay tagged research.
		{"misattribution across feeds", "CoinDesk: Bitcoin, Ethereum, Crypto News", messari, "CoinDesk: Bitcoin, Ethereum, Crypto News"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReconcileSourceTitle(tt.declared, tt.feed, configured))
		})
	}
}

func TestReconcileSourceTitle_MisattributedItemKeepsRequestingTag(t *testing.T) {
	coindesk := entity.FeedConfig{ID: "coindesk", Title: "CoinDesk", Tag: entity.TagNews}
	messari := entity.FeedConfig{ID: "messari", Title: "Messari", Tag: entity.TagResearch}

	source := ReconcileSourceTitle("CoinDesk Markets", messari, []entity.FeedConfig{coindesk, messari})
	item := Normalizer{}.Normalize(entity.RawItem{Title: "x"}, messari, source, "https://img.example/x.png")

	assert.Equal(t, "CoinDesk Markets", item.SourceTitle)
	assert.Equal(t, entity.TagResearch, item.Tag)
	assert.Equal(t, "messari", item.FeedID)
}

func ptr(t time.Time) *time.Time { return &t }
