package feedparser

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedboard/internal/domain/entity"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/" xmlns:content="http://purl.org/rss/1.0/modules/content/">
  <channel>
    <title>CoinDesk: Bitcoin, Ethereum, Crypto News</title>
    <link>https://www.coindesk.com</link>
    <item>
      <title> BTC tops $100k </title>
      <link>https://www.coindesk.com/markets/btc-100k</link>
      <description><![CDATA[<p>Bitcoin <img src="/img/desc.png"> rallied.</p>]]></description>
      <content:encoded><![CDATA[<p><img src="//cdn.coindesk.com/content.jpg"/></p>]]></content:encoded>
      <pubDate>Mon, 06 Jan 2025 10:00:00 +0000</pubDate>
      <media:thumbnail url="https://cdn.coindesk.com/thumb.jpg"/>
    </item>
    <item>
      <title>Podcast episode</title>
      <guid>https://www.coindesk.com/podcasts/ep-1</guid>
      <enclosure url="https://cdn.coindesk.com/ep1.mp3" type="audio/mpeg" length="1"/>
      <enclosure url="https://cdn.coindesk.com/ep1.png" type="image/png" length="1"/>
    </item>
    <item>
      <title>Media content only</title>
      <link>https://www.coindesk.com/c</link>
      <media:content url="https://cdn.coindesk.com/video.mp4" medium="video"/>
      <media:content url="https://cdn.coindesk.com/photo.webp" medium="image"/>
    </item>
  </channel>
</rss>`

const atomFixture = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Glassnode Insights</title>
  <link href="https://insights.glassnode.com/"/>
  <entry>
    <title>Week On-chain</title>
    <link href="https://insights.glassnode.com/week-onchain/"/>
    <id>urn:uuid:1</id>
    <updated>2025-01-05T12:00:00Z</updated>
    <summary>Summary text</summary>
    <content type="html">&lt;img src="https://insights.glassnode.com/chart.png"&gt;</content>
  </entry>
</feed>`

const rss2jsonFixture = `{
  "status": "ok",
  "feed": {"url": "https://decrypt.co/feed", "title": "Decrypt", "link": "https://decrypt.co"},
  "items": [
    {
      "title": "ETH upgrade",
      "pubDate": "2025-01-04 08:30:00",
      "link": "https://decrypt.co/eth-upgrade",
      "guid": "https://decrypt.co/?p=1",
      "thumbnail": "https://cdn.decrypt.co/thumb.jpg",
      "description": "<p>desc</p>",
      "content": "<p>content</p>",
      "enclosure": {"link": "https://cdn.decrypt.co/enc.jpg", "type": "image/jpeg"}
    },
    {
      "title": "No link",
      "guid": "https://decrypt.co/?p=2",
      "enclosure": {"link": "https://cdn.decrypt.co/a.mp3", "type": "audio/mpeg"}
    }
  ]
}`

const jsonFeedFixture = `{
  "version": "https://jsonfeed.org/version/1.1",
  "title": "The Block Research",
  "home_page_url": "https://www.theblock.co",
  "items": [
    {"id": "1", "url": "https://www.theblock.co/r/1", "title": "Report", "content_html": "<p>hi</p>", "image": "https://www.theblock.co/r1.png", "date_published": "2025-01-03T00:00:00Z"}
  ]
}`

func parse(t *testing.T, body string) (entity.ParsedFeed, error) {
	t.Helper()
	return New(DefaultItemsPerFeed).Parse(entity.Payload{Body: []byte(body)})
}

func TestParse_RSS(t *testing.T) {
	feed, err := parse(t, rssFixture)
	require.NoError(t, err)

	assert.Equal(t, "CoinDesk: Bitcoin, Ethereum, Crypto News", feed.Title)
	assert.Equal(t, "https://www.coindesk.com", feed.Link)
	require.Len(t, feed.Items, 3)

	want := entity.RawItem{
		Title:           "BTC tops $100k",
		Link:            "https://www.coindesk.com/markets/btc-100k",
		DescriptionHTML: `<p>Bitcoin <img src="/img/desc.png"> rallied.</p>`,
		ContentHTML:     `<p><img src="//cdn.coindesk.com/content.jpg"/></p>`,
		PubDateRaw:      "Mon, 06 Jan 2025 10:00:00 +0000",
		MediaURL:        "https://cdn.coindesk.com/thumb.jpg",
	}
	if diff := cmp.Diff(want, feed.Items[0]); diff != "" {
		t.Errorf("first item mismatch (-want +got):\n%s", diff)
	}

	// guid fallback and image-only enclosure selection
	assert.Equal(t, "https://www.coindesk.com/podcasts/ep-1", feed.Items[1].Link)
	assert.Equal(t, "https://cdn.coindesk.com/ep1.png", feed.Items[1].EnclosureURL)
	assert.Empty(t, feed.Items[1].DescriptionHTML)
	assert.Empty(t, feed.Items[1].PubDateRaw)

	assert.Equal(t, "https://cdn.coindesk.com/photo.webp", feed.Items[2].MediaURL)
}

func TestParse_Atom(t *testing.T) {
	feed, err := parse(t, atomFixture)
	require.NoError(t, err)

	assert.Equal(t, "Glassnode Insights", feed.Title)
	require.Len(t, feed.Items, 1)
	item := feed.Items[0]
	assert.Equal(t, "https://insights.glassnode.com/week-onchain/", item.Link)
	assert.Equal(t, "2025-01-05T12:00:00Z", item.PubDateRaw)
	assert.Contains(t, item.ContentHTML, `chart.png`)
}

func TestParse_JSONWrapper(t *testing.T) {
	feed, err := parse(t, rss2jsonFixture)
	require.NoError(t, err)

	assert.Equal(t, "Decrypt", feed.Title)
	assert.Equal(t, "https://decrypt.co", feed.Link)
	require.Len(t, feed.Items, 2)

	want := entity.RawItem{
		Title:           "ETH upgrade",
		Link:            "https://decrypt.co/eth-upgrade",
		DescriptionHTML: "<p>desc</p>",
		ContentHTML:     "<p>content</p>",
		PubDateRaw:      "2025-01-04 08:30:00",
		MediaURL:        "https://cdn.decrypt.co/thumb.jpg",
		EnclosureURL:    "https://cdn.decrypt.co/enc.jpg",
	}
	if diff := cmp.Diff(want, feed.Items[0]); diff != "" {
		t.Errorf("json item mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "https://decrypt.co/?p=2", feed.Items[1].Link)
	assert.Empty(t, feed.Items[1].EnclosureURL)
}

func TestParse_JSONWrapperError(t *testing.T) {
	_, err := parse(t, `{"status":"error","message":"Cannot download this RSS feed."}`)

	var pErr *entity.ParseError
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, "Cannot download this RSS feed.", pErr.Reason)
}

func TestParse_JSONFeedGoesToGofeed(t *testing.T) {
	feed, err := parse(t, jsonFeedFixture)
	require.NoError(t, err)

	assert.Equal(t, "The Block Research", feed.Title)
	require.Len(t, feed.Items, 1)
	assert.Equal(t, "https://www.theblock.co/r/1", feed.Items[0].Link)
	assert.Equal(t, "https://www.theblock.co/r1.png", feed.Items[0].MediaURL)
}

func TestParse_Unrecognized(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"whitespace", "  \n\t"},
		{"html page", "<!DOCTYPE html><html><body>Cloudflare</body></html>"},
		{"plain text", "Forbidden"},
		{"json without items", `{"hello":"world"}`},
		{"relay error body", `{"error":"Failed to fetch feed","details":"x"}`},
		{"json wrapped xml", `{"contents":"<rss/>"}`},
		{"malformed json", `{"items": [`},
		{"truncated xml", `<rss version="2.0"><channel><item><title>x`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.body)
			var pErr *entity.ParseError
			assert.True(t, errors.As(err, &pErr), "got %v", err)
		})
	}
}

func TestParse_EmptyChannelIsNotAnError(t *testing.T) {
	feed, err := parse(t, `<rss version="2.0"><channel><title>Quiet</title></channel></rss>`)
	require.NoError(t, err)
	assert.Equal(t, "Quiet", feed.Title)
	assert.Empty(t, feed.Items)
}

func TestParse_CapsItemsKeepingEarliestDeclared(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<rss version="2.0"><channel><title>Big</title>`)
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&b, "<item><title>item %d</title><link>https://x.example/%d</link></item>", i, i)
	}
	b.WriteString(`</channel></rss>`)

	feed, err := parse(t, b.String())
	require.NoError(t, err)
	require.Len(t, feed.Items, DefaultItemsPerFeed)
	assert.Equal(t, "item 0", feed.Items[0].Title)
	assert.Equal(t, "item 19", feed.Items[19].Title)
}

func TestParse_BOMIsIgnored(t *testing.T) {
	feed, err := parse(t, "\xef\xbb\xbf"+atomFixture)
	require.NoError(t, err)
	assert.Len(t, feed.Items, 1)
}

func TestClampItems(t *testing.T) {
	assert.Equal(t, DefaultItemsPerFeed, New(0).MaxItems())
	assert.Equal(t, MinItemsPerFeed, New(3).MaxItems())
	assert.Equal(t, MaxItemsPerFeed, New(100).MaxItems())
	assert.Equal(t, 18, New(18).MaxItems())
}
