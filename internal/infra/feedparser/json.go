package feedparser

import (
	"strings"

	"github.com/tidwall/gjson"

	"feedboard/internal/domain/entity"
)

// JSONAdapter handles the {"status", "feed", "items": [...]} wrapper returned
// by JSON relays. Items already expose title/link/pubDate/description, so the
// mapping is a field rename.
type JSONAdapter struct{}

// Name implements Adapter.
func (JSONAdapter) Name() string { return "json-wrapper" }

// Accepts matches every JSON object that is not a JSON Feed document, so
// relay error bodies and unrelated JSON fail here instead of reaching gofeed.
func (JSONAdapter) Accepts(body []byte) bool {
	return body[0] == '{' && !isJSONFeed(body)
}

// Parse implements Adapter.
func (JSONAdapter) Parse(body []byte) (entity.ParsedFeed, error) {
	if !gjson.ValidBytes(body) {
		return entity.ParsedFeed{}, &entity.ParseError{Reason: "malformed json payload"}
	}
	doc := gjson.ParseBytes(body)

	if strings.EqualFold(doc.Get("status").String(), "error") {
		msg := doc.Get("message").String()
		if msg == "" {
			msg = "relay reported an error"
		}
		return entity.ParsedFeed{}, &entity.ParseError{Reason: msg}
	}

	items := doc.Get("items")
	if !items.IsArray() {
		return entity.ParsedFeed{}, &entity.ParseError{Reason: "json payload has no items array"}
	}

	feed := entity.ParsedFeed{
		Title: strings.TrimSpace(doc.Get("feed.title").String()),
		Link:  strings.TrimSpace(doc.Get("feed.link").String()),
	}

	items.ForEach(func(_, it gjson.Result) bool {
		if !it.IsObject() {
			return true
		}
		raw := entity.RawItem{
			Title:           strings.TrimSpace(it.Get("title").String()),
			Link:            strings.TrimSpace(it.Get("link").String()),
			DescriptionHTML: it.Get("description").String(),
			ContentHTML:     it.Get("content").String(),
			PubDateRaw:      strings.TrimSpace(it.Get("pubDate").String()),
			MediaURL:        strings.TrimSpace(it.Get("thumbnail").String()),
		}
		if raw.Link == "" {
			raw.Link = strings.TrimSpace(it.Get("guid").String())
		}
		if enc := it.Get("enclosure"); enc.IsObject() && isImageType(enc.Get("type").String()) {
			raw.EnclosureURL = strings.TrimSpace(enc.Get("link").String())
		}
		feed.Items = append(feed.Items, raw)
		return true
	})

	return feed, nil
}

func isJSONFeed(body []byte) bool {
	return strings.Contains(gjson.GetBytes(body, "version").String(), "jsonfeed.org")
}

// isImageType accepts empty types since many feeds omit them on images.
func isImageType(t string) bool {
	t = strings.ToLower(strings.TrimSpace(t))
	return t == "" || strings.HasPrefix(t, "image/")
}
