package feedparser

import (
	"bytes"
	"errors"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"feedboard/internal/domain/entity"
)

// XMLAdapter parses RSS, Atom and JSON Feed documents with gofeed.
type XMLAdapter struct{}

// Name implements Adapter.
func (XMLAdapter) Name() string { return "gofeed" }

// Accepts takes everything; gofeed's own detection decides whether the body
// is a feed.
func (XMLAdapter) Accepts(body []byte) bool { return len(body) > 0 }

// Parse implements Adapter.
func (XMLAdapter) Parse(body []byte) (entity.ParsedFeed, error) {
	fp := gofeed.NewParser()
	feed, err := fp.Parse(bytes.NewReader(body))
	if err != nil {
		if errors.Is(err, gofeed.ErrFeedTypeNotDetected) {
			return entity.ParsedFeed{}, &entity.ParseError{Reason: "not a feed document", Err: err}
		}
		return entity.ParsedFeed{}, &entity.ParseError{Reason: "malformed feed document", Err: err}
	}

	parsed := entity.ParsedFeed{
		Title: strings.TrimSpace(feed.Title),
		Link:  strings.TrimSpace(feed.Link),
		Items: make([]entity.RawItem, 0, len(feed.Items)),
	}

	for _, it := range feed.Items {
		if it == nil {
			continue
		}
		raw := entity.RawItem{
			Title:           strings.TrimSpace(it.Title),
			Link:            strings.TrimSpace(it.Link),
			DescriptionHTML: it.Description,
			ContentHTML:     it.Content,
			PubDateRaw:      strings.TrimSpace(it.Published),
			MediaURL:        mediaURL(it.Extensions),
			EnclosureURL:    enclosureURL(it.Enclosures),
		}
		// Link が無い場合は GUID で代用
		if raw.Link == "" {
			raw.Link = strings.TrimSpace(it.GUID)
		}
		if raw.PubDateRaw == "" {
			raw.PubDateRaw = strings.TrimSpace(it.Updated)
		}
		if raw.MediaURL == "" && it.Image != nil {
			raw.MediaURL = strings.TrimSpace(it.Image.URL)
		}
		parsed.Items = append(parsed.Items, raw)
	}

	return parsed, nil
}

// mediaURL reads Media RSS thumbnail, content and group elements.
func mediaURL(exts ext.Extensions) string {
	media, ok := exts["media"]
	if !ok {
		return ""
	}
	if u := mediaFrom(media); u != "" {
		return u
	}
	for _, group := range media["group"] {
		if u := mediaFrom(group.Children); u != "" {
			return u
		}
	}
	return ""
}

func mediaFrom(elems map[string][]ext.Extension) string {
	for _, th := range elems["thumbnail"] {
		if u := strings.TrimSpace(th.Attrs["url"]); u != "" {
			return u
		}
	}
	for _, c := range elems["content"] {
		u := strings.TrimSpace(c.Attrs["url"])
		if u == "" {
			continue
		}
		medium := strings.ToLower(c.Attrs["medium"])
		typ := strings.ToLower(c.Attrs["type"])
		if medium == "image" || strings.HasPrefix(typ, "image/") || (medium == "" && typ == "" && looksLikeImage(u)) {
			return u
		}
	}
	return ""
}

func enclosureURL(encs []*gofeed.Enclosure) string {
	for _, e := range encs {
		if e == nil || strings.TrimSpace(e.URL) == "" {
			continue
		}
		if isImageType(e.Type) {
			return strings.TrimSpace(e.URL)
		}
	}
	return ""
}

func looksLikeImage(u string) bool {
	lower := strings.ToLower(u)
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}
	for _, suffix := range []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif", ".svg"} {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
