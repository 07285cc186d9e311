package ingest

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"feedboard/internal/domain/entity"
)

// Normalizer maps RawItems into canonical Items.
type Normalizer struct{}

// Normalize builds the Item for raw. sourceTitle comes from
// ReconcileSourceTitle and image from ImageResolver.Resolve.
func (Normalizer) Normalize(raw entity.RawItem, feed entity.FeedConfig, sourceTitle, image string) entity.Item {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		title = entity.DefaultTitle
	}
	link := strings.TrimSpace(raw.Link)
	if sourceTitle == "" {
		sourceTitle = feed.Title
	}

	return entity.Item{
		ID:              entity.ItemID(feed.ID, link, title),
		FeedID:          feed.ID,
		Title:           title,
		Link:            link,
		DescriptionHTML: raw.DescriptionHTML,
		Excerpt:         Excerpt(raw.DescriptionHTML, ExcerptLength),
		PubDate:         ParseDate(raw.PubDateRaw),
		SourceTitle:     sourceTitle,
		Tag:             feed.Tag,
		ImageURL:        image,
	}
}

// ParseDate parses the many date layouts feeds use. Layouts without a zone
// are read as UTC. It returns nil when s is empty or unparsable.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil || t.IsZero() {
		return nil
	}
	t = t.UTC()
	return &t
}

// ReconcileSourceTitle chooses the source label for a feed's items.
//
// Titles match when either contains the other, ignoring case. A declared
// title matching the requesting feed keeps the configured title. A declared
// title matching only some other configured feed is used verbatim, even
// though the items keep the requesting feed's tag; overlapping titles can
// therefore label items with the wrong source.
func ReconcileSourceTitle(declared string, feed entity.FeedConfig, configured []entity.FeedConfig) string {
	declared = strings.TrimSpace(declared)
	if declared == "" || titlesMatch(declared, feed.Title) {
		return feed.Title
	}
	for _, other := range configured {
		if other.ID == feed.ID {
			continue
		}
		if titlesMatch(declared, other.Title) {
			return declared
		}
	}
	return feed.Title
}

func titlesMatch(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
