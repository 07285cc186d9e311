package entity

import (
	"crypto/sha1"
	"encoding/hex"
	"time"
)

// DefaultTitle is used for items that declare no title.
const DefaultTitle = "Untitled"

// RawItem is the format-independent shape of one feed entry before
// normalization. Empty strings mean the field was absent.
type RawItem struct {
	Title           string
	Link            string
	DescriptionHTML string
	ContentHTML     string
	PubDateRaw      string
	MediaURL        string
	EnclosureURL    string
}

// ParsedFeed is the result of parsing one payload.
type ParsedFeed struct {
	Title string
	Link  string
	Items []RawItem
}

// Item is the canonical, display-ready representation of one entry.
type Item struct {
	ID              string     `json:"id"`
	FeedID          string     `json:"feed_id"`
	Title           string     `json:"title"`
	Link            string     `json:"link"`
	DescriptionHTML string     `json:"description"`
	Excerpt         string     `json:"excerpt"`
	PubDate         *time.Time `json:"pub_date"`
	SourceTitle     string     `json:"source_title"`
	Tag             Tag        `json:"tag"`
	ImageURL        string     `json:"image_url"`
}

// HasDate reports whether the item carries a parsed publication date.
func (i Item) HasDate() bool {
	return i.PubDate != nil
}

// ItemID derives a stable identifier from the owning feed and the item's link,
// or its title when the link is empty.
func ItemID(feedID, link, title string) string {
	key := link
	if key == "" {
		key = title
	}
	sum := sha1.Sum([]byte(feedID + "\x00" + key))
	return hex.EncodeToString(sum[:8])
}
