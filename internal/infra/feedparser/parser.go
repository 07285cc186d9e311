// Package feedparser turns raw transport payloads into entity.ParsedFeed.
//
// Two adapters cover the payload shapes seen in practice: JSONAdapter for
// relay responses that wrap a feed as {"items": [...]}, and XMLAdapter for
// RSS, Atom and JSON Feed documents.
package feedparser

import (
	"bytes"

	"feedboard/internal/domain/entity"
)

// Item caps applied per feed.
const (
	MinItemsPerFeed     = 15
	MaxItemsPerFeed     = 25
	DefaultItemsPerFeed = 20
)

// Adapter parses one payload shape.
type Adapter interface {
	Name() string
	// Accepts reports whether body looks like this adapter's shape.
	Accepts(body []byte) bool
	Parse(body []byte) (entity.ParsedFeed, error)
}

// Parser dispatches payloads to the first accepting adapter and caps the
// number of items per feed.
type Parser struct {
	adapters []Adapter
	maxItems int
}

// New returns a Parser with the JSON wrapper and XML adapters. maxItems is
// clamped to [MinItemsPerFeed, MaxItemsPerFeed].
func New(maxItems int) *Parser {
	return NewWithAdapters(maxItems, JSONAdapter{}, XMLAdapter{})
}

// NewWithAdapters returns a Parser over the given adapters, tried in order.
func NewWithAdapters(maxItems int, adapters ...Adapter) *Parser {
	return &Parser{adapters: adapters, maxItems: clampItems(maxItems)}
}

// MaxItems returns the effective per-feed item cap.
func (p *Parser) MaxItems() int { return p.maxItems }

// Parse interprets payload. A recognized feed with zero items is returned
// without error; an unrecognizable payload yields *entity.ParseError.
func (p *Parser) Parse(payload entity.Payload) (entity.ParsedFeed, error) {
	body := bytes.TrimSpace(bytes.TrimPrefix(payload.Body, []byte("\xef\xbb\xbf")))
	if len(body) == 0 {
		return entity.ParsedFeed{}, &entity.ParseError{Reason: "empty payload"}
	}

	for _, a := range p.adapters {
		if !a.Accepts(body) {
			continue
		}
		feed, err := a.Parse(body)
		if err != nil {
			return entity.ParsedFeed{}, err
		}
		// 先頭から maxItems 件のみ保持
		if len(feed.Items) > p.maxItems {
			feed.Items = feed.Items[:p.maxItems]
		}
		return feed, nil
	}

	return entity.ParsedFeed{}, &entity.ParseError{Reason: "unrecognized payload format"}
}

func clampItems(n int) int {
	switch {
	case n <= 0:
		return DefaultItemsPerFeed
	case n < MinItemsPerFeed:
		return MinItemsPerFeed
	case n > MaxItemsPerFeed:
		return MaxItemsPerFeed
	}
	return n
}
