package entity

import (
	"fmt"
	"strings"
)

// Tag is the coarse category label of a feed.
type Tag string

// Known tags. TagAll is only meaningful as a query filter.
const (
	TagNews     Tag = "news"
	TagOnChain  Tag = "on-chain"
	TagResearch Tag = "research"
	TagCustom   Tag = "custom"
	TagAll      Tag = "all"
)

// Tags lists the tags a FeedConfig may carry, in display order.
var Tags = []Tag{TagNews, TagOnChain, TagResearch, TagCustom}

// ParseTag returns the Tag for s, or false when s is not a known feed tag.
func ParseTag(s string) (Tag, bool) {
	t := Tag(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tags {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// FeedConfig describes one feed source. It is never mutated after creation.
type FeedConfig struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
	Tag   Tag    `json:"tag" yaml:"tag"`

	// FallbackImage is used when an item carries no image of its own.
	FallbackImage string `json:"fallback_image,omitempty" yaml:"fallback_image,omitempty"`
}

// Validate validates the FeedConfig fields.
func (f FeedConfig) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return &ValidationError{Field: "id", Message: "id is required"}
	}
	if strings.TrimSpace(f.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if err := ValidateURL(f.URL, false); err != nil {
		return err
	}
	if _, ok := ParseTag(string(f.Tag)); !ok {
		return &ValidationError{
			Field:   "tag",
			Message: fmt.Sprintf("invalid tag %q (must be news, on-chain, research, or custom)", f.Tag),
		}
	}
	return nil
}
