// Package query narrows the aggregated item collection by tag and free-text
// search.
package query

import (
	"strings"

	"feedboard/internal/domain/entity"
)

// Criteria selects items. An empty Tag or entity.TagAll matches every tag;
// an empty Text matches every item.
type Criteria struct {
	Tag  entity.Tag
	Text string
}

// Filter returns the items matching both the tag and the trimmed,
// case-insensitive text query, in their original order. The input slice is
// never modified.
func Filter(items []entity.Item, c Criteria) []entity.Item {
	needle := strings.ToLower(strings.TrimSpace(c.Text))
	out := make([]entity.Item, 0, len(items))
	for _, it := range items {
		if !matchesTag(it, c.Tag) {
			continue
		}
		if needle != "" && !strings.Contains(haystack(it), needle) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchesTag(it entity.Item, tag entity.Tag) bool {
	return tag == "" || tag == entity.TagAll || it.Tag == tag
}

func haystack(it entity.Item) string {
	return strings.ToLower(it.Title + "\n" + it.DescriptionHTML + "\n" + it.SourceTitle)
}

// ParseCriteria builds Criteria from raw request values. An unknown tag is
// reported as a validation error.
func ParseCriteria(tag, text string) (Criteria, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	c := Criteria{Tag: entity.TagAll, Text: text}
	if tag == "" || tag == string(entity.TagAll) {
		return c, nil
	}
	t, ok := entity.ParseTag(tag)
	if !ok {
		return Criteria{}, &entity.ValidationError{Field: "tag", Message: "unknown tag " + tag}
	}
	c.Tag = t
	return c, nil
}
