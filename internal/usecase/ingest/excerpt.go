package ingest

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExcerptLength is the maximum excerpt length in runes.
const ExcerptLength = 280

// Excerpt extracts plain text from an HTML fragment, collapses whitespace and
// truncates to max runes with a trailing ellipsis.
func Excerpt(fragment string, max int) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	text := fragment
	if strings.ContainsAny(fragment, "<&") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
		if err == nil {
			text = doc.Text()
		}
	}
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if max <= 0 || len(runes) <= max {
		return text
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}
