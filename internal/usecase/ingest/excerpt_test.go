package ingest

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "", Excerpt("", 280))
	assert.Equal(t, "plain text", Excerpt("  plain \n text ", 280))
	assert.Equal(t, "Tom & Jerry", Excerpt("<p>Tom &amp; <em>Jerry</em></p>", 280))

	long := "<p>" + strings.Repeat("ビットコイン ", 100) + "</p>"
	got := Excerpt(long, 50)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 51)
}
