package ingest

import (
	"html"
	"net/url"
	"regexp"
	"strings"

	"feedboard/internal/domain/entity"
)

// imgSrcPattern finds the first <img ... src="..."> in an HTML fragment.
// Malformed markup simply yields no match.
var imgSrcPattern = regexp.MustCompile(`(?is)<img\b[^>]*?[\s"'/]src\s*=\s*["']([^"'>]+)["']`)

// Placeholders maps each tag to a placeholder image.
type Placeholders struct {
	ByTag   map[entity.Tag]string `yaml:"by_tag"`
	Default string                `yaml:"default"`
}

// DefaultPlaceholders returns the built-in placeholder set.
func DefaultPlaceholders() Placeholders {
	return Placeholders{
		ByTag: map[entity.Tag]string{
			entity.TagNews:     "https://placehold.co/640x360/0f172a/e2e8f0?text=News",
			entity.TagOnChain:  "https://placehold.co/640x360/052e16/bbf7d0?text=On-chain",
			entity.TagResearch: "https://placehold.co/640x360/1e1b4b/c7d2fe?text=Research",
			entity.TagCustom:   "https://placehold.co/640x360/27272a/e4e4e7?text=Custom",
		},
		Default: "https://placehold.co/640x360/18181b/a1a1aa?text=Feed",
	}
}

// PlaceholdersFrom overlays the given default and per-tag URLs on the
// built-in set. Blank values keep the built-in entry.
func PlaceholdersFrom(def string, byTag map[entity.Tag]string) Placeholders {
	p := DefaultPlaceholders()
	if d := strings.TrimSpace(def); d != "" {
		p.Default = d
	}
	for tag, u := range byTag {
		if u = strings.TrimSpace(u); u != "" {
			p.ByTag[tag] = u
		}
	}
	return p
}

// For returns the placeholder for tag, falling back to Default and then to
// the built-in default so the result is never empty.
func (p Placeholders) For(tag entity.Tag) string {
	if u := strings.TrimSpace(p.ByTag[tag]); u != "" {
		return u
	}
	if u := strings.TrimSpace(p.Default); u != "" {
		return u
	}
	return DefaultPlaceholders().Default
}

// ImageResolver picks a representative image for an item.
type ImageResolver struct {
	Placeholders Placeholders
}

// NewImageResolver returns a resolver using the given placeholders.
func NewImageResolver(p Placeholders) ImageResolver {
	return ImageResolver{Placeholders: p}
}

// Resolve walks the heuristic chain and returns the first usable absolute
// URL: media attachment, image enclosure, first <img> in content, first
// <img> in description, the feed's fallback image, then the tag placeholder.
// It never returns an empty string.
func (r ImageResolver) Resolve(raw entity.RawItem, baseURL string, feed entity.FeedConfig) string {
	candidates := []string{
		raw.MediaURL,
		raw.EnclosureURL,
		firstImgSrc(raw.ContentHTML),
		firstImgSrc(raw.DescriptionHTML),
	}
	for _, c := range candidates {
		if u, ok := NormalizeImageURL(c, baseURL); ok {
			return u
		}
	}

	if fb := strings.TrimSpace(feed.FallbackImage); fb != "" {
		return fb
	}
	return r.Placeholders.For(feed.Tag)
}

func firstImgSrc(fragment string) string {
	if fragment == "" {
		return ""
	}
	m := imgSrcPattern.FindStringSubmatch(fragment)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// NormalizeImageURL turns raw into an absolute http(s) URL.
// Protocol-relative URLs are upgraded to https and relative references are
// resolved against baseURL. It reports false when no usable URL results.
func NormalizeImageURL(raw, baseURL string) (string, bool) {
	s := strings.TrimSpace(html.UnescapeString(raw))
	if s == "" {
		return "", false
	}
	if strings.HasPrefix(s, "//") {
		s = "https:" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", false
	}

	if !u.IsAbs() {
		base, err := url.Parse(strings.TrimSpace(baseURL))
		if err != nil || !isHTTP(base) || base.Host == "" {
			return "", false
		}
		if strings.HasPrefix(s, "/") {
			// ルート相対はオリジン基準で解決
			base = &url.URL{Scheme: base.Scheme, Host: base.Host, Path: "/"}
		}
		u = base.ResolveReference(u)
	}

	if !isHTTP(u) || u.Host == "" {
		return "", false
	}
	return u.String(), true
}

func isHTTP(u *url.URL) bool {
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
