package source

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"feedboard/internal/domain/entity"
)

// AddInput represents a user-submitted feed addition.
// Title and Tag are optional.
type AddInput struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
	Tag   string `json:"tag,omitempty"`
}

// Registry holds the configured feeds in insertion order.
// It is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	feeds       []entity.FeedConfig
	byID        map[string]int
	denyPrivate bool
}

// NewRegistry creates a registry seeded with feeds. Each feed is validated;
// duplicate ids or URLs are rejected.
func NewRegistry(feeds []entity.FeedConfig, denyPrivate bool) (*Registry, error) {
	r := &Registry{
		byID:        make(map[string]int, len(feeds)),
		denyPrivate: denyPrivate,
	}
	for _, f := range feeds {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("feed %q: %w", f.ID, err)
		}
		if _, dup := r.byID[f.ID]; dup {
			return nil, fmt.Errorf("feed %q: duplicate id", f.ID)
		}
		if r.hasURL(f.URL) {
			return nil, fmt.Errorf("feed %q: %w", f.ID, ErrDuplicateSource)
		}
		r.byID[f.ID] = len(r.feeds)
		r.feeds = append(r.feeds, f)
	}
	return r, nil
}

// List returns a copy of the configured feeds.
func (r *Registry) List() []entity.FeedConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.FeedConfig, len(r.feeds))
	copy(out, r.feeds)
	return out
}

// Get returns the feed with id.
func (r *Registry) Get(id string) (entity.FeedConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[id]
	if !ok {
		return entity.FeedConfig{}, ErrSourceNotFound
	}
	return r.feeds[i], nil
}

// Add validates in and appends a new feed. The tag defaults to custom and
// the title to the URL host.
func (r *Registry) Add(in AddInput) (entity.FeedConfig, error) {
	rawURL := strings.TrimSpace(in.URL)
	if err := entity.ValidateURL(rawURL, r.denyPrivate); err != nil {
		return entity.FeedConfig{}, err
	}

	tag := entity.TagCustom
	if strings.TrimSpace(in.Tag) != "" {
		parsed, ok := entity.ParseTag(in.Tag)
		if !ok {
			return entity.FeedConfig{}, &entity.ValidationError{
				Field:   "tag",
				Message: fmt.Sprintf("invalid tag %q (must be news, on-chain, research, or custom)", in.Tag),
			}
		}
		tag = parsed
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		u, _ := url.Parse(rawURL)
		title = strings.TrimPrefix(u.Hostname(), "www.")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hasURL(rawURL) {
		return entity.FeedConfig{}, ErrDuplicateSource
	}

	feed := entity.FeedConfig{ID: NewFeedID(title), Title: title, URL: rawURL, Tag: tag}
	for _, exists := r.byID[feed.ID]; exists; _, exists = r.byID[feed.ID] {
		feed.ID = NewFeedID(title)
	}

	r.byID[feed.ID] = len(r.feeds)
	r.feeds = append(r.feeds, feed)
	return feed, nil
}

// hasURL must be called with r.mu held.
func (r *Registry) hasURL(u string) bool {
	for _, f := range r.feeds {
		if strings.EqualFold(strings.TrimRight(f.URL, "/"), strings.TrimRight(u, "/")) {
			return true
		}
	}
	return false
}
