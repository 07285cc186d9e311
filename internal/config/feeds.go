package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"feedboard/internal/domain/entity"
)

//go:embed default_feeds.yaml
var defaultFeedsYAML []byte

// FeedsFile is the YAML document listing the configured feeds.
type FeedsFile struct {
	Feeds        []entity.FeedConfig `yaml:"feeds"`
	Placeholders PlaceholderConfig   `yaml:"placeholders"`
}

// PlaceholderConfig maps tags to placeholder image URLs.
type PlaceholderConfig struct {
	Default string                `yaml:"default"`
	ByTag   map[entity.Tag]string `yaml:"by_tag"`
}

// LoadFeeds reads the feed list from path, or the embedded default list
// when path is empty.
// The path parameter is expected to come from a trusted source (environment or CLI flag).
func LoadFeeds(path string) (*FeedsFile, error) {
	data := defaultFeedsYAML
	if path != "" {
		// #nosec G304 -- path is provided by the operator, not request input
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read feeds file: %w", err)
		}
		data = b
	}
	return ParseFeeds(data)
}

// ParseFeeds decodes and validates a feeds document.
func ParseFeeds(data []byte) (*FeedsFile, error) {
	var f FeedsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse feeds file: %w", err)
	}

	if err := validateFeedsFile(&f); err != nil {
		return nil, fmt.Errorf("feeds file validation failed: %w", err)
	}

	return &f, nil
}

// validateFeedsFile checks each feed and normalizes the tag casing.
func validateFeedsFile(f *FeedsFile) error {
	if len(f.Feeds) == 0 {
		return fmt.Errorf("at least one feed is required")
	}

	seen := make(map[string]struct{}, len(f.Feeds))
	for i := range f.Feeds {
		feed := &f.Feeds[i]
		if feed.Tag == "" {
			feed.Tag = entity.TagCustom
		}
		tag, ok := entity.ParseTag(string(feed.Tag))
		if !ok {
			return fmt.Errorf("feeds[%d]: unknown tag %q", i, feed.Tag)
		}
		feed.Tag = tag

		if err := feed.Validate(); err != nil {
			return fmt.Errorf("feeds[%d]: %w", i, err)
		}
		if _, dup := seen[feed.ID]; dup {
			return fmt.Errorf("feeds[%d]: duplicate id %q", i, feed.ID)
		}
		seen[feed.ID] = struct{}{}
	}

	for tag := range f.Placeholders.ByTag {
		if _, ok := entity.ParseTag(string(tag)); !ok {
			return fmt.Errorf("placeholders: unknown tag %q", tag)
		}
	}
	return nil
}
