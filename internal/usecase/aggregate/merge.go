package aggregate

import (
	"errors"
	"sort"

	"feedboard/internal/domain/entity"
)

// noItemsMessage is shown for feeds that were fetched but yielded nothing.
const noItemsMessage = "no items"

// mergeOutcomes splits outcomes (aligned with feeds) into contributed items
// and failure entries, in feed order.
func mergeOutcomes(feeds []entity.FeedConfig, outcomes []entity.FeedOutcome) ([]entity.Item, []entity.FailureEntry) {
	var items []entity.Item
	failures := make([]entity.FailureEntry, 0)

	for i, o := range outcomes {
		feed := feeds[i]
		switch {
		case o.Failed():
			failures = append(failures, failureFor(feed, o.Err))
		case len(o.Items) == 0:
			failures = append(failures, failureFor(feed, entity.ErrNoItems))
		default:
			items = append(items, o.Items...)
		}
	}

	return sortItems(dedupe(items)), failures
}

func failureFor(feed entity.FeedConfig, err error) entity.FailureEntry {
	return entity.FailureEntry{
		FeedID:  feed.ID,
		Title:   feed.Title,
		URL:     feed.URL,
		Message: failureMessage(err),
	}
}

func failureMessage(err error) string {
	var tErr *entity.TransportError
	switch {
	case errors.Is(err, entity.ErrNoItems):
		return noItemsMessage
	case errors.As(err, &tErr):
		return tErr.Message
	default:
		return err.Error()
	}
}

// dedupe drops items whose non-empty link was already seen, keeping the
// first occurrence.
func dedupe(items []entity.Item) []entity.Item {
	seen := make(map[string]struct{}, len(items))
	out := make([]entity.Item, 0, len(items))
	for _, it := range items {
		if it.Link != "" {
			if _, dup := seen[it.Link]; dup {
				continue
			}
			seen[it.Link] = struct{}{}
		}
		out = append(out, it)
	}
	return out
}

// sortItems orders newest first. Undated items go after every dated item and
// keep their relative order.
func sortItems(items []entity.Item) []entity.Item {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].PubDate, items[j].PubDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return items
}
