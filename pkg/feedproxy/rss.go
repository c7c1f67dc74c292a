package feedproxy

import (
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

// ParseFeed reads up to limit items from an RSS/Atom document. Items with
// neither title nor description are dropped after normalization.
func ParseFeed(raw string, limit int) ([]Entry, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("parse feed: empty document")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	feed, err := gofeed.NewParser().ParseString(raw)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := feed.Items
	if len(items) > limit {
		items = items[:limit]
	}

	out := make([]Entry, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		published := it.Published
		if published == "" {
			published = it.Updated
		}
		if e, ok := newEntry(it.Title, it.Link, published, it.Description); ok {
			out = append(out, e)
		}
	}
	return out, nil
}
