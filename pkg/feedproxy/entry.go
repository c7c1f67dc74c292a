// Package feedproxy reads RSS feeds through third-party proxy services and
// normalizes their entries.
package feedproxy

import (
	"errors"
	"strings"

	"github.com/samvad-hq/bazaar-pulse/pkg/textnorm"
)

// DefaultLimit bounds how many entries a single feed contributes.
const DefaultLimit = 10

var (
	// ErrUpstreamStatus means the proxy answered but reported a non-ok status.
	ErrUpstreamStatus = errors.New("upstream reported failure status")
	// ErrNoContents means the pass-through proxy returned no body for the feed.
	ErrNoContents = errors.New("proxy returned no contents")
)

// Entry is one normalized feed item, independent of how it was obtained.
type Entry struct {
	Title       string
	Link        string
	PubDate     string
	Description string
}

func newEntry(title, link, pubDate, description string) (Entry, bool) {
	e := Entry{
		Title:       textnorm.Clean(title),
		Link:        strings.TrimSpace(link),
		PubDate:     strings.TrimSpace(pubDate),
		Description: textnorm.Description(description),
	}
	if e.Title == "" && e.Description == "" {
		return Entry{}, false
	}
	return e, true
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
