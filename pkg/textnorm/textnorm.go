// Package textnorm turns raw feed text into plain display text.
package textnorm

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
)

const (
	// MaxDescriptionRunes bounds a normalized description before the ellipsis.
	MaxDescriptionRunes = 200
	// Ellipsis is appended to truncated descriptions.
	Ellipsis = "..."

	maxCleanPasses = 4
)

// Clean strips HTML markup, decodes entities and collapses whitespace.
// Feeds often escape their markup twice, so decoding can expose new tags or
// entities; Clean repeats until the text stops changing.
func Clean(raw string) string {
	s := raw
	for i := 0; i < maxCleanPasses; i++ {
		next := cleanOnce(s)
		if next == s {
			return next
		}
		s = next
	}
	return s
}

func cleanOnce(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	if !strings.ContainsAny(raw, "<&") {
		return collapse(raw)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return collapse(raw)
	}
	doc.Find("script, style").Remove()
	return collapse(doc.Text())
}

// Truncate cuts s to max runes and appends Ellipsis when it was longer.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	return string(runes[:max]) + Ellipsis
}

// Description cleans raw and bounds it to MaxDescriptionRunes.
func Description(raw string) string {
	return Truncate(Clean(raw), MaxDescriptionRunes)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ParseDate parses the heterogeneous publish date formats seen across feeds
// (RFC1123 with numeric or named zones, ISO8601, "2006-01-02 15:04:05").
// Zone-less values are read as UTC. ok is false for empty or unrecognized input.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
