package dashboard

import (
	"fmt"
	"time"

	"github.com/samvad-hq/bazaar-pulse/pkg/textnorm"
)

// RelativeTime renders pubDate relative to now ("5m ago"). Unparseable dates
// are returned unchanged.
func RelativeTime(pubDate string, now time.Time) string {
	t, ok := textnorm.ParseDate(pubDate)
	if !ok {
		return pubDate
	}

	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	default:
		return t.UTC().Format("02 Jan 2006")
	}
}
