package dashboard

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/samvad-hq/bazaar-pulse/internal/domain"
	"github.com/samvad-hq/bazaar-pulse/internal/poller"
)

func TestRendererNews(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, true)
	r.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	st := poller.State[domain.NewsItem]{
		Items: []domain.NewsItem{{
			Title:       "Nifty closes higher",
			Description: "Banks lead gains",
			Link:        "https://example.com/nifty",
			PubDate:     "2024-03-01T11:00:00Z",
			Source:      domain.SourceMoneycontrol,
			Category:    domain.DefaultCategory,
		}},
		Err: errors.New("live news unavailable, showing fallback data"),
	}
	r.News(st, Query{})

	out := buf.String()
	assert.Contains(t, out, "page 1/1, 1 stories")
	assert.Contains(t, out, "Nifty closes higher")
	assert.Contains(t, out, "Moneycontrol | Business | 1h ago")
	assert.Contains(t, out, "! live news unavailable")
	assert.Contains(t, out, "sources: Moneycontrol\n")
	assert.Contains(t, out, "categories: Business\n")
	assert.NotContains(t, out, "\x1b[")
}

func TestRendererNewsEmptyPage(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf, true).News(poller.State[domain.NewsItem]{Loading: true}, Query{Search: "x"})
	assert.Contains(t, buf.String(), "refreshing...")
	assert.Contains(t, buf.String(), "no stories match")
}

func TestRendererTrends(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, true)
	r.Trends(poller.State[domain.TrendItem]{Items: []domain.TrendItem{{Title: "IPO listing"}}})
	assert.Contains(t, buf.String(), "Trending in India  (1)")
	assert.Contains(t, buf.String(), " 1. IPO listing")
}
