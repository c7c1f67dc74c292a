package trends

import (
	"context"
	"errors"
	"time"

	"github.com/samvad-hq/bazaar-pulse/internal/domain"
	"github.com/samvad-hq/bazaar-pulse/internal/logger"
	"github.com/samvad-hq/bazaar-pulse/pkg/fallback"
	"github.com/samvad-hq/bazaar-pulse/pkg/feedproxy"
	"github.com/samvad-hq/bazaar-pulse/pkg/mockdata"
)

// ErrFallback marks mock trends served because the feed could not be read.
var ErrFallback = errors.New("live trends unavailable, showing fallback data")

// EntrySource reads normalized entries for a feed URL.
type EntrySource interface {
	Entries(ctx context.Context, feedURL string, count int) ([]feedproxy.Entry, error)
}

// FeedSource reads a feed through a pass-through proxy.
type FeedSource interface {
	FeedEntries(ctx context.Context, feedURL string, limit int) ([]feedproxy.Entry, error)
}

// Fetcher reads the trending-searches feed.
type Fetcher struct {
	feedURL string
	ladder  *fallback.Ladder[string, feedproxy.Entry]
	limit   int
	now     func() time.Time
	log     logger.Logger
}

// NewFetcher builds a trends fetcher trying jsonProxy, then corsProxy.
func NewFetcher(feedURL string, jsonProxy EntrySource, corsProxy FeedSource, log logger.Logger) *Fetcher {
	f := &Fetcher{
		feedURL: feedURL,
		limit:   feedproxy.DefaultLimit,
		now:     time.Now,
		log:     logger.Ensure(log),
	}

	var rungs []fallback.Strategy[string, feedproxy.Entry]
	if jsonProxy != nil {
		rungs = append(rungs, fallback.Strategy[string, feedproxy.Entry]{
			Name: "json_proxy",
			Fn: func(ctx context.Context, u string) ([]feedproxy.Entry, error) {
				return jsonProxy.Entries(ctx, u, f.limit)
			},
		})
	}
	if corsProxy != nil {
		rungs = append(rungs, fallback.Strategy[string, feedproxy.Entry]{
			Name: "cors_proxy",
			Fn: func(ctx context.Context, u string) ([]feedproxy.Entry, error) {
				return corsProxy.FeedEntries(ctx, u, f.limit)
			},
		})
	}
	f.ladder = fallback.New(rungs...).OnFailure(func(strategy string, err error) {
		f.log.WarnObj("trends strategy failed", "trends_strategy_error", map[string]any{
			"strategy": strategy,
			"error":    err.Error(),
		})
	})
	return f
}

// Fetch returns up to ten trends. When every strategy misses it returns the
// mock trends together with ErrFallback.
func (f *Fetcher) Fetch(ctx context.Context) ([]domain.TrendItem, error) {
	res, err := f.ladder.Run(ctx, f.feedURL)
	if err != nil {
		f.log.WarnObj("trends unavailable; serving fallback data", "trends_fallback", map[string]any{
			"error": err.Error(),
		})
		return mockdata.Trends(f.now()), ErrFallback
	}

	entries := res.Items
	if len(entries) > f.limit {
		entries = entries[:f.limit]
	}
	out := make([]domain.TrendItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.TrendItem{
			Title:       e.Title,
			Link:        e.Link,
			PubDate:     e.PubDate,
			Description: e.Description,
		})
	}
	return out, nil
}
