package aggregator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/samvad-hq/bazaar-pulse/internal/domain"
	"github.com/samvad-hq/bazaar-pulse/internal/logger"
	"github.com/samvad-hq/bazaar-pulse/pkg/mockdata"
	"github.com/samvad-hq/bazaar-pulse/pkg/providers"
	"github.com/samvad-hq/bazaar-pulse/pkg/textnorm"
)

// ErrFallback marks a result made of mock data because no source produced items.
// It is returned together with a non-empty item list.
var ErrFallback = errors.New("live news unavailable, showing fallback data")

const (
	defaultMaxItems     = 20
	defaultMaxPerSource = 10
)

// Options tunes a Service.
type Options struct {
	MaxItems     int
	MaxPerSource int
	Now          func() time.Time
	Log          logger.Logger
}

// Service merges the configured sources into one time-ordered list.
type Service struct {
	fetcher      providers.Fetcher
	sources      []providers.Provider
	maxItems     int
	maxPerSource int
	now          func() time.Time
	log          logger.Logger
}

// Result describes one aggregation cycle.
type Result struct {
	Items     []domain.NewsItem
	Successes int
	Fallback  bool
}

// NewService wires a fetcher with the sources it aggregates.
func NewService(fetcher providers.Fetcher, sources []providers.Provider, opts Options) *Service {
	if opts.MaxItems <= 0 {
		opts.MaxItems = defaultMaxItems
	}
	if opts.MaxPerSource <= 0 {
		opts.MaxPerSource = defaultMaxPerSource
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	cp := make([]providers.Provider, len(sources))
	copy(cp, sources)

	return &Service{
		fetcher:      fetcher,
		sources:      cp,
		maxItems:     opts.MaxItems,
		maxPerSource: opts.MaxPerSource,
		now:          opts.Now,
		log:          logger.Ensure(opts.Log),
	}
}

// Fetch adapts Aggregate to the poller's fetch signature.
func (s *Service) Fetch(ctx context.Context) ([]domain.NewsItem, error) {
	res, err := s.Aggregate(ctx)
	return res.Items, err
}

// Aggregate fetches every source concurrently and waits for all of them.
// It never returns an empty list: when no source yields items, or the cycle
// fails unexpectedly, the mock sets of all sources are returned with an error
// wrapping ErrFallback.
func (s *Service) Aggregate(ctx context.Context) (res Result, err error) {
	if s == nil || s.fetcher == nil {
		items := mockdata.AllNews(domain.KnownSources(), time.Now())
		return Result{Items: items, Fallback: true}, fmt.Errorf("aggregator service is not initialized: %w", ErrFallback)
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorObj("news aggregation panicked", "aggregation_error", map[string]any{
				"panic": fmt.Sprint(r),
			})
			res = s.fallbackResult()
			res.Items = capItems(res.Items, s.maxItems)
			err = fmt.Errorf("aggregation failed unexpectedly: %v: %w", r, ErrFallback)
		}
	}()

	perSource := s.fetchAll(ctx)

	combined := make([]domain.NewsItem, 0, len(s.sources)*s.maxPerSource)
	for _, items := range perSource {
		if len(items) == 0 {
			continue
		}
		combined = append(combined, items...)
		res.Successes++
	}

	if res.Successes == 0 {
		s.log.WarnObj("all news sources failed; serving fallback data", "aggregation_meta", map[string]any{
			"sources_count": len(s.sources),
		})
		res = s.fallbackResult()
		res.Items = capItems(res.Items, s.maxItems)
		return res, ErrFallback
	}

	SortByPubDate(combined)
	res.Items = capItems(combined, s.maxItems)

	s.log.InfoObj("news aggregation completed", "aggregation_meta", map[string]any{
		"sources_count": len(s.sources),
		"successes":     res.Successes,
		"items":         len(res.Items),
	})
	return res, nil
}

// fetchAll fans out one fetch per source. Failures and panics settle as empty
// slots; nothing short-circuits the join.
func (s *Service) fetchAll(ctx context.Context) [][]domain.NewsItem {
	results := make([][]domain.NewsItem, len(s.sources))

	var g errgroup.Group
	for i, src := range s.sources {
		i, src := i, src
		g.Go(func() error {
			results[i] = s.fetchOne(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *Service) fetchOne(ctx context.Context, src providers.Provider) (items []domain.NewsItem) {
	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorObj("source fetch panicked", "source_error", map[string]any{
				"source": src.Name,
				"panic":  fmt.Sprint(r),
			})
			items = nil
		}
	}()

	items, err := s.fetcher.Fetch(ctx, src)
	if err != nil {
		s.log.WarnObj("source fetch failed", "source_error", map[string]any{
			"source": src.Name,
			"error":  err.Error(),
		})
		return nil
	}
	return capItems(items, s.maxPerSource)
}

func (s *Service) fallbackResult() Result {
	names := make([]string, 0, len(s.sources))
	for _, src := range s.sources {
		names = append(names, src.Name)
	}
	if len(names) == 0 {
		names = domain.KnownSources()
	}
	return Result{Items: mockdata.AllNews(names, s.now()), Fallback: true}
}

// SortByPubDate orders items newest first. Items whose dates cannot be parsed
// sort as the oldest and keep their relative order.
func SortByPubDate(items []domain.NewsItem) {
	keys := make(map[string]time.Time, len(items))
	key := func(it domain.NewsItem) time.Time {
		if t, ok := keys[it.PubDate]; ok {
			return t
		}
		t, _ := textnorm.ParseDate(it.PubDate)
		keys[it.PubDate] = t
		return t
	}
	sort.SliceStable(items, func(i, j int) bool {
		return key(items[i]).After(key(items[j]))
	})
}

func capItems(items []domain.NewsItem, limit int) []domain.NewsItem {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
