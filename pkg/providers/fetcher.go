package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/bazaar-pulse/internal/domain"
	"github.com/samvad-hq/bazaar-pulse/internal/logger"
	"github.com/samvad-hq/bazaar-pulse/pkg/fallback"
	"github.com/samvad-hq/bazaar-pulse/pkg/feedproxy"
	"github.com/samvad-hq/bazaar-pulse/pkg/httpclient"
	"github.com/samvad-hq/bazaar-pulse/pkg/mockdata"
)

// Strategy names, in the order the per-source ladder tries them.
const (
	StrategyJSONProxy = "json_proxy"
	StrategyCORSProxy = "cors_proxy"
	StrategyDirect    = "direct"
	StrategyMock      = "mock"
)

const (
	defaultJSONProxyTimeout = 10 * time.Second
	defaultCORSProxyTimeout = 15 * time.Second
)

// Options configures a SourceFetcher.
type Options struct {
	Client           HTTPClient
	JSONProxyURL     string
	JSONProxyAPIKey  string
	JSONProxyTimeout time.Duration
	CORSProxyURL     string
	CORSProxyTimeout time.Duration
	MaxItems         int
	Now              func() time.Time
	Log              logger.Logger
}

// SourceFetcher runs the per-source fallback ladder:
// JSON proxy, then pass-through proxy with RSS parsing, then (when the provider
// opts in) a direct read, and finally the provider's mock set.
type SourceFetcher struct {
	jsonProxy *feedproxy.JSONProxy
	corsProxy *feedproxy.CORSProxy
	direct    *feedproxy.Direct
	limit     int
	now       func() time.Time
	log       logger.Logger
}

// NewSourceFetcher wires the proxy clients from opts.
func NewSourceFetcher(opts Options) *SourceFetcher {
	if opts.Client == nil {
		opts.Client = httpclient.NewRestyClient(defaultCORSProxyTimeout)
	}
	if opts.JSONProxyTimeout <= 0 {
		opts.JSONProxyTimeout = defaultJSONProxyTimeout
	}
	if opts.CORSProxyTimeout <= 0 {
		opts.CORSProxyTimeout = defaultCORSProxyTimeout
	}
	if opts.MaxItems <= 0 {
		opts.MaxItems = feedproxy.DefaultLimit
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &SourceFetcher{
		jsonProxy: feedproxy.NewJSONProxy(opts.Client, opts.JSONProxyURL, opts.JSONProxyAPIKey, opts.JSONProxyTimeout),
		corsProxy: feedproxy.NewCORSProxy(opts.Client, opts.CORSProxyURL, opts.CORSProxyTimeout),
		direct:    feedproxy.NewDirect(opts.Client, opts.CORSProxyTimeout),
		limit:     opts.MaxItems,
		now:       opts.Now,
		log:       logger.Ensure(opts.Log),
	}
}

// Fetch returns the provider's items. It never fails and never returns an
// empty list: when every live strategy misses, the mock set is served.
func (f *SourceFetcher) Fetch(ctx context.Context, cfg Provider) ([]domain.NewsItem, error) {
	return f.FetchResult(ctx, cfg).Items, nil
}

// FetchResult is Fetch plus the name of the strategy that produced the items
// and every attempt made.
func (f *SourceFetcher) FetchResult(ctx context.Context, cfg Provider) fallback.Result[domain.NewsItem] {
	ladder := f.ladder(cfg)
	res, err := ladder.Run(ctx, cfg)
	if err != nil {
		f.log.WarnObj("source ladder exhausted", "source_fallback", map[string]any{
			"source": cfg.Name,
			"error":  err.Error(),
		})
		res.Items = mockdata.News(cfg.Name, f.now())
		res.Strategy = StrategyMock
	}

	f.log.DebugObj("source fetched", "source_result", map[string]any{
		"source":   cfg.Name,
		"strategy": res.Strategy,
		"items":    len(res.Items),
		"attempts": len(res.Attempts),
		"rungs":    ladder.Len(),
	})
	return res
}

func (f *SourceFetcher) ladder(cfg Provider) *fallback.Ladder[Provider, domain.NewsItem] {
	rungs := []fallback.Strategy[Provider, domain.NewsItem]{
		{Name: StrategyJSONProxy, Fn: f.viaJSONProxy},
		{Name: StrategyCORSProxy, Fn: f.viaCORSProxy},
	}
	if ConfigBool(cfg, ConfigDirectFetchKey) {
		rungs = append(rungs, fallback.Strategy[Provider, domain.NewsItem]{Name: StrategyDirect, Fn: f.viaDirect})
	}
	rungs = append(rungs, fallback.Strategy[Provider, domain.NewsItem]{Name: StrategyMock, Fn: f.viaMock})

	return fallback.New(rungs...).OnFailure(func(strategy string, err error) {
		f.log.WarnObj("source strategy failed", "source_strategy_error", map[string]any{
			"source":   cfg.Name,
			"strategy": strategy,
			"error":    err.Error(),
		})
	})
}

func (f *SourceFetcher) viaJSONProxy(ctx context.Context, cfg Provider) ([]domain.NewsItem, error) {
	entries, err := f.jsonProxy.Entries(ctx, cfg.FeedURL, f.limit)
	if err != nil {
		return nil, err
	}
	return f.toNewsItems(cfg, entries), nil
}

func (f *SourceFetcher) viaCORSProxy(ctx context.Context, cfg Provider) ([]domain.NewsItem, error) {
	entries, err := f.corsProxy.FeedEntries(ctx, cfg.FeedURL, f.limit)
	if err != nil {
		return nil, err
	}
	return f.toNewsItems(cfg, entries), nil
}

func (f *SourceFetcher) viaDirect(ctx context.Context, cfg Provider) ([]domain.NewsItem, error) {
	entries, err := f.direct.FeedEntries(ctx, cfg.FeedURL, Headers(cfg), f.limit)
	if err != nil {
		return nil, err
	}
	return f.toNewsItems(cfg, entries), nil
}

func (f *SourceFetcher) viaMock(_ context.Context, cfg Provider) ([]domain.NewsItem, error) {
	return mockdata.News(cfg.Name, f.now()), nil
}

// toNewsItems stamps entries with provider identity. IDs carry a time suffix,
// so they are unique within a cycle but not stable across cycles.
func (f *SourceFetcher) toNewsItems(cfg Provider, entries []feedproxy.Entry) []domain.NewsItem {
	if len(entries) > f.limit {
		entries = entries[:f.limit]
	}
	stamp := f.now().UnixNano()
	category := cfg.Category
	if category == "" {
		category = domain.DefaultCategory
	}

	out := make([]domain.NewsItem, 0, len(entries))
	for i, e := range entries {
		out = append(out, domain.NewsItem{
			ID:          fmt.Sprintf("%s-%d-%d", cfg.ID, stamp, i),
			Title:       e.Title,
			Description: e.Description,
			Link:        e.Link,
			PubDate:     e.PubDate,
			Source:      cfg.Name,
			Category:    category,
		})
	}
	return out
}
