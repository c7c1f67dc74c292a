package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/samvad-hq/bazaar-pulse/internal/aggregator"
	"github.com/samvad-hq/bazaar-pulse/internal/config"
	"github.com/samvad-hq/bazaar-pulse/internal/dashboard"
	"github.com/samvad-hq/bazaar-pulse/internal/domain"
	"github.com/samvad-hq/bazaar-pulse/internal/logger"
	"github.com/samvad-hq/bazaar-pulse/internal/news"
	"github.com/samvad-hq/bazaar-pulse/internal/poller"
	"github.com/samvad-hq/bazaar-pulse/internal/trends"
	"github.com/samvad-hq/bazaar-pulse/pkg/feedproxy"
	"github.com/samvad-hq/bazaar-pulse/pkg/httpclient"
	"github.com/samvad-hq/bazaar-pulse/pkg/newsapi"
	"github.com/samvad-hq/bazaar-pulse/pkg/providers"
)

// NewsSource produces the news list.
type NewsSource interface {
	Fetch(ctx context.Context) ([]domain.NewsItem, error)
}

// TrendSource produces the trends list.
type TrendSource interface {
	Fetch(ctx context.Context) ([]domain.TrendItem, error)
}

// Options holds the runtime knobs that come from the command line.
type Options struct {
	Query   dashboard.Query
	Out     io.Writer
	NoColor bool
	Client  httpclient.Client
}

// Dashboard represents the dashboard runtime. It owns the news and trends
// pollers and renders every refreshed snapshot.
type Dashboard struct {
	cfg         *config.Config
	providerReg *providers.Registry
	newsSrc     NewsSource
	trendSrc    TrendSource
	renderer    *dashboard.Renderer
	query       dashboard.Query
	log         logger.Logger

	renderMu sync.Mutex
}

// NewDashboard builds the runtime from configuration.
func NewDashboard(cfg *config.Config, log logger.Logger, opts Options) (*Dashboard, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)

	providerReg, err := providers.LoadRegistry(cfg.ProvidersFile)
	if err != nil {
		return nil, fmt.Errorf("load providers registry: %w", err)
	}
	log.InfoObj("providers registry loaded", "providers_meta", map[string]any{
		"count": len(providerReg.All()),
		"names": providerReg.Names(),
	})

	client := opts.Client
	if client == nil {
		client = httpclient.NewRestyClient(cfg.CORSProxyTimeout)
	}

	fetcher := providers.NewSourceFetcher(providers.Options{
		Client:           client,
		JSONProxyURL:     cfg.JSONProxyURL,
		JSONProxyAPIKey:  cfg.JSONProxyAPIKey,
		JSONProxyTimeout: cfg.JSONProxyTimeout,
		CORSProxyURL:     cfg.CORSProxyURL,
		CORSProxyTimeout: cfg.CORSProxyTimeout,
		MaxItems:         cfg.MaxItemsPerSource,
		Log:              log,
	})
	agg := aggregator.NewService(fetcher, providerReg.All(), aggregator.Options{
		MaxItems:     cfg.MaxItems,
		MaxPerSource: cfg.MaxItemsPerSource,
		Log:          log,
	})
	api := newsapi.New(client, newsapi.Config{
		Endpoint: cfg.NewsAPIURL,
		APIKey:   cfg.NewsAPIKey,
		Country:  cfg.NewsAPICountry,
		Category: cfg.NewsAPICategory,
		PageSize: cfg.NewsAPIPageSize,
		Timeout:  cfg.JSONProxyTimeout,
	})

	trendFetcher := trends.NewFetcher(
		cfg.TrendsFeedURL,
		feedproxy.NewJSONProxy(client, cfg.JSONProxyURL, cfg.JSONProxyAPIKey, cfg.JSONProxyTimeout),
		feedproxy.NewCORSProxy(client, cfg.CORSProxyURL, cfg.CORSProxyTimeout),
		log,
	)

	return newDashboard(cfg, providerReg, news.NewService(api, agg, cfg.MaxItems, log), trendFetcher, log, opts), nil
}

func newDashboard(cfg *config.Config, reg *providers.Registry, newsSrc NewsSource, trendSrc TrendSource, log logger.Logger, opts Options) *Dashboard {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Dashboard{
		cfg:         cfg,
		providerReg: reg,
		newsSrc:     newsSrc,
		trendSrc:    trendSrc,
		renderer:    dashboard.NewRenderer(out, opts.NoColor),
		query:       opts.Query,
		log:         logger.Ensure(log),
	}
}

// Snapshot is the result of one refresh of both panels.
type Snapshot struct {
	News   poller.State[domain.NewsItem]
	Trends poller.State[domain.TrendItem]
}

// Run starts both pollers and blocks until ctx is cancelled, then stops them.
func (d *Dashboard) Run(ctx context.Context) error {
	if d == nil || d.newsSrc == nil || d.trendSrc == nil {
		return fmt.Errorf("dashboard is not initialized")
	}

	newsPoller := poller.New(d.newsSrc.Fetch,
		poller.WithInterval[domain.NewsItem](d.cfg.PollInterval),
		poller.WithLogger[domain.NewsItem](d.log),
		poller.WithOnUpdate(func(st poller.State[domain.NewsItem]) {
			d.renderMu.Lock()
			defer d.renderMu.Unlock()
			d.renderer.News(st, d.query)
		}),
	)
	trendPoller := poller.New(d.trendSrc.Fetch,
		poller.WithInterval[domain.TrendItem](d.cfg.TrendsPollInterval),
		poller.WithLogger[domain.TrendItem](d.log),
		poller.WithOnUpdate(func(st poller.State[domain.TrendItem]) {
			d.renderMu.Lock()
			defer d.renderMu.Unlock()
			d.renderer.Trends(st)
		}),
	)

	d.log.InfoObj("dashboard loop starting", "dashboard_state", map[string]any{
		"providers_count":      len(d.providerReg.All()),
		"poll_interval":        newsPoller.Interval().String(),
		"trends_poll_interval": trendPoller.Interval().String(),
	})

	newsPoller.Start(ctx)
	trendPoller.Start(ctx)

	<-ctx.Done()
	d.log.InfoObj("dashboard loop exiting", "reason", ctx.Err())

	newsPoller.Stop()
	trendPoller.Stop()

	// wait out a render that was already running when the pollers stopped
	d.renderMu.Lock()
	defer d.renderMu.Unlock()
	return nil
}

// RunOnce fetches both panels once, renders them and returns the snapshot.
func (d *Dashboard) RunOnce(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	if d == nil || d.newsSrc == nil || d.trendSrc == nil {
		return snap, fmt.Errorf("dashboard is not initialized")
	}

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		items, err := d.newsSrc.Fetch(ctx)
		snap.News = poller.State[domain.NewsItem]{Items: items, Err: err, LastUpdate: time.Now()}
	}()
	go func() {
		defer wg.Done()
		items, err := d.trendSrc.Fetch(ctx)
		snap.Trends = poller.State[domain.TrendItem]{Items: items, Err: err, LastUpdate: time.Now()}
	}()
	wg.Wait()

	d.renderer.News(snap.News, d.query)
	d.renderer.Trends(snap.Trends)

	d.log.InfoObj("refresh completed", "refresh_meta", map[string]any{
		"news_count":   len(snap.News.Items),
		"trends_count": len(snap.Trends.Items),
		"elapsed_ms":   time.Since(start).Milliseconds(),
	})
	return snap, nil
}
