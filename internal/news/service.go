package news

import (
	"context"
	"errors"

	"github.com/samvad-hq/bazaar-pulse/internal/domain"
	"github.com/samvad-hq/bazaar-pulse/internal/logger"
)

// HeadlinesAPI is the direct aggregator API tier.
type HeadlinesAPI interface {
	Enabled() bool
	TopHeadlines(ctx context.Context) ([]domain.NewsItem, error)
}

// Aggregator merges the configured RSS sources.
type Aggregator interface {
	Fetch(ctx context.Context) ([]domain.NewsItem, error)
}

// Service serves the news list: the headlines API when configured, otherwise
// (or when it fails) the multi-source aggregator with its own mock fallback.
type Service struct {
	api      HeadlinesAPI
	agg      Aggregator
	maxItems int
	log      logger.Logger
}

// NewService builds the news tier. api may be nil.
func NewService(api HeadlinesAPI, agg Aggregator, maxItems int, log logger.Logger) *Service {
	if maxItems <= 0 {
		maxItems = 20
	}
	return &Service{api: api, agg: agg, maxItems: maxItems, log: logger.Ensure(log)}
}

// Fetch returns the current news list. A non-nil error may accompany items
// when they are fallback data.
func (s *Service) Fetch(ctx context.Context) ([]domain.NewsItem, error) {
	if s.api != nil && s.api.Enabled() {
		items, err := s.api.TopHeadlines(ctx)
		switch {
		case err != nil:
			s.log.WarnObj("headlines api failed; using feed aggregation", "news_api_error", map[string]any{
				"error": err.Error(),
			})
		case len(items) == 0:
			s.log.WarnObj("headlines api returned no articles; using feed aggregation", "news_api_error", map[string]any{
				"items": 0,
			})
		default:
			if len(items) > s.maxItems {
				items = items[:s.maxItems]
			}
			return items, nil
		}
	}

	if s.agg == nil {
		return nil, errors.New("news aggregator is not configured")
	}
	return s.agg.Fetch(ctx)
}
