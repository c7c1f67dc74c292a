package providers

import (
	"context"

	"github.com/samvad-hq/bazaar-pulse/internal/domain"
	"github.com/samvad-hq/bazaar-pulse/pkg/httpclient"
)

// Fetcher retrieves normalized news items for a provider.
type Fetcher interface {
	Fetch(ctx context.Context, cfg Provider) ([]domain.NewsItem, error)
}

// HTTPClient aliases the shared httpclient.Client interface for clarity within providers.
type HTTPClient = httpclient.Client
