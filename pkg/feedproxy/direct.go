package feedproxy

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/bazaar-pulse/pkg/httpclient"
)

// Direct reads a feed straight from its origin, for hosts that do not block
// server-side clients.
type Direct struct {
	client  httpclient.Client
	timeout time.Duration
}

// NewDirect builds a direct feed reader.
func NewDirect(client httpclient.Client, timeout time.Duration) *Direct {
	return &Direct{client: client, timeout: timeout}
}

// FeedEntries downloads feedURL with headers and parses it.
func (d *Direct) FeedEntries(ctx context.Context, feedURL string, headers map[string]string, limit int) ([]Entry, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	resp, err := d.client.Get(ctx, feedURL, headers)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	if !httpclient.IsSuccess(resp) {
		return nil, fmt.Errorf("feed returned status %d body: %s", resp.StatusCode(), responseSnippet(resp.Body()))
	}
	return ParseFeed(string(resp.Body()), limit)
}
