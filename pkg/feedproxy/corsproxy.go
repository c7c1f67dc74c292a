package feedproxy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/samvad-hq/bazaar-pulse/pkg/httpclient"
)

// CORSProxy fetches a URL through an allorigins-style pass-through proxy that
// wraps the body as {"contents": "..."}.
type CORSProxy struct {
	client   httpclient.Client
	endpoint string
	timeout  time.Duration
}

// NewCORSProxy builds a pass-through proxy client.
func NewCORSProxy(client httpclient.Client, endpoint string, timeout time.Duration) *CORSProxy {
	return &CORSProxy{
		client:   client,
		endpoint: strings.TrimSpace(endpoint),
		timeout:  timeout,
	}
}

type corsProxyResponse struct {
	Contents *string `json:"contents"`
}

// Contents returns the raw body of target as relayed by the proxy.
func (p *CORSProxy) Contents(ctx context.Context, target string) (string, error) {
	u, err := url.Parse(p.endpoint)
	if err != nil || p.endpoint == "" {
		return "", fmt.Errorf("invalid cors proxy endpoint %q", p.endpoint)
	}
	q := u.Query()
	q.Set("url", target)
	u.RawQuery = q.Encode()

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	resp, err := p.client.Get(ctx, u.String(), map[string]string{"Accept": "application/json"})
	if err != nil {
		return "", fmt.Errorf("cors proxy request: %w", err)
	}
	if !httpclient.IsSuccess(resp) {
		return "", fmt.Errorf("cors proxy returned status %d body: %s", resp.StatusCode(), responseSnippet(resp.Body()))
	}

	var payload corsProxyResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return "", fmt.Errorf("decode cors proxy response: %w", err)
	}
	if payload.Contents == nil || strings.TrimSpace(*payload.Contents) == "" {
		return "", ErrNoContents
	}
	return *payload.Contents, nil
}

// FeedEntries fetches feedURL through the proxy and parses it as RSS/Atom.
func (p *CORSProxy) FeedEntries(ctx context.Context, feedURL string, limit int) ([]Entry, error) {
	raw, err := p.Contents(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	return ParseFeed(raw, limit)
}
