package feedproxy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samvad-hq/bazaar-pulse/pkg/httpclient"
)

// JSONProxy converts an RSS feed to JSON through an rss2json-style service.
type JSONProxy struct {
	client   httpclient.Client
	endpoint string
	apiKey   string
	timeout  time.Duration
}

// NewJSONProxy builds a JSON conversion proxy client.
func NewJSONProxy(client httpclient.Client, endpoint, apiKey string, timeout time.Duration) *JSONProxy {
	return &JSONProxy{
		client:   client,
		endpoint: strings.TrimSpace(endpoint),
		apiKey:   strings.TrimSpace(apiKey),
		timeout:  timeout,
	}
}

type jsonProxyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Items   []struct {
		Title       string `json:"title"`
		Link        string `json:"link"`
		PubDate     string `json:"pubDate"`
		Description string `json:"description"`
	} `json:"items"`
}

// Entries fetches feedURL through the proxy asking for at most count items.
func (p *JSONProxy) Entries(ctx context.Context, feedURL string, count int) ([]Entry, error) {
	if count <= 0 {
		count = DefaultLimit
	}
	reqURL, err := p.requestURL(feedURL, count)
	if err != nil {
		return nil, err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	resp, err := p.client.Get(ctx, reqURL, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, fmt.Errorf("json proxy request: %w", err)
	}
	if !httpclient.IsSuccess(resp) {
		return nil, fmt.Errorf("json proxy returned status %d body: %s", resp.StatusCode(), responseSnippet(resp.Body()))
	}

	var payload jsonProxyResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("decode json proxy response: %w", err)
	}
	if !strings.EqualFold(payload.Status, "ok") {
		return nil, fmt.Errorf("json proxy status %q (%s): %w", payload.Status, payload.Message, ErrUpstreamStatus)
	}

	items := payload.Items
	if len(items) > count {
		items = items[:count]
	}
	out := make([]Entry, 0, len(items))
	for _, it := range items {
		if e, ok := newEntry(it.Title, it.Link, it.PubDate, it.Description); ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (p *JSONProxy) requestURL(feedURL string, count int) (string, error) {
	u, err := url.Parse(p.endpoint)
	if err != nil || p.endpoint == "" {
		return "", fmt.Errorf("invalid json proxy endpoint %q", p.endpoint)
	}
	q := u.Query()
	q.Set("rss_url", feedURL)
	q.Set("count", strconv.Itoa(count))
	if p.apiKey != "" {
		q.Set("api_key", p.apiKey)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
