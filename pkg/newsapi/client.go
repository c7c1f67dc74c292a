// Package newsapi reads top headlines from a NewsAPI-compatible REST endpoint.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samvad-hq/bazaar-pulse/internal/domain"
	"github.com/samvad-hq/bazaar-pulse/pkg/httpclient"
	"github.com/samvad-hq/bazaar-pulse/pkg/textnorm"
)

var (
	// ErrDisabled is returned when no API key is configured.
	ErrDisabled = errors.New("news api key not configured")
	// ErrUpstreamStatus means the API answered with a status other than "ok".
	ErrUpstreamStatus = errors.New("news api reported failure status")
)

// Config selects the endpoint and query.
type Config struct {
	Endpoint string
	APIKey   string
	Country  string
	Category string
	PageSize int
	Timeout  time.Duration
}

// Client fetches headlines from the aggregator API.
type Client struct {
	http httpclient.Client
	cfg  Config
	now  func() time.Time
}

// New builds a Client. Missing query fields fall back to Indian business news.
func New(client httpclient.Client, cfg Config) *Client {
	if client == nil {
		client = httpclient.NewRestyClient(10 * time.Second)
	}
	if cfg.Country == "" {
		cfg.Country = "in"
	}
	if cfg.Category == "" {
		cfg.Category = "business"
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{http: client, cfg: cfg, now: time.Now}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c != nil && strings.TrimSpace(c.cfg.APIKey) != ""
}

type response struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// TopHeadlines returns normalized headlines. Articles keep the upstream
// source name; articles lacking both title and description are dropped.
func (c *Client) TopHeadlines(ctx context.Context) ([]domain.NewsItem, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	reqURL, err := c.requestURL()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.http.Get(ctx, reqURL, map[string]string{
		"Accept":    "application/json",
		"X-Api-Key": c.cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("news api request: %w", err)
	}

	var payload response
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		if !httpclient.IsSuccess(resp) {
			return nil, fmt.Errorf("news api returned status %d", resp.StatusCode())
		}
		return nil, fmt.Errorf("decode news api response: %w", err)
	}
	if !httpclient.IsSuccess(resp) || !strings.EqualFold(payload.Status, "ok") {
		return nil, fmt.Errorf("news api status %q code %q (%s): %w", payload.Status, payload.Code, payload.Message, ErrUpstreamStatus)
	}

	stamp := c.now().UnixNano()
	out := make([]domain.NewsItem, 0, len(payload.Articles))
	for i, a := range payload.Articles {
		title := textnorm.Clean(a.Title)
		desc := textnorm.Description(a.Description)
		if title == "" && desc == "" {
			continue
		}
		source := strings.TrimSpace(a.Source.Name)
		if source == "" {
			source = "NewsAPI"
		}
		out = append(out, domain.NewsItem{
			ID:          fmt.Sprintf("newsapi-%d-%d", stamp, i),
			Title:       title,
			Description: desc,
			Link:        strings.TrimSpace(a.URL),
			PubDate:     strings.TrimSpace(a.PublishedAt),
			Source:      source,
			Category:    domain.DefaultCategory,
		})
	}
	return out, nil
}

func (c *Client) requestURL() (string, error) {
	u, err := url.Parse(strings.TrimSpace(c.cfg.Endpoint))
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid news api endpoint %q", c.cfg.Endpoint)
	}
	q := u.Query()
	q.Set("country", c.cfg.Country)
	q.Set("category", c.cfg.Category)
	q.Set("pageSize", strconv.Itoa(c.cfg.PageSize))
	q.Set("apiKey", c.cfg.APIKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
