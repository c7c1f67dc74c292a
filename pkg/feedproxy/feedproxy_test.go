package feedproxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/bazaar-pulse/pkg/httpclient"
)

// fakeResponse lets us stub the httpclient.Client interface.
type fakeResponse struct {
	body       []byte
	statusCode int
}

func (f fakeResponse) Body() []byte    { return f.body }
func (f fakeResponse) StatusCode() int { return f.statusCode }

// fakeHTTPClient answers every request with the same canned response.
type fakeHTTPClient struct {
	resp  fakeResponse
	err   error
	calls []string
}

func (f *fakeHTTPClient) Get(_ context.Context, url string, _ map[string]string) (httpclient.Response, error) {
	f.calls = append(f.calls, url)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func rssDoc(n int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>Feed</title>`)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `<item><title>Headline %d</title><link>https://example.com/%d</link>`+
			`<description><![CDATA[<p>Body &amp; more %d</p>]]></description>`+
			`<pubDate>Mon, 02 Jan 2006 15:%02d:05 +0000</pubDate></item>`, i, i, i, i)
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

func TestParseFeedNormalizesAndCaps(t *testing.T) {
	entries, err := ParseFeed(rssDoc(15), 10)
	require.NoError(t, err)
	require.Len(t, entries, 10)

	first := entries[0]
	assert.Equal(t, "Headline 0", first.Title)
	assert.Equal(t, "https://example.com/0", first.Link)
	assert.Equal(t, "Body & more 0", first.Description)
	assert.Equal(t, "Mon, 02 Jan 2006 15:00:05 +0000", first.PubDate)
}

func TestParseFeedSkipsEmptyItems(t *testing.T) {
	doc := `<rss version="2.0"><channel>
<item><link>https://example.com/a</link></item>
<item><title>  </title><description><![CDATA[<img src="x.png"/>]]></description></item>
<item><description>Only a description</description></item>
</channel></rss>`
	entries, err := ParseFeed(doc, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Only a description", entries[0].Description)
}

func TestParseFeedMalformed(t *testing.T) {
	_, err := ParseFeed("<rss><channel><item><title>broken", 10)
	require.Error(t, err)

	_, err = ParseFeed("", 10)
	require.Error(t, err)
}

func TestJSONProxyEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://feeds.example/rss", r.URL.Query().Get("rss_url"))
		assert.Equal(t, "10", r.URL.Query().Get("count"))
		assert.Equal(t, "k", r.URL.Query().Get("api_key"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "ok",
			"items": []map[string]string{
				{"title": "<b>Sensex</b> up", "link": "https://x/1", "pubDate": "2024-05-01 10:00:00", "description": "desc"},
				{"title": "", "link": "https://x/2", "pubDate": "", "description": ""},
			},
		})
	}))
	defer srv.Close()

	proxy := NewJSONProxy(httpclient.NewRestyClient(time.Second), srv.URL, "k", time.Second)
	entries, err := proxy.Entries(context.Background(), "https://feeds.example/rss", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Sensex up", entries[0].Title)
	assert.Equal(t, "2024-05-01 10:00:00", entries[0].PubDate)
}

func TestJSONProxyStatusNotOK(t *testing.T) {
	client := &fakeHTTPClient{resp: fakeResponse{
		statusCode: http.StatusOK,
		body:       []byte(`{"status":"error","message":"rate limited","items":[]}`),
	}}
	proxy := NewJSONProxy(client, "https://proxy.example/api.json", "", time.Second)

	_, err := proxy.Entries(context.Background(), "https://feeds.example/rss", 10)
	require.ErrorIs(t, err, ErrUpstreamStatus)
	require.Len(t, client.calls, 1)
	assert.Contains(t, client.calls[0], "rss_url=https%3A%2F%2Ffeeds.example%2Frss")
}

func TestJSONProxyTransportAndStatusErrors(t *testing.T) {
	proxy := NewJSONProxy(&fakeHTTPClient{err: errors.New("dial tcp: timeout")}, "https://proxy.example", "", time.Second)
	_, err := proxy.Entries(context.Background(), "https://f", 10)
	require.Error(t, err)

	proxy = NewJSONProxy(&fakeHTTPClient{resp: fakeResponse{statusCode: 500, body: []byte("boom")}}, "https://proxy.example", "", time.Second)
	_, err = proxy.Entries(context.Background(), "https://f", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")

	proxy = NewJSONProxy(&fakeHTTPClient{resp: fakeResponse{statusCode: 200, body: []byte("not json")}}, "https://proxy.example", "", time.Second)
	_, err = proxy.Entries(context.Background(), "https://f", 10)
	require.Error(t, err)
}

func TestJSONProxyTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`{"status":"ok","items":[]}`))
	}))
	defer srv.Close()

	proxy := NewJSONProxy(httpclient.NewRestyClient(5*time.Second), srv.URL, "", 50*time.Millisecond)
	_, err := proxy.Entries(context.Background(), "https://f", 10)
	require.Error(t, err)
}

func TestCORSProxyFeedEntries(t *testing.T) {
	body, err := json.Marshal(map[string]string{"contents": rssDoc(3)})
	require.NoError(t, err)
	client := &fakeHTTPClient{resp: fakeResponse{statusCode: 200, body: body}}

	proxy := NewCORSProxy(client, "https://proxy.example/get", time.Second)
	entries, err := proxy.FeedEntries(context.Background(), "https://feeds.example/rss", 10)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, "https://proxy.example/get?url=https%3A%2F%2Ffeeds.example%2Frss", client.calls[0])
}

func TestCORSProxyMissingContents(t *testing.T) {
	for _, body := range []string{`{}`, `{"contents":null}`, `{"contents":"  "}`} {
		client := &fakeHTTPClient{resp: fakeResponse{statusCode: 200, body: []byte(body)}}
		proxy := NewCORSProxy(client, "https://proxy.example/get", time.Second)
		_, err := proxy.FeedEntries(context.Background(), "https://feeds.example/rss", 10)
		assert.ErrorIs(t, err, ErrNoContents, body)
	}
}

func TestDirectFeedEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "en-IN", r.Header.Get("Accept-Language"))
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssDoc(2)))
	}))
	defer srv.Close()

	d := NewDirect(httpclient.NewRestyClient(time.Second), time.Second)
	entries, err := d.FeedEntries(context.Background(), srv.URL, map[string]string{"Accept-Language": "en-IN"}, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
