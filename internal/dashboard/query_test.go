package dashboard

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/bazaar-pulse/internal/domain"
)

func sampleItems(n int) []domain.NewsItem {
	sources := []string{domain.SourceMoneycontrol, domain.SourceLiveMint}
	out := make([]domain.NewsItem, n)
	for i := range out {
		out[i] = domain.NewsItem{
			ID:          fmt.Sprintf("id-%d", i),
			Title:       fmt.Sprintf("Story %d", i),
			Description: "markets wrap",
			Source:      sources[i%len(sources)],
			Category:    domain.DefaultCategory,
		}
	}
	return out
}

func TestFilterSearchIsCaseInsensitiveOverTitleAndDescription(t *testing.T) {
	items := []domain.NewsItem{
		{Title: "Sensex hits record", Description: "index rally"},
		{Title: "Rupee steady", Description: "SENSEX flat in late trade"},
		{Title: "Gold prices", Description: "bullion"},
	}

	got := Filter(items, Query{Search: "sensex"})
	require.Len(t, got, 2)
	assert.Equal(t, "Sensex hits record", got[0].Title)
	assert.Equal(t, "Rupee steady", got[1].Title)
}

func TestFilterFacets(t *testing.T) {
	items := sampleItems(6)

	got := Filter(items, Query{Source: "livemint"})
	assert.Len(t, got, 3)
	for _, it := range got {
		assert.Equal(t, domain.SourceLiveMint, it.Source)
	}

	assert.Len(t, Filter(items, Query{Source: AllFacet, Category: "all"}), 6)
	assert.Empty(t, Filter(items, Query{Category: "Politics"}))
}

func TestPaginate(t *testing.T) {
	items := sampleItems(20)

	p := Paginate(items, 1, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 20, p.Total)
	assert.Len(t, p.Items, DefaultPageSize)

	p = Paginate(items, 3, 9)
	assert.Len(t, p.Items, 2)
	assert.Equal(t, "Story 18", p.Items[0].Title)

	p = Paginate(items, 99, 9)
	assert.Equal(t, 3, p.Page)

	p = Paginate(items, -2, 9)
	assert.Equal(t, 1, p.Page)
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate(nil, 4, 9)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1, p.TotalPages)
	assert.Zero(t, p.Total)
	assert.Empty(t, p.Items)
}

func TestApplyCombinesFilterAndPage(t *testing.T) {
	items := sampleItems(20)
	p := Apply(items, Query{Source: domain.SourceMoneycontrol, Page: 2, PageSize: 9})
	assert.Equal(t, 10, p.Total)
	assert.Equal(t, 2, p.TotalPages)
	assert.Len(t, p.Items, 1)
}

func TestFacetsKeepFirstSeenOrder(t *testing.T) {
	items := []domain.NewsItem{
		{Source: "LiveMint", Category: "Business"},
		{Source: "Moneycontrol", Category: "Markets"},
		{Source: "LiveMint", Category: "Business"},
		{Source: " ", Category: ""},
	}
	assert.Equal(t, []string{"LiveMint", "Moneycontrol"}, Sources(items))
	assert.Equal(t, []string{"Business", "Markets"}, Categories(items))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		in   string
		want string
	}{
		{"2024-03-01T11:59:30Z", "just now"},
		{"2024-03-01T11:55:00Z", "5m ago"},
		{"Fri, 01 Mar 2024 09:00:00 +0000", "3h ago"},
		{"2024-02-28T12:00:00Z", "2d ago"},
		{"2024-01-01T00:00:00Z", "01 Jan 2024"},
		{"not a date", "not a date"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, RelativeTime(tc.in, now))
		})
	}
}
