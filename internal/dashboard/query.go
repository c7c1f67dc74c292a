// Package dashboard implements the browsing side of the dashboard: search,
// facet filters, pagination and terminal rendering of snapshots.
package dashboard

import (
	"strings"

	"github.com/samvad-hq/bazaar-pulse/internal/domain"
)

// DefaultPageSize is the number of cards shown per news page.
const DefaultPageSize = 9

// AllFacet matches every source or category.
const AllFacet = "All"

// Query selects a page of news.
type Query struct {
	Search   string
	Source   string
	Category string
	Page     int
	PageSize int
}

// Page is one page of filtered news.
type Page struct {
	Items      []domain.NewsItem
	Page       int
	TotalPages int
	Total      int
}

// Apply filters items by q and returns the requested page.
func Apply(items []domain.NewsItem, q Query) Page {
	return Paginate(Filter(items, q), q.Page, q.PageSize)
}

// Filter keeps items matching the search text and facet filters. Search is a
// case-insensitive substring match on title and description.
func Filter(items []domain.NewsItem, q Query) []domain.NewsItem {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	source := normalizeFacet(q.Source)
	category := normalizeFacet(q.Category)

	out := make([]domain.NewsItem, 0, len(items))
	for _, it := range items {
		if source != "" && !strings.EqualFold(it.Source, source) {
			continue
		}
		if category != "" && !strings.EqualFold(it.Category, category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(it.Title), search) &&
			!strings.Contains(strings.ToLower(it.Description), search) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Paginate slices items into 1-based pages. Out-of-range pages clamp to the
// nearest valid page; an empty list still has one (empty) page.
func Paginate(items []domain.NewsItem, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	pages := (total + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	var slice []domain.NewsItem
	if start < end {
		slice = items[start:end]
	}
	return Page{Items: slice, Page: page, TotalPages: pages, Total: total}
}

// Sources lists distinct sources in first-seen order.
func Sources(items []domain.NewsItem) []string {
	return distinct(items, func(it domain.NewsItem) string { return it.Source })
}

// Categories lists distinct categories in first-seen order.
func Categories(items []domain.NewsItem) []string {
	return distinct(items, func(it domain.NewsItem) string { return it.Category })
}

func distinct(items []domain.NewsItem, key func(domain.NewsItem) string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0)
	for _, it := range items {
		k := strings.TrimSpace(key(it))
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func normalizeFacet(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, AllFacet) {
		return ""
	}
	return v
}
