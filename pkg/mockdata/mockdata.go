// Package mockdata serves hand-authored placeholder headlines used when every
// live strategy fails.
package mockdata

import (
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/bazaar-pulse/internal/domain"
)

// PlaceholderLink stands in for article URLs in mock items.
const PlaceholderLink = "#"

type headline struct {
	title       string
	description string
	category    string
}

var newsTable = map[string][2]headline{
	domain.SourceMoneycontrol: {
		{"Sensex, Nifty end higher led by banking and IT stocks", "Benchmark indices closed in the green as heavyweight banks and IT majors extended gains amid steady foreign inflows.", "Markets"},
		{"Rupee settles marginally stronger against US dollar", "The rupee ended the session slightly firmer, supported by softer crude prices and dollar weakness overseas.", "Economy"},
	},
	domain.SourceEconomicTimes: {
		{"FPIs turn net buyers in Indian equities this week", "Foreign portfolio investors pumped fresh money into domestic equities, reversing the selling trend of recent weeks.", "Markets"},
		{"RBI keeps policy repo rate unchanged, retains stance", "The Monetary Policy Committee held the repo rate steady and reiterated its focus on aligning inflation with target.", "Economy"},
	},
	domain.SourceLiveMint: {
		{"Mid-cap index hits record high on strong earnings", "Mid-cap stocks outperformed the benchmarks as robust quarterly numbers lifted investor sentiment.", "Markets"},
		{"GST collections rise year-on-year in latest month", "Gross goods and services tax collections grew on higher domestic transactions and improved compliance.", "Economy"},
	},
	domain.SourceBusinessStandard: {
		{"Auto stocks gain as monthly sales beat estimates", "Shares of leading automakers advanced after dispatch numbers came in ahead of street expectations.", "Companies"},
		{"Gold prices steady ahead of US inflation data", "Bullion traded in a narrow range as investors awaited fresh cues on the interest rate trajectory.", "Commodities"},
	},
}

// News returns the mock items for source, stamped with now. Unknown sources
// get the Moneycontrol set under their own name.
func News(source string, now time.Time) []domain.NewsItem {
	set, ok := newsTable[source]
	if !ok {
		set = newsTable[domain.SourceMoneycontrol]
	}
	name := strings.TrimSpace(source)
	if name == "" {
		name = domain.SourceMoneycontrol
	}

	stamp := now.UTC().Format(time.RFC3339)
	out := make([]domain.NewsItem, 0, len(set))
	for i, h := range set {
		out = append(out, domain.NewsItem{
			ID:          fmt.Sprintf("mock-%s-%d-%d", slug(name), i, now.UnixMilli()),
			Title:       h.title,
			Description: h.description,
			Link:        PlaceholderLink,
			PubDate:     stamp,
			Source:      name,
			Category:    h.category,
		})
	}
	return out
}

// AllNews concatenates the mock sets of sources in the given order.
func AllNews(sources []string, now time.Time) []domain.NewsItem {
	out := make([]domain.NewsItem, 0, 2*len(sources))
	for _, s := range sources {
		out = append(out, News(s, now)...)
	}
	return out
}

var trendTable = []headline{
	{title: "Sensex today", description: "Live updates on the BSE Sensex and market breadth."},
	{title: "Nifty 50", description: "NSE Nifty 50 index movement and top gainers."},
	{title: "Gold rate", description: "Latest gold and silver prices across Indian cities."},
	{title: "IPO GMP", description: "Grey market premium for upcoming mainboard and SME IPOs."},
	{title: "Dollar to INR", description: "Rupee exchange rate against the US dollar."},
}

// Trends returns mock trending searches stamped with now.
func Trends(now time.Time) []domain.TrendItem {
	stamp := now.UTC().Format(time.RFC3339)
	out := make([]domain.TrendItem, 0, len(trendTable))
	for _, h := range trendTable {
		out = append(out, domain.TrendItem{
			Title:       h.title,
			Link:        PlaceholderLink,
			PubDate:     stamp,
			Description: h.description,
		})
	}
	return out
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
