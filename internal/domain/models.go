package domain

// Domain contains the core feed models shared by fetchers, aggregator and pollers.

// DefaultCategory is assigned to news items whose upstream carries no category.
const DefaultCategory = "Business"

// NewsItem is a single normalized headline. Items are rebuilt on every refresh,
// so ID is only unique within one fetch cycle.
type NewsItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	PubDate     string `json:"pubDate"`
	Source      string `json:"source"`
	Category    string `json:"category"`
}

// TrendItem is a trending search entry from the trends feed.
type TrendItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	PubDate     string `json:"pubDate"`
	Description string `json:"description"`
}

// Display names of the built-in market feeds, in aggregation order.
const (
	SourceMoneycontrol     = "Moneycontrol"
	SourceEconomicTimes    = "Economic Times"
	SourceLiveMint         = "LiveMint"
	SourceBusinessStandard = "Business Standard"
)

// KnownSources lists the built-in feeds in their enumeration order.
func KnownSources() []string {
	return []string{SourceMoneycontrol, SourceEconomicTimes, SourceLiveMint, SourceBusinessStandard}
}
