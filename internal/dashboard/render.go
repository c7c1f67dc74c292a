package dashboard

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/samvad-hq/bazaar-pulse/internal/domain"
	"github.com/samvad-hq/bazaar-pulse/internal/poller"
)

// Renderer prints dashboard snapshots to a terminal.
type Renderer struct {
	out io.Writer
	now func() time.Time

	heading *color.Color
	title   *color.Color
	meta    *color.Color
	warn    *color.Color
	trend   *color.Color
}

// NewRenderer builds a renderer writing to out.
func NewRenderer(out io.Writer, noColor bool) *Renderer {
	r := &Renderer{
		out:     out,
		now:     time.Now,
		heading: color.New(color.FgCyan, color.Bold),
		title:   color.New(color.FgHiWhite, color.Bold),
		meta:    color.New(color.FgHiBlack),
		warn:    color.New(color.FgYellow),
		trend:   color.New(color.FgGreen),
	}
	if noColor {
		for _, c := range []*color.Color{r.heading, r.title, r.meta, r.warn, r.trend} {
			c.DisableColor()
		}
	}
	return r
}

// News prints one page of the news snapshot selected by q.
func (r *Renderer) News(st poller.State[domain.NewsItem], q Query) {
	page := Apply(st.Items, q)

	r.heading.Fprintf(r.out, "Market News  (page %d/%d, %d stories)\n", page.Page, page.TotalPages, page.Total)
	r.status(st.Loading, st.Err, st.LastUpdate)
	if facets := Sources(st.Items); len(facets) > 0 {
		r.meta.Fprintf(r.out, "sources: %s\n", strings.Join(facets, ", "))
	}
	if facets := Categories(st.Items); len(facets) > 0 {
		r.meta.Fprintf(r.out, "categories: %s\n", strings.Join(facets, ", "))
	}

	if len(page.Items) == 0 {
		r.meta.Fprintln(r.out, "no stories match the current filters")
		fmt.Fprintln(r.out)
		return
	}
	now := r.now()
	for i, it := range page.Items {
		r.title.Fprintf(r.out, "%2d. %s\n", i+1, it.Title)
		r.meta.Fprintf(r.out, "    %s | %s | %s\n", it.Source, it.Category, RelativeTime(it.PubDate, now))
		if it.Description != "" {
			fmt.Fprintf(r.out, "    %s\n", it.Description)
		}
		if it.Link != "" {
			r.meta.Fprintf(r.out, "    %s\n", it.Link)
		}
	}
	fmt.Fprintln(r.out)
}

// Trends prints the trends snapshot.
func (r *Renderer) Trends(st poller.State[domain.TrendItem]) {
	r.heading.Fprintf(r.out, "Trending in India  (%d)\n", len(st.Items))
	r.status(st.Loading, st.Err, st.LastUpdate)

	now := r.now()
	for i, it := range st.Items {
		r.trend.Fprintf(r.out, "%2d. %s", i+1, it.Title)
		r.meta.Fprintf(r.out, "  %s\n", RelativeTime(it.PubDate, now))
	}
	fmt.Fprintln(r.out)
}

func (r *Renderer) status(loading bool, err error, last time.Time) {
	if loading {
		r.meta.Fprintln(r.out, "refreshing...")
	}
	if err != nil {
		r.warn.Fprintf(r.out, "! %s\n", err.Error())
	}
	if !last.IsZero() {
		r.meta.Fprintf(r.out, "updated %s\n", last.Local().Format("15:04:05"))
	}
}
