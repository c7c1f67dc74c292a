package textnorm

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanStripsMarkupAndEntities(t *testing.T) {
	tbl := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Sensex closes higher", "Sensex closes higher"},
		{"tags", "<p>Sensex <b>rallies</b> 500 pts</p>", "Sensex rallies 500 pts"},
		{"entities", "M&amp;M shares &quot;surge&quot; &#39;today&#39;", `M&M shares "surge" 'today'`},
		{"nbsp and whitespace", "Nifty&nbsp;50\n\t  ends   flat ", "Nifty 50 ends flat"},
		{"script removed", "Gold<script>alert(1)</script> steady", "Gold steady"},
		{"image only", `<img src="https://x/y.png"/>`, ""},
		{"empty", "   ", ""},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	inputs := []string{
		"<div>RBI keeps repo rate at 6.5% &amp; stance unchanged</div>",
		"Rupee &lt; 84 per dollar",
		"Crude &gt; $90; OMC stocks fall",
		"plain text headline",
		"&lt;b&gt;Sensex&lt;/b&gt; rallies",
		"AT&amp;amp;T",
		"&lt;p&gt;Nifty &amp;lt;i&amp;gt;ends&amp;lt;/i&amp;gt; flat&lt;/p&gt;",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "input %q", in)
	}
}

func TestCleanStripsDoubleEscapedMarkup(t *testing.T) {
	assert.Equal(t, "Sensex rallies", Clean("&lt;b&gt;Sensex&lt;/b&gt; rallies"))
	assert.Equal(t, "AT&T", Clean("AT&amp;amp;T"))
	assert.Equal(t, "Sensex rallies", Description("&lt;b&gt;Sensex&lt;/b&gt; rallies"))

	desc := Description("AT&amp;amp;T")
	assert.Equal(t, desc, Description(desc))
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 250)
	got := Truncate(long, MaxDescriptionRunes)
	assert.Equal(t, strings.Repeat("a", 200)+Ellipsis, got)

	assert.Equal(t, "short", Truncate("short", MaxDescriptionRunes))
	exact := strings.Repeat("b", 200)
	assert.Equal(t, exact, Truncate(exact, MaxDescriptionRunes))
}

func TestTruncateCountsRunes(t *testing.T) {
	long := strings.Repeat("₹", 205)
	got := Truncate(long, MaxDescriptionRunes)
	assert.Equal(t, 203, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, Ellipsis))
}

func TestDescriptionIsIdempotent(t *testing.T) {
	raw := "<p>" + strings.Repeat("Markets extend gains ", 20) + "</p>"
	once := Description(raw)
	require.Equal(t, MaxDescriptionRunes+len(Ellipsis), len([]rune(once)))
	assert.Equal(t, once, Description(once))
}

func TestParseDate(t *testing.T) {
	tbl := []struct {
		in   string
		want time.Time
	}{
		{"Mon, 02 Jan 2006 15:04:05 +0000", time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)},
		{"2024-03-15T10:30:00Z", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-03-15 10:30:00", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tbl {
		got, ok := ParseDate(tt.in)
		require.True(t, ok, tt.in)
		assert.True(t, got.Equal(tt.want), "%s: got %v", tt.in, got)
	}

	_, ok := ParseDate("not a date")
	assert.False(t, ok)
	_, ok = ParseDate("")
	assert.False(t, ok)
}
