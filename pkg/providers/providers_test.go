package providers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/bazaar-pulse/internal/domain"
)

func TestLoadRegistryYAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "providers.yaml")
	content := `
providers:
  - id: Moneycontrol
    name: Moneycontrol
    feed_url: https://www.moneycontrol.com/rss/latestnews.xml
    category: Markets
    config:
      direct_fetch: true
      accept_language: en-IN
  - id: livemint
    name: LiveMint
    feed_url: https://www.livemint.com/rss/markets
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	reg, err := LoadRegistry(file)
	require.NoError(t, err)
	require.Len(t, reg.All(), 2)
	assert.Equal(t, []string{"Moneycontrol", "LiveMint"}, reg.Names())

	p, ok := reg.ByID("moneycontrol")
	require.True(t, ok, "ids are lower-cased")
	assert.Equal(t, "Markets", p.Category)
	assert.True(t, ConfigBool(p, ConfigDirectFetchKey))
	assert.Equal(t, "en-IN", Headers(p)["Accept-Language"])

	lm, ok := reg.ByID("livemint")
	require.True(t, ok)
	assert.Equal(t, domain.DefaultCategory, lm.Category)
	assert.False(t, ConfigBool(lm, ConfigDirectFetchKey))
}

func TestLoadRegistryJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "providers.json")
	content := `{"providers":[{"id":"bs","name":"Business Standard","feed_url":"https://bs.example/rss"}]}`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	reg, err := LoadRegistry(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"Business Standard"}, reg.Names())
}

func TestLoadRegistryDuplicateID(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "providers.yaml")
	content := `
providers:
  - id: duplicate
    name: Provider One
    feed_url: https://p1.example
  - id: duplicate
    name: Provider Two
    feed_url: https://p2.example
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	_, err := LoadRegistry(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestLoadRegistryValidation(t *testing.T) {
	_, err := NewRegistry([]Provider{{ID: "x", Name: "X"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feed_url")

	_, err = NewRegistry(nil)
	require.Error(t, err)

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadRegistryEmptyPathUsesDefaults(t *testing.T) {
	reg, err := LoadRegistry("")
	require.NoError(t, err)
	assert.Equal(t, domain.KnownSources(), reg.Names())
}

func TestHeadersDefaults(t *testing.T) {
	h := Headers(Provider{ID: "p"})
	assert.NotEmpty(t, h["Accept"])
	_, hasUA := h["User-Agent"]
	assert.False(t, hasUA)
}
