package providers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samvad-hq/bazaar-pulse/internal/domain"
	"gopkg.in/yaml.v3"
)

// Package providers describes the news feeds the dashboard aggregates and how
// each one is fetched.

// Provider is a single configured news feed.
type Provider struct {
	ID       string         `json:"id" yaml:"id"`
	Name     string         `json:"name" yaml:"name"`
	FeedURL  string         `json:"feed_url" yaml:"feed_url"`
	Category string         `json:"category" yaml:"category"`
	Config   map[string]any `json:"config" yaml:"config"`
}

type registryFile struct {
	Providers []Provider `json:"providers" yaml:"providers"`
}

// Registry is an immutable, ordered set of providers.
type Registry struct {
	providers []Provider
	idx       map[string]Provider
}

// DefaultProviders returns the four built-in market feeds in enumeration order.
func DefaultProviders() []Provider {
	return []Provider{
		{ID: "moneycontrol", Name: domain.SourceMoneycontrol, FeedURL: "https://www.moneycontrol.com/rss/latestnews.xml"},
		{ID: "economic-times", Name: domain.SourceEconomicTimes, FeedURL: "https://economictimes.indiatimes.com/markets/rssfeeds/1977021501.cms"},
		{ID: "livemint", Name: domain.SourceLiveMint, FeedURL: "https://www.livemint.com/rss/markets"},
		{ID: "business-standard", Name: domain.SourceBusinessStandard, FeedURL: "https://www.business-standard.com/rss/markets-106.rss"},
	}
}

// DefaultRegistry wraps DefaultProviders.
func DefaultRegistry() *Registry {
	reg, err := NewRegistry(DefaultProviders())
	if err != nil {
		panic(fmt.Sprintf("default providers invalid: %v", err))
	}
	return reg
}

// NewRegistry validates providers and indexes them by id.
func NewRegistry(list []Provider) (*Registry, error) {
	if len(list) == 0 {
		return nil, errors.New("no providers configured")
	}

	reg := &Registry{
		providers: make([]Provider, 0, len(list)),
		idx:       make(map[string]Provider, len(list)),
	}
	for i := range list {
		p := sanitizeProvider(list[i])
		if err := validateProvider(p); err != nil {
			return nil, fmt.Errorf("provider[%d]: %w", i, err)
		}
		if _, exists := reg.idx[p.ID]; exists {
			return nil, fmt.Errorf("duplicate provider id %q", p.ID)
		}
		reg.providers = append(reg.providers, p)
		reg.idx[p.ID] = p
	}
	return reg, nil
}

// LoadRegistry loads providers from a YAML or JSON file. An empty path yields
// the built-in defaults.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultRegistry(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open providers file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read providers file: %w", err)
	}

	parsed, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(parsed.Providers) == 0 {
		return nil, errors.New("providers file contains no providers entries")
	}
	return NewRegistry(parsed.Providers)
}

// All returns a copy of the providers in configured order.
func (r *Registry) All() []Provider {
	if r == nil {
		return nil
	}
	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// Names returns provider display names in configured order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		out = append(out, p.Name)
	}
	return out
}

// ByID returns the provider with id, if configured.
func (r *Registry) ByID(id string) (Provider, bool) {
	if r == nil {
		return Provider{}, false
	}
	p, ok := r.idx[strings.TrimSpace(id)]
	return p, ok
}

func parseRegistry(data []byte, ext string) (registryFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		if reg, err := unmarshalRegistry(d.name, data, d.fn); err == nil {
			return reg, nil
		}
	}

	return registryFile{}, errors.New("providers file format not recognized (expected YAML or JSON)")
}

type unmarshalFn func([]byte, any) error

func unmarshalRegistry(name string, data []byte, fn unmarshalFn) (registryFile, error) {
	var reg registryFile
	if err := fn(data, &reg); err != nil {
		return registryFile{}, fmt.Errorf("decode %s providers: %w", name, err)
	}
	return reg, nil
}

func sanitizeProvider(p Provider) Provider {
	p.ID = strings.ToLower(strings.TrimSpace(p.ID))
	p.Name = strings.TrimSpace(p.Name)
	p.FeedURL = strings.TrimSpace(p.FeedURL)
	p.Category = strings.TrimSpace(p.Category)

	if p.Category == "" {
		p.Category = domain.DefaultCategory
	}
	if p.Config == nil {
		p.Config = map[string]any{}
	}
	return p
}

func validateProvider(p Provider) error {
	if p.ID == "" {
		return errors.New("id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("name is required for provider %q", p.ID)
	}
	if p.FeedURL == "" {
		return fmt.Errorf("feed_url is required for provider %q", p.ID)
	}
	return nil
}
