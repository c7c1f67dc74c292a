package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName       string `mapstructure:"app_name"`
	Env           string `mapstructure:"app_env"`
	LogLevel      string `mapstructure:"log_level"`
	ProvidersFile string `mapstructure:"providers_file"`

	PollIntervalMs       int64         `mapstructure:"poll_interval_ms"`
	TrendsPollIntervalMs int64         `mapstructure:"trends_poll_interval_ms"`
	PollInterval         time.Duration `mapstructure:"-"`
	TrendsPollInterval   time.Duration `mapstructure:"-"`

	JSONProxyURL       string        `mapstructure:"json_proxy_url"`
	JSONProxyAPIKey    string        `mapstructure:"json_proxy_api_key"`
	JSONProxyTimeoutMs int64         `mapstructure:"json_proxy_timeout_ms"`
	JSONProxyTimeout   time.Duration `mapstructure:"-"`
	CORSProxyURL       string        `mapstructure:"cors_proxy_url"`
	CORSProxyTimeoutMs int64         `mapstructure:"cors_proxy_timeout_ms"`
	CORSProxyTimeout   time.Duration `mapstructure:"-"`

	NewsAPIURL      string `mapstructure:"news_api_url"`
	NewsAPIKey      string `mapstructure:"news_api_key"`
	NewsAPICountry  string `mapstructure:"news_api_country"`
	NewsAPICategory string `mapstructure:"news_api_category"`
	NewsAPIPageSize int    `mapstructure:"news_api_page_size"`

	TrendsFeedURL     string `mapstructure:"trends_feed_url"`
	MaxItemsPerSource int    `mapstructure:"max_items_per_source"`
	MaxItems          int    `mapstructure:"max_items"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "bazaar-pulse")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("providers_file", "./configs/providers.yaml")
	v.SetDefault("poll_interval_ms", 300000)
	v.SetDefault("trends_poll_interval_ms", 300000)
	v.SetDefault("json_proxy_url", "https://api.rss2json.com/v1/api.json")
	v.SetDefault("json_proxy_api_key", "")
	v.SetDefault("json_proxy_timeout_ms", 10000)
	v.SetDefault("cors_proxy_url", "https://api.allorigins.win/get")
	v.SetDefault("cors_proxy_timeout_ms", 15000)
	v.SetDefault("news_api_url", "https://newsapi.org/v2/top-headlines")
	v.SetDefault("news_api_key", "")
	v.SetDefault("news_api_country", "in")
	v.SetDefault("news_api_category", "business")
	v.SetDefault("news_api_page_size", 20)
	v.SetDefault("trends_feed_url", "https://trends.google.com/trending/rss?geo=IN")
	v.SetDefault("max_items_per_source", 10)
	v.SetDefault("max_items", 20)
}

// finalize validates raw values and derives durations.
func (c *Config) finalize() error {
	positive := []struct {
		key string
		val int64
	}{
		{"poll_interval_ms", c.PollIntervalMs},
		{"trends_poll_interval_ms", c.TrendsPollIntervalMs},
		{"json_proxy_timeout_ms", c.JSONProxyTimeoutMs},
		{"cors_proxy_timeout_ms", c.CORSProxyTimeoutMs},
		{"news_api_page_size", int64(c.NewsAPIPageSize)},
		{"max_items_per_source", int64(c.MaxItemsPerSource)},
		{"max_items", int64(c.MaxItems)},
	}
	for _, p := range positive {
		if p.val <= 0 {
			return fmt.Errorf("invalid %s (must be positive)", p.key)
		}
	}
	if c.JSONProxyURL == "" || c.CORSProxyURL == "" {
		return fmt.Errorf("json_proxy_url and cors_proxy_url are required")
	}

	c.PollInterval = time.Duration(c.PollIntervalMs) * time.Millisecond
	c.TrendsPollInterval = time.Duration(c.TrendsPollIntervalMs) * time.Millisecond
	c.JSONProxyTimeout = time.Duration(c.JSONProxyTimeoutMs) * time.Millisecond
	c.CORSProxyTimeout = time.Duration(c.CORSProxyTimeoutMs) * time.Millisecond
	return nil
}
