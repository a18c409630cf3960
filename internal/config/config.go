// Package config loads and validates sitemap-generator configuration via Viper.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/amaan-bhati/sitemap-generator/internal/crawler"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Crawl    CrawlConfig    `mapstructure:"crawl"`
	Output   OutputConfig   `mapstructure:"output"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Priority PriorityConfig `mapstructure:"priority"`
}

// CrawlConfig governs the crawl engine and fetch pipeline.
type CrawlConfig struct {
	// StartURL is the seed of the crawl. It must share scheme and host
	// with Domain.
	StartURL string `mapstructure:"start_url"`
	// Domain is the crawl boundary; only URLs on its exact host are followed.
	Domain          string   `mapstructure:"domain"`
	Workers         int      `mapstructure:"workers"`
	MaxInFlight     int      `mapstructure:"max_in_flight"`
	TimeoutSeconds  int      `mapstructure:"timeout_seconds"`
	UserAgent       string   `mapstructure:"user_agent"`
	ExcludePatterns []string `mapstructure:"exclude_patterns"`
}

// OutputConfig sets where sitemap artifacts are written.
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// PriorityConfig overrides the site-specific parts of the classifier
// ruleset. Empty fields fall back to the built-in defaults.
type PriorityConfig struct {
	HubPaths       []string `mapstructure:"hub_paths"`
	ProductPaths   []string `mapstructure:"product_paths"`
	GuideSections  []string `mapstructure:"guide_sections"`
	DepthThreshold int      `mapstructure:"depth_threshold"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SITEMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("crawl.workers", 10)
	v.SetDefault("crawl.max_in_flight", 5)
	v.SetDefault("crawl.timeout_seconds", 10)
	v.SetDefault("crawl.user_agent", "sitemap-generator/1.0")
	v.SetDefault("crawl.exclude_patterns", crawler.DefaultExcludePatterns())
	v.SetDefault("output.dir", "sitemaps")
	v.SetDefault("logging.development", true)
	v.SetDefault("priority.depth_threshold", 0)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Crawl.StartURL == "" {
		return fmt.Errorf("crawl.start_url is required")
	}
	if c.Crawl.Domain == "" {
		return fmt.Errorf("crawl.domain is required")
	}
	start, err := url.Parse(c.Crawl.StartURL)
	if err != nil {
		return fmt.Errorf("parse crawl.start_url: %w", err)
	}
	domain, err := url.Parse(c.Crawl.Domain)
	if err != nil {
		return fmt.Errorf("parse crawl.domain: %w", err)
	}
	if start.Scheme != domain.Scheme || start.Host != domain.Host {
		return fmt.Errorf("crawl.start_url must share scheme and host with crawl.domain")
	}
	if c.Crawl.Workers <= 0 {
		return fmt.Errorf("crawl.workers must be > 0")
	}
	if c.Crawl.MaxInFlight <= 0 {
		return fmt.Errorf("crawl.max_in_flight must be > 0")
	}
	if c.Crawl.TimeoutSeconds <= 0 {
		return fmt.Errorf("crawl.timeout_seconds must be > 0")
	}
	return nil
}

// Timeout converts the configured fetch timeout into a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.Crawl.TimeoutSeconds) * time.Second
}

// PriorityRules merges the configured overrides onto the default
// classifier ruleset.
func (c Config) PriorityRules() crawler.Rules {
	rules := crawler.DefaultRules()
	if len(c.Priority.HubPaths) > 0 {
		rules.HubPaths = c.Priority.HubPaths
	}
	if len(c.Priority.ProductPaths) > 0 {
		rules.ProductPaths = c.Priority.ProductPaths
	}
	if len(c.Priority.GuideSections) > 0 {
		rules.GuideSections = c.Priority.GuideSections
	}
	if c.Priority.DepthThreshold > 0 {
		rules.DepthThreshold = c.Priority.DepthThreshold
	}
	return rules
}
