package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

// Config is the service configuration, parsed from environment variables.
// FirecrawlAPIKey is deliberately optional: the valuation path refuses to run
// without it, while the scrape path falls back to the headless browser.
type Config struct {
	Port   string `env:"PORT" envDefault:"8080"`
	DBPath string `env:"DB_PATH" envDefault:"data/autovault.db"`

	// Firecrawl search API key
	FirecrawlAPIKey string `env:"FIRECRAWL_API_KEY"`

	// How long a logged price observation stays fresh enough to skip re-scraping
	PriceCacheWindow time.Duration `env:"PRICE_CACHE_WINDOW" envDefault:"168h"`

	// Result-count limits passed to the search provider
	ValuationSearchLimit int `env:"VALUATION_SEARCH_LIMIT" envDefault:"15"`
	ScrapeSearchLimit    int `env:"SCRAPE_SEARCH_LIMIT" envDefault:"10"`

	// Per-IP rate limit (requests per second and burst)
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"1"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`
}

// Load parses the service configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
