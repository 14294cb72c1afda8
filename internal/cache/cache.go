package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"autovault/internal/models"
)

// ScrapeResultCache is the on-disk record for one scrape query
type ScrapeResultCache struct {
	Query     string                       `json:"query"`
	Data      []*models.AggregatedCarEntry `json:"data"`
	Timestamp time.Time                    `json:"timestamp"`
}

const (
	ScrapeCacheDir    = "data/scrape_cache"
	ScrapeCacheExpiry = 24 * time.Hour
)

// cacheFileName maps a free-text query to a filesystem-safe cache file
func cacheFileName(query string) string {
	key := strings.ToLower(strings.TrimSpace(query))
	key = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, key)
	return filepath.Join(ScrapeCacheDir, key+".json")
}

// LoadScrapeResults loads cached scrape results for a query if they exist and
// are not expired
func LoadScrapeResults(query string) ([]*models.AggregatedCarEntry, bool) {
	file, err := os.Open(cacheFileName(query))
	if err != nil {
		return nil, false
	}
	defer file.Close()

	var cached ScrapeResultCache
	if err := json.NewDecoder(file).Decode(&cached); err != nil {
		fmt.Printf("❌ Error reading scrape cache: %v\n", err)
		return nil, false
	}

	if time.Since(cached.Timestamp) > ScrapeCacheExpiry {
		fmt.Printf("⏰ Scrape cache for %q expired (%v old)\n", query, time.Since(cached.Timestamp).Round(time.Minute))
		return nil, false
	}

	fmt.Printf("✅ Loaded %d cars from scrape cache for %q (updated %v ago)\n",
		len(cached.Data), query, time.Since(cached.Timestamp).Round(time.Minute))
	return cached.Data, true
}

// SaveScrapeResults caches scrape results for a query
func SaveScrapeResults(query string, entries []*models.AggregatedCarEntry) error {
	if err := os.MkdirAll(ScrapeCacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %v", err)
	}

	cached := ScrapeResultCache{
		Query:     query,
		Data:      entries,
		Timestamp: time.Now(),
	}

	file, err := os.Create(cacheFileName(query))
	if err != nil {
		return fmt.Errorf("failed to create cache file: %v", err)
	}
	defer file.Close()

	if err := json.NewEncoder(file).Encode(cached); err != nil {
		return fmt.Errorf("failed to encode cache: %v", err)
	}

	fmt.Printf("💾 Cached %d cars for query %q\n", len(entries), query)
	return nil
}
