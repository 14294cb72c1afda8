// Package search provides the web-search providers the scraping pipeline runs
// on: a Firecrawl API client and a headless-browser fallback for when no API
// key is configured.
package search

import (
	"context"

	"autovault/internal/models"
)

// Provider returns scraped search results for a free-text query. The pipeline
// cannot run without one; provider errors fail the whole request (no retries).
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]models.RawResult, error)
}
