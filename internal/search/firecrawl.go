package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"autovault/internal/models"
)

const defaultFirecrawlURL = "https://api.firecrawl.dev"

// FirecrawlClient calls the Firecrawl search API, which runs a web search and
// scrapes each hit into markdown in one request
type FirecrawlClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewFirecrawlClient creates a Firecrawl search client
func NewFirecrawlClient(apiKey string) *FirecrawlClient {
	return &FirecrawlClient{
		apiKey:  apiKey,
		baseURL: defaultFirecrawlURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// NewFirecrawlClientWithURL creates a client against a custom endpoint (used in tests)
func NewFirecrawlClientWithURL(apiKey, baseURL string) *FirecrawlClient {
	c := NewFirecrawlClient(apiKey)
	c.baseURL = baseURL
	return c
}

type firecrawlSearchRequest struct {
	Query         string                 `json:"query"`
	Limit         int                    `json:"limit"`
	ScrapeOptions firecrawlScrapeOptions `json:"scrapeOptions"`
}

type firecrawlScrapeOptions struct {
	Formats []string `json:"formats"`
}

type firecrawlSearchResponse struct {
	Success bool               `json:"success"`
	Data    []models.RawResult `json:"data"`
	Error   string             `json:"error"`
}

// Search runs a Firecrawl search and returns the scraped result bodies
func (c *FirecrawlClient) Search(ctx context.Context, query string, limit int) ([]models.RawResult, error) {
	payload, err := json.Marshal(firecrawlSearchRequest{
		Query:         query,
		Limit:         limit,
		ScrapeOptions: firecrawlScrapeOptions{Formats: []string{"markdown"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d: %s", resp.StatusCode, string(body))
	}

	var searchResp firecrawlSearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	if !searchResp.Success && searchResp.Error != "" {
		return nil, fmt.Errorf("search failed: %s", searchResp.Error)
	}

	return searchResp.Data, nil
}
