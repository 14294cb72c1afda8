package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"autovault/internal/models"
)

func TestFirecrawlSearch(t *testing.T) {
	var gotAuth, gotPath string
	var gotReq firecrawlSearchRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(firecrawlSearchResponse{
			Success: true,
			Data: []models.RawResult{
				{Markdown: "Swift ₹6.5 Lakh", URL: "https://www.cardekho.com/swift"},
			},
		})
	}))
	defer server.Close()

	client := NewFirecrawlClientWithURL("test-key", server.URL)
	results, err := client.Search(context.Background(), "Maruti Swift price", 5)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if gotPath != "/v1/search" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotReq.Query != "Maruti Swift price" || gotReq.Limit != 5 {
		t.Fatalf("unexpected request payload: %+v", gotReq)
	}
	if len(gotReq.ScrapeOptions.Formats) != 1 || gotReq.ScrapeOptions.Formats[0] != "markdown" {
		t.Fatalf("expected markdown scrape format, got %v", gotReq.ScrapeOptions.Formats)
	}
	if len(results) != 1 || results[0].URL != "https://www.cardekho.com/swift" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestFirecrawlSearchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewFirecrawlClientWithURL("bad-key", server.URL)
	if _, err := client.Search(context.Background(), "query", 5); err == nil {
		t.Fatalf("expected error on non-200 response")
	}
}

func TestFirecrawlSearchAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(firecrawlSearchResponse{
			Success: false,
			Error:   "rate limit exceeded",
		})
	}))
	defer server.Close()

	client := NewFirecrawlClientWithURL("test-key", server.URL)
	if _, err := client.Search(context.Background(), "query", 5); err == nil {
		t.Fatalf("expected error when the API reports failure")
	}
}
