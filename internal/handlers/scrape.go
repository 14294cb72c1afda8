package handlers

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"autovault/internal/aggregate"
	"autovault/internal/cache"
	"autovault/internal/catalog"
	"autovault/internal/config"
	"autovault/internal/database"
	"autovault/internal/extract"
	"autovault/internal/models"
	"autovault/internal/search"
	"autovault/internal/util"
	"autovault/internal/validation"
)

// ScrapeHandler enriches the car catalog from web-search results
type ScrapeHandler struct {
	db       *database.Database
	searcher search.Provider // Firecrawl when configured
	fallback search.Provider // headless-browser provider, may be nil
	cfg      *config.Config
}

// NewScrapeHandler creates a scrape handler
func NewScrapeHandler(db *database.Database, searcher, fallback search.Provider, cfg *config.Config) *ScrapeHandler {
	return &ScrapeHandler{db: db, searcher: searcher, fallback: fallback, cfg: cfg}
}

// ScrapeCars godoc
// @Summary Scrape car data from the web
// @Description Searches Indian car portals for the queried car, extracts attributes and prices, merges results per model, and upserts them into the catalog. Repeated queries within the cache window are served from disk.
// @Tags scrape
// @Accept json
// @Produce json
// @Param request body models.ScrapeRequest true "Query or brand+model"
// @Success 200 {object} models.ScrapeResponse
// @Failure 400 {object} models.ScrapeResponse
// @Failure 500 {object} models.ScrapeResponse
// @Router /api/scrape [post]
func (h *ScrapeHandler) ScrapeCars(c *gin.Context) {
	var req models.ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ScrapeResponse{
			Success: false,
			Error:   "Invalid request data",
		})
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		query = strings.TrimSpace(req.Brand + " " + req.Model)
	}
	if err := validation.ValidateQuery(query); err != nil {
		c.JSON(http.StatusBadRequest, models.ScrapeResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	if entries, ok := cache.LoadScrapeResults(query); ok {
		c.JSON(http.StatusOK, models.ScrapeResponse{
			Success: true,
			Cars:    entries,
			Count:   len(entries),
			Message: fmt.Sprintf("Found %d cars matching %q", len(entries), query),
		})
		return
	}

	provider := h.searcher
	if provider == nil {
		provider = h.fallback
	}
	if provider == nil {
		util.SafeErrorResponse(c, http.StatusInternalServerError, "Scraping service not configured", nil)
		return
	}

	detected := catalog.Detect(query)
	searchQuery := buildScrapeQuery(query, req.Brand, req.Model, detected)
	fmt.Printf("🔍 Searching for: %s\n", searchQuery)

	results, err := provider.Search(c.Request.Context(), searchQuery, h.cfg.ScrapeSearchLimit)
	if err != nil {
		util.SafeErrorResponse(c, http.StatusInternalServerError, "Search failed", err)
		return
	}
	fmt.Printf("📊 Search results count: %d\n", len(results))

	infos := make([]*models.ExtractedCarInfo, 0, len(results))
	for _, result := range results {
		if info := extract.ExtractCarInfo(result.Content(), result.URL, detected); info != nil {
			infos = append(infos, info)
		}
	}

	entries := aggregate.Merge(infos, detected)
	fmt.Printf("🚗 Parsed cars: %d\n", len(entries))

	h.persistEntries(entries)

	// An empty answer may be a transient upstream hiccup; caching it would
	// pin "0 cars" for the whole cache window
	if len(entries) > 0 {
		if err := cache.SaveScrapeResults(query, entries); err != nil {
			log.Printf("Failed to cache scrape results: %v", err)
		}
	}

	c.JSON(http.StatusOK, models.ScrapeResponse{
		Success: true,
		Cars:    entries,
		Count:   len(entries),
		Message: fmt.Sprintf("Found %d cars matching %q", len(entries), query),
	})
}

// persistEntries writes aggregated entries to the catalog and price log.
// Each write is independent and best-effort; failures are logged, never
// surfaced, and never abort the rest of the batch.
func (h *ScrapeHandler) persistEntries(entries []*models.AggregatedCarEntry) {
	for _, entry := range entries {
		if entry.Brand == "" || entry.Model == "" {
			continue
		}

		if err := h.db.UpsertAggregatedCar(entry); err != nil {
			log.Printf("Failed to upsert car %s %s: %v", entry.Brand, entry.Model, err)
		}

		if entry.ExShowroomPrice > 0 {
			obs := &models.PriceObservation{
				Brand:     entry.Brand,
				Model:     entry.Model,
				Variant:   entry.Variant,
				Year:      entry.Year,
				Price:     math.Round(entry.ExShowroomPrice),
				FuelType:  entry.FuelType,
				Source:    firstSource(entry.Sources),
				SourceURL: entry.SourceURL,
			}
			if err := h.db.InsertPriceObservation(obs); err != nil {
				log.Printf("Failed to log price for %s %s: %v", entry.Brand, entry.Model, err)
			}
		}
	}
}

// buildScrapeQuery targets the search at the Indian car portals that give the
// cleanest extraction results
func buildScrapeQuery(query, brand, model string, detected *catalog.DetectedCar) string {
	switch {
	case detected != nil:
		return fmt.Sprintf("%s %s car price specifications India site:carwale.com OR site:cardekho.com OR site:cars24.com OR site:autoportal.com",
			detected.Brand, detected.Model)
	case brand != "" && model != "":
		return fmt.Sprintf("%s %s car price specifications India site:carwale.com OR site:cardekho.com", brand, model)
	default:
		return fmt.Sprintf("%s car price India site:carwale.com OR site:cardekho.com OR site:cars24.com", query)
	}
}

func firstSource(sources []string) string {
	if len(sources) == 0 {
		return "Web"
	}
	return sources[0]
}
