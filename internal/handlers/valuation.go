package handlers

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"autovault/internal/config"
	"autovault/internal/database"
	"autovault/internal/extract"
	"autovault/internal/models"
	"autovault/internal/search"
	"autovault/internal/util"
	"autovault/internal/validation"
	"autovault/internal/valuation"
)

// HistorySourceLimit caps how many sources are persisted with a valuation row
const HistorySourceLimit = 10

// ValuationHandler serves market-value estimates for cars
type ValuationHandler struct {
	db       *database.Database
	searcher search.Provider // Firecrawl; nil when no API key is configured
	cfg      *config.Config
}

// NewValuationHandler creates a valuation handler
func NewValuationHandler(db *database.Database, searcher search.Provider, cfg *config.Config) *ValuationHandler {
	return &ValuationHandler{db: db, searcher: searcher, cfg: cfg}
}

// GetValuation godoc
// @Summary Estimate the market value of a car
// @Description Computes an IQR-trimmed market estimate from recent scraped prices. Prices logged within the freshness window are reused; otherwise a fresh web search runs. Rate limited per IP.
// @Tags valuation
// @Accept json
// @Produce json
// @Param request body models.ValuationRequest true "Car to value"
// @Success 200 {object} models.ValuationResponse
// @Failure 400 {object} models.ValuationResponse
// @Failure 500 {object} models.ValuationResponse
// @Router /api/valuation [post]
func (h *ValuationHandler) GetValuation(c *gin.Context) {
	var req models.ValuationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ValuationResponse{
			Success: false,
			Error:   "Invalid request data",
		})
		return
	}

	if err := validateValuationRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ValuationResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	if h.searcher == nil {
		util.SafeErrorResponse(c, http.StatusInternalServerError, "Valuation service not configured", nil)
		return
	}

	prices, sources, err := h.collectPrices(c, &req)
	if err != nil {
		util.SafeErrorResponse(c, http.StatusInternalServerError, "Search failed", err)
		return
	}

	estimate, err := valuation.Estimate(prices, sources)
	if err != nil {
		// Not a server fault: the car is simply unknown to the market
		c.JSON(http.StatusOK, models.ValuationResponse{
			Success: false,
			Error:   "Could not find pricing data for this vehicle",
		})
		return
	}

	h.recordValuation(c, &req, estimate, sources)

	c.JSON(http.StatusOK, models.ValuationResponse{
		Success:   true,
		Valuation: estimate,
	})
}

// collectPrices returns the price observations for the requested car: logged
// ones when fresh enough, freshly scraped ones otherwise. Fresh observations
// are appended to the price log as they are produced (best-effort).
func (h *ValuationHandler) collectPrices(c *gin.Context, req *models.ValuationRequest) ([]float64, []models.PriceSource, error) {
	cutoff := time.Now().Add(-h.cfg.PriceCacheWindow)
	cached, err := h.db.GetRecentPriceObservations(req.Brand, req.Model, cutoff)
	if err != nil {
		log.Printf("Price log read failed, falling back to scrape: %v", err)
	}

	if len(cached) > 0 {
		fmt.Printf("✅ Using %d cached price observations for %s %s\n", len(cached), req.Brand, req.Model)
		var prices []float64
		var sources []models.PriceSource
		for _, obs := range cached {
			prices = append(prices, obs.Price)
			sources = append(sources, models.PriceSource{
				Name:  obs.Source,
				Price: obs.Price,
				URL:   obs.SourceURL,
			})
		}
		return prices, sources, nil
	}

	query := buildValuationQuery(req)
	fmt.Printf("🔍 Searching for valuation: %s\n", query)

	results, err := h.searcher.Search(c.Request.Context(), query, h.cfg.ValuationSearchLimit)
	if err != nil {
		return nil, nil, err
	}

	year := req.Year
	if year == 0 {
		year = time.Now().Year()
	}

	var prices []float64
	var sources []models.PriceSource
	for _, result := range results {
		for _, price := range extract.ExtractAllPrices(result.Content()) {
			sourceName := extract.SourceName(result.URL)
			prices = append(prices, price)
			sources = append(sources, models.PriceSource{
				Name:  sourceName,
				Price: math.Round(price),
				URL:   result.URL,
			})

			obs := &models.PriceObservation{
				Brand:     req.Brand,
				Model:     req.Model,
				Year:      year,
				Price:     math.Round(price),
				FuelType:  req.FuelType,
				Source:    sourceName,
				SourceURL: result.URL,
			}
			if err := h.db.InsertPriceObservation(obs); err != nil {
				log.Printf("Failed to log price observation: %v", err)
			}
		}
	}

	return prices, sources, nil
}

// recordValuation appends the served estimate to the valuation history,
// attributing it to the requesting user when a valid bearer token is present.
// Write failures are logged and do not affect the response.
func (h *ValuationHandler) recordValuation(c *gin.Context, req *models.ValuationRequest, estimate *models.ValuationEstimate, sources []models.PriceSource) {
	userID := h.resolveUser(c)

	persisted := sources
	if len(persisted) > HistorySourceLimit {
		persisted = persisted[:HistorySourceLimit]
	}

	record := &models.ValuationRecord{
		UserID:             userID,
		CarBrand:           req.Brand,
		CarModel:           req.Model,
		CarYear:            req.Year,
		FuelType:           req.FuelType,
		RegistrationNumber: req.RegistrationNumber,
		EstimatedValue:     estimate.EstimatedValue,
		MinValue:           estimate.MinValue,
		MaxValue:           estimate.MaxValue,
		DemandScore:        estimate.DemandScore,
		Sources:            persisted,
	}

	if err := h.db.InsertValuation(record); err != nil {
		log.Printf("Failed to store valuation history: %v", err)
	}
}

// resolveUser maps the Authorization bearer token to a user ID, if any
func (h *ValuationHandler) resolveUser(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return ""
	}

	userID, err := h.db.GetUserIDBySessionToken(token)
	if err != nil {
		log.Printf("Session lookup failed: %v", err)
		return ""
	}
	return userID
}

// GetValuationHistory godoc
// @Summary List recent valuations
// @Description Returns the most recently served valuation estimates, newest first
// @Tags valuation
// @Produce json
// @Param limit query int false "Maximum rows to return" default(20)
// @Success 200 {object} map[string]interface{}
// @Router /api/valuations [get]
func (h *ValuationHandler) GetValuationHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	records, err := h.db.ListValuations(limit)
	if err != nil {
		util.SafeErrorResponse(c, http.StatusInternalServerError, "Failed to load valuation history", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"valuations": records,
		"count":      len(records),
	})
}

func validateValuationRequest(req *models.ValuationRequest) error {
	if err := validation.ValidateBrand(req.Brand); err != nil {
		return err
	}
	if err := validation.ValidateModel(req.Model); err != nil {
		return err
	}
	if err := validation.ValidateYear(req.Year); err != nil {
		return err
	}
	return validation.ValidateRegistrationNumber(req.RegistrationNumber)
}

func buildValuationQuery(req *models.ValuationRequest) string {
	parts := []string{req.Brand, req.Model}
	if req.Year > 0 {
		parts = append(parts, strconv.Itoa(req.Year))
	}
	parts = append(parts, "used car price India")
	return strings.Join(parts, " ")
}
