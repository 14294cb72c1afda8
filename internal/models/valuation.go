package models

import (
	"strings"
	"time"
)

// CarKey builds the normalized merge/lookup key for a brand+model pair
func CarKey(brand, model string) string {
	return strings.ToLower(brand + "-" + model)
}

// PriceObservation is one scraped price point. Rows are append-only; freshness
// is decided at read time with a recency filter, never by updating in place.
type PriceObservation struct {
	ID        int       `json:"id"`
	Brand     string    `json:"brand"`
	Model     string    `json:"model"`
	Variant   string    `json:"variant,omitempty"`
	Year      int       `json:"year"`
	Price     float64   `json:"price"`
	FuelType  string    `json:"fuel_type,omitempty"`
	Source    string    `json:"source"`
	SourceURL string    `json:"source_url,omitempty"`
	ScrapedAt time.Time `json:"scraped_at"`
}

// PriceSource attributes one observed price to the site it came from
type PriceSource struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	URL   string  `json:"url"`
}

// ValuationEstimate is the derived market estimate for one car. Recomputed per
// request; never read back from storage.
type ValuationEstimate struct {
	EstimatedValue float64       `json:"estimatedValue"`
	MinValue       float64       `json:"minValue"`
	MaxValue       float64       `json:"maxValue"`
	DemandScore    float64       `json:"demandScore"`
	Sources        []PriceSource `json:"sources"`
	PriceCount     int           `json:"priceCount"`
}

// ValuationRecord is the persisted history row for one valuation request
type ValuationRecord struct {
	ID                 int           `json:"id"`
	UserID             string        `json:"user_id,omitempty"`
	CarBrand           string        `json:"car_brand"`
	CarModel           string        `json:"car_model"`
	CarYear            int           `json:"car_year,omitempty"`
	FuelType           string        `json:"fuel_type,omitempty"`
	RegistrationNumber string        `json:"registration_number,omitempty"`
	EstimatedValue     float64       `json:"estimated_value"`
	MinValue           float64       `json:"min_value"`
	MaxValue           float64       `json:"max_value"`
	DemandScore        float64       `json:"demand_score"`
	Sources            []PriceSource `json:"sources"`
	CreatedAt          time.Time     `json:"created_at"`
}

// ValuationRequest is the caller-facing request body for the valuation path
type ValuationRequest struct {
	Brand              string `json:"brand" binding:"required"`
	Model              string `json:"model" binding:"required"`
	Year               int    `json:"year"`
	FuelType           string `json:"fuelType"`
	RegistrationNumber string `json:"registrationNumber"`
}

// ValuationResponse is the caller-facing response for the valuation path
type ValuationResponse struct {
	Success   bool               `json:"success"`
	Valuation *ValuationEstimate `json:"valuation,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// ScrapeRequest is the caller-facing request body for the scrape path.
// Either Query or Brand+Model must be supplied.
type ScrapeRequest struct {
	Query string `json:"query"`
	Brand string `json:"brand"`
	Model string `json:"model"`
}

// ScrapeResponse is the caller-facing response for the scrape path
type ScrapeResponse struct {
	Success bool                  `json:"success"`
	Cars    []*AggregatedCarEntry `json:"cars,omitempty"`
	Count   int                   `json:"count"`
	Message string                `json:"message,omitempty"`
	Error   string                `json:"error,omitempty"`
}
