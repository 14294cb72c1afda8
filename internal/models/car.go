package models

import "time"

// Car represents one row of the car catalog, assembled from scraped sources
type Car struct {
	ID              int       `json:"id"`
	Brand           string    `json:"brand"`
	Model           string    `json:"model"`
	Variant         string    `json:"variant,omitempty"`
	Year            int       `json:"year"`
	FuelType        string    `json:"fuel_type"`
	BodyType        string    `json:"body_type,omitempty"`
	Transmission    string    `json:"transmission,omitempty"`
	Mileage         string    `json:"mileage,omitempty"` // Keep as string to preserve formatting like "23.2"
	EngineCC        int       `json:"engine_cc,omitempty"`
	ExShowroomPrice float64   `json:"ex_showroom_price,omitempty"`
	OnRoadPrice     float64   `json:"on_road_price,omitempty"`
	ImageURL        string    `json:"image_url,omitempty"`
	ImageURLs       []string  `json:"image_urls,omitempty"`
	Source          string    `json:"source,omitempty"`
	SourceURL       string    `json:"source_url,omitempty"`
	ScrapedAt       time.Time `json:"scraped_at,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

// RawResult is one search hit as returned by a search provider: the scraped
// page body (markdown when available) plus where it came from. Consumed once
// by the extraction pipeline.
type RawResult struct {
	Markdown    string `json:"markdown"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Content returns the best text body available for extraction
func (r *RawResult) Content() string {
	if r.Markdown != "" {
		return r.Markdown
	}
	return r.Description
}

// ExtractedCarInfo is the best-effort attribute record pulled out of a single
// RawResult. Immutable once produced; only ever merged, never persisted as-is.
type ExtractedCarInfo struct {
	Brand           string
	Model           string
	Variant         string
	Year            int
	FuelType        string
	BodyType        string
	Transmission    string
	Mileage         string
	EngineCC        int
	ExShowroomPrice float64 // 0 means no price was found
	ImageURL        string
	ImageURLs       []string
	Source          string
	SourceURL       string
}

// AggregatedCarEntry is one car model merged from every contributing source.
// Prices and Sources accumulate across results; scalar fields are first-non-null.
type AggregatedCarEntry struct {
	Brand           string    `json:"brand"`
	Model           string    `json:"model"`
	Variant         string    `json:"variant,omitempty"`
	Year            int       `json:"year"`
	FuelType        string    `json:"fuel_type"`
	BodyType        string    `json:"body_type,omitempty"`
	Transmission    string    `json:"transmission,omitempty"`
	Mileage         string    `json:"mileage,omitempty"`
	EngineCC        int       `json:"engine_cc,omitempty"`
	ExShowroomPrice float64   `json:"ex_showroom_price,omitempty"`
	ImageURL        string    `json:"image_url,omitempty"`
	ImageURLs       []string  `json:"image_urls"`
	SourceURL       string    `json:"source_url,omitempty"`
	Prices          []float64 `json:"-"`
	Sources         []string  `json:"sources"`
}

// Key returns the case-insensitive merge key for this entry
func (e *AggregatedCarEntry) Key() string {
	return CarKey(e.Brand, e.Model)
}
