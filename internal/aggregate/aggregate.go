// Package aggregate merges per-source extraction records into one entry per
// car model so prices from different portals corroborate each other.
package aggregate

import (
	"math"
	"time"

	"autovault/internal/catalog"
	"autovault/internal/models"
)

// MaxImages caps how many gallery images accumulate per entry
const MaxImages = 8

// Merge folds extraction records into one AggregatedCarEntry per unique
// brand+model key (case-insensitive), preserving first-seen order. Scalar
// fields are first-non-null-wins; images append up to the cap; every observed
// price and contributing source accumulates. Records missing brand or model
// are dropped. When nothing survives but a detection hint exists, a single
// placeholder entry is synthesized so a known car always yields a catalog row.
func Merge(infos []*models.ExtractedCarInfo, hint *catalog.DetectedCar) []*models.AggregatedCarEntry {
	byKey := make(map[string]*models.AggregatedCarEntry)
	var order []string

	for _, info := range infos {
		if info == nil || info.Brand == "" || info.Model == "" {
			continue
		}

		key := models.CarKey(info.Brand, info.Model)
		existing, ok := byKey[key]
		if !ok {
			entry := newEntry(info)
			byKey[key] = entry
			order = append(order, key)
			continue
		}

		if existing.ImageURL == "" && info.ImageURL != "" {
			existing.ImageURL = info.ImageURL
		}
		if len(info.ImageURLs) > 0 && len(existing.ImageURLs) < MaxImages {
			existing.ImageURLs = appendCapped(existing.ImageURLs, info.ImageURLs)
		}
		if existing.ExShowroomPrice == 0 && info.ExShowroomPrice > 0 {
			existing.ExShowroomPrice = info.ExShowroomPrice
		}
		if info.ExShowroomPrice > 0 {
			existing.Prices = append(existing.Prices, info.ExShowroomPrice)
		}
		existing.Sources = append(existing.Sources, info.Source)
	}

	if len(order) == 0 && hint != nil {
		entry := placeholderEntry(hint)
		byKey[entry.Key()] = entry
		order = append(order, entry.Key())
	}

	entries := make([]*models.AggregatedCarEntry, 0, len(order))
	for _, key := range order {
		entries = append(entries, finalize(byKey[key]))
	}
	return entries
}

func newEntry(info *models.ExtractedCarInfo) *models.AggregatedCarEntry {
	entry := &models.AggregatedCarEntry{
		Brand:           info.Brand,
		Model:           info.Model,
		Variant:         info.Variant,
		Year:            info.Year,
		FuelType:        info.FuelType,
		BodyType:        info.BodyType,
		Transmission:    info.Transmission,
		Mileage:         info.Mileage,
		EngineCC:        info.EngineCC,
		ExShowroomPrice: info.ExShowroomPrice,
		ImageURL:        info.ImageURL,
		ImageURLs:       appendCapped(nil, info.ImageURLs),
		SourceURL:       info.SourceURL,
		Sources:         []string{info.Source},
	}
	if info.ExShowroomPrice > 0 {
		entry.Prices = []float64{info.ExShowroomPrice}
	}
	return entry
}

// placeholderEntry backs a detected car that produced zero scraped evidence
func placeholderEntry(hint *catalog.DetectedCar) *models.AggregatedCarEntry {
	return &models.AggregatedCarEntry{
		Brand:     catalog.CanonicalBrand(hint.Brand),
		Model:     hint.Model,
		Year:      time.Now().Year(),
		FuelType:  "Petrol",
		ImageURLs: []string{},
		Sources:   []string{"AutoVault"},
	}
}

// finalize replaces the provisional showroom price with the mean of every
// observed price once merging is complete
func finalize(entry *models.AggregatedCarEntry) *models.AggregatedCarEntry {
	if len(entry.Prices) > 0 {
		var sum float64
		for _, p := range entry.Prices {
			sum += p
		}
		entry.ExShowroomPrice = math.Round(sum / float64(len(entry.Prices)))
	}
	return entry
}

func appendCapped(dst, src []string) []string {
	for _, s := range src {
		if len(dst) >= MaxImages {
			break
		}
		dst = append(dst, s)
	}
	return dst
}
