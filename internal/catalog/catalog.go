// Package catalog holds the static reference data for the Indian car market:
// the known brands, the models sold under each brand, and the detection logic
// that maps free-text queries onto them.
package catalog

import "strings"

// Brands lists every brand the scraping pipeline recognizes, in match order.
// "Maruti" and "Mercedes" are kept as aliases so shorthand queries still hit.
var Brands = []string{
	"Maruti Suzuki", "Maruti", "Tata", "Tata Motors", "Mahindra",
	"Hyundai", "Kia", "Honda", "Toyota", "Skoda", "Volkswagen",
	"MG", "Renault", "Nissan", "Ford", "Jeep", "BMW", "Mercedes-Benz",
	"Mercedes", "Audi", "Volvo", "Lexus", "Citroen", "BYD",
}

// Models maps each brand to its known model lineup. Order matters: detection
// returns the first model found in the text, scanning brands in this order.
var Models = map[string][]string{
	"Maruti Suzuki": {"Swift", "Baleno", "WagonR", "Alto", "Brezza", "Fronx", "Jimny", "Grand Vitara", "XL6", "Ertiga", "Dzire", "Ciaz", "S-Cross", "Ignis", "Celerio", "S-Presso"},
	"Tata":          {"Nexon", "Punch", "Tiago", "Altroz", "Harrier", "Safari", "Curvv", "Tigor", "Nexon EV"},
	"Mahindra":      {"Thar", "Scorpio", "Scorpio-N", "XUV700", "XUV400", "XUV300", "Bolero", "BE 6", "XUV 3XO"},
	"Hyundai":       {"Creta", "Venue", "i20", "i10", "Verna", "Tucson", "Alcazar", "Exter", "Aura", "Ioniq 5"},
	"Kia":           {"Seltos", "Sonet", "Carens", "EV6", "EV9"},
	"Honda":         {"City", "Amaze", "Elevate", "WR-V"},
	"Toyota":        {"Fortuner", "Innova", "Innova Crysta", "Innova Hycross", "Urban Cruiser", "Glanza", "Rumion", "Camry", "Land Cruiser"},
	"Skoda":         {"Kushaq", "Slavia", "Kodiaq", "Superb"},
	"Volkswagen":    {"Taigun", "Virtus", "Tiguan"},
	"MG":            {"Hector", "Astor", "Comet", "ZS EV", "Windsor"},
	"Renault":       {"Kwid", "Kiger", "Triber"},
}

// brandOrder fixes the iteration order over Models so detection is
// deterministic (map iteration order is randomized in Go).
var brandOrder = []string{
	"Maruti Suzuki", "Tata", "Mahindra", "Hyundai", "Kia", "Honda",
	"Toyota", "Skoda", "Volkswagen", "MG", "Renault",
}

// DetectedCar is a brand+model pair recognized in a query or page body
type DetectedCar struct {
	Brand string
	Model string
}

// Detect finds a known car in a free-text query. A model-name hit wins and
// fixes the brand; otherwise a bare brand hit returns the brand with the rest
// of the query as the model. Returns nil when nothing is recognized.
func Detect(query string) *DetectedCar {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	if queryLower == "" {
		return nil
	}

	for _, brand := range brandOrder {
		for _, model := range Models[brand] {
			if strings.Contains(queryLower, strings.ToLower(model)) {
				return &DetectedCar{Brand: brand, Model: model}
			}
		}
	}

	for _, brand := range Brands {
		if strings.Contains(queryLower, strings.ToLower(brand)) {
			model := strings.TrimSpace(strings.ReplaceAll(queryLower, strings.ToLower(brand), ""))
			return &DetectedCar{Brand: CanonicalBrand(brand), Model: model}
		}
	}

	return nil
}

// FindBrand returns the first known brand mentioned in the text, canonicalized
func FindBrand(text string) string {
	textLower := strings.ToLower(text)
	for _, b := range Brands {
		if strings.Contains(textLower, strings.ToLower(b)) {
			return CanonicalBrand(b)
		}
	}
	return ""
}

// FindModel returns the first known model mentioned in the text along with the
// brand that sells it
func FindModel(text string) (brand, model string) {
	textLower := strings.ToLower(text)
	for _, b := range brandOrder {
		for _, m := range Models[b] {
			if strings.Contains(textLower, strings.ToLower(m)) {
				return b, m
			}
		}
	}
	return "", ""
}

// CanonicalBrand resolves brand aliases to their canonical name
func CanonicalBrand(brand string) string {
	if brand == "Maruti" {
		return "Maruti Suzuki"
	}
	return brand
}
