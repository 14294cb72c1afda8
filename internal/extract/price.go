// Package extract pulls structured car data out of free-form scraped text.
// Pages from Indian car portals quote prices in Lakh/Crore shorthand and mix
// specifications into prose, so everything here is regex-driven and best-effort.
package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	// Plausible band for an Indian car price in rupees. Anything outside is
	// treated as extraction noise (phone numbers, loan EMIs, view counts).
	MinValidPrice = 50000
	MaxValidPrice = 100000000

	lakh  = 100000
	crore = 10000000
)

// pricePatterns is the ordered cascade tried against a page body. Each pattern
// captures the numeral and an optional unit token; the first match that lands
// inside the valid band wins. Ordered from most to least explicit.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)₹\s*([\d,.]+)\s*(Lakh|Crore|L|Cr)?`),
	regexp.MustCompile(`(?i)Rs\.?\s*([\d,.]+)\s*(Lakh|Crore|L|Cr)?`),
	regexp.MustCompile(`(?i)Price[:\s]*([\d,.]+)\s*(Lakh|Crore|L|Cr)?`),
	regexp.MustCompile(`(?i)Ex-showroom[:\s]*₹?\s*([\d,.]+)\s*(Lakh|Crore|L|Cr)?`),
	regexp.MustCompile(`(?i)Starting\s+(?:from\s+)?₹?\s*([\d,.]+)\s*(Lakh|Crore|L|Cr)?`),
}

// currencyPattern matches every rupee amount in a text, used when a single
// page quotes several trims/variants
var currencyPattern = regexp.MustCompile(`(?i)₹\s*([\d,.]+)\s*(Lakh|Crore|L|Cr)?`)

// normalizePrice converts a captured numeral plus unit token to absolute
// whole rupees. A unit-less value below 100 is assumed to be in Lakhs ("₹8.5"
// on a listing page means 8.5 Lakh, not 8.5 rupees).
func normalizePrice(numStr, unit string) (float64, bool) {
	price, err := strconv.ParseFloat(strings.ReplaceAll(numStr, ",", ""), 64)
	if err != nil {
		return 0, false
	}

	switch u := strings.ToLower(strings.TrimSpace(unit)); {
	case strings.Contains(u, "lakh") || u == "l":
		price *= lakh
	case strings.Contains(u, "crore") || u == "cr":
		price *= crore
	case price < 100:
		price *= lakh
	}

	// Fractional Lakh amounts like 9.2 do not multiply out exactly in float64
	return math.Round(price), true
}

// inBand reports whether a normalized price is a plausible car price
func inBand(price float64) bool {
	return price > MinValidPrice && price < MaxValidPrice
}

// ExtractPrice runs the pattern cascade over the text and returns the first
// in-band price found. An out-of-band match falls through to the next pattern.
func ExtractPrice(text string) (float64, bool) {
	for _, pattern := range pricePatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		price, ok := normalizePrice(match[1], match[2])
		if ok && inBand(price) {
			return price, true
		}
	}
	return 0, false
}

// ExtractAllPrices scans the whole text for rupee amounts and returns every
// in-band price, in document order. Used by the valuation path where each
// quoted trim is a separate observation.
func ExtractAllPrices(text string) []float64 {
	var prices []float64
	for _, match := range currencyPattern.FindAllStringSubmatch(text, -1) {
		price, ok := normalizePrice(match[1], match[2])
		if ok && inBand(price) {
			prices = append(prices, price)
		}
	}
	return prices
}
