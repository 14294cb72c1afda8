package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"autovault/internal/catalog"
	"autovault/internal/models"
)

var (
	dieselPattern   = regexp.MustCompile(`(?i)diesel`)
	electricPattern = regexp.MustCompile(`(?i)electric|\bev\b|\bbev\b`)
	cngPattern      = regexp.MustCompile(`(?i)\bcng\b`)
	hybridPattern   = regexp.MustCompile(`(?i)hybrid`)

	compactSUVPattern = regexp.MustCompile(`(?i)compact\s*suv|sub[\s-]*4m\s*suv`)
	midSUVPattern     = regexp.MustCompile(`(?i)mid[\s-]*size\s*suv`)
	premiumSUVPattern = regexp.MustCompile(`(?i)premium\s*suv|full[\s-]*size\s*suv`)
	suvPattern        = regexp.MustCompile(`(?i)suv`)
	sedanPattern      = regexp.MustCompile(`(?i)sedan`)
	hatchbackPattern  = regexp.MustCompile(`(?i)hatchback`)
	mpvPattern        = regexp.MustCompile(`(?i)\bmpv\b|\bmuv\b`)

	automaticPattern = regexp.MustCompile(`(?i)automatic|\bat\b|\bdct\b|\bcvt\b`)
	manualPattern    = regexp.MustCompile(`(?i)manual|\bmt\b`)
	amtPattern       = regexp.MustCompile(`(?i)\bamt\b|\bags\b`)

	mileagePattern = regexp.MustCompile(`(?i)([\d.]+)\s*km/?l`)
	enginePattern  = regexp.MustCompile(`(?i)([\d,]+)\s*cc`)
)

// ExtractCarInfo parses one scraped page body into a best-effort attribute
// record. When a pre-detected brand/model hint is supplied it is used verbatim;
// otherwise the static catalog decides. Returns nil when the text carries no
// brand or model signal at all.
func ExtractCarInfo(text, url string, hint *catalog.DetectedCar) *models.ExtractedCarInfo {
	price, _ := ExtractPrice(text)

	var brand, model string
	if hint != nil {
		brand, model = hint.Brand, hint.Model
	}

	if brand == "" || model == "" {
		if brand == "" {
			brand = catalog.FindBrand(text)
		}
		if model == "" {
			if modelBrand, m := catalog.FindModel(text); m != "" {
				model = m
				if brand == "" {
					brand = modelBrand
				}
			}
		}
	}

	if brand == "" && model == "" {
		return nil
	}

	info := &models.ExtractedCarInfo{
		Brand:           brand,
		Model:           model,
		Year:            time.Now().Year(),
		FuelType:        extractFuelType(text),
		BodyType:        extractBodyType(text),
		Transmission:    extractTransmission(text),
		Mileage:         extractMileage(text),
		EngineCC:        extractEngineCC(text),
		ExShowroomPrice: price,
		Source:          SourceName(url),
		SourceURL:       url,
	}

	if imageURL := ExtractImageURL(text, brand, model); imageURL != "" {
		info.ImageURL = imageURL
		info.ImageURLs = []string{imageURL}
	}

	return info
}

// extractFuelType checks fuel keywords in precedence order; Petrol is the
// default when nothing matches
func extractFuelType(text string) string {
	switch {
	case dieselPattern.MatchString(text):
		return "Diesel"
	case electricPattern.MatchString(text):
		return "Electric"
	case cngPattern.MatchString(text):
		return "CNG"
	case hybridPattern.MatchString(text):
		return "Hybrid"
	default:
		return "Petrol"
	}
}

func extractBodyType(text string) string {
	switch {
	case compactSUVPattern.MatchString(text):
		return "Compact SUV"
	case midSUVPattern.MatchString(text):
		return "Mid-Size SUV"
	case premiumSUVPattern.MatchString(text):
		return "Premium SUV"
	case suvPattern.MatchString(text):
		return "SUV"
	case sedanPattern.MatchString(text):
		return "Sedan"
	case hatchbackPattern.MatchString(text):
		return "Hatchback"
	case mpvPattern.MatchString(text):
		return "MPV"
	default:
		return ""
	}
}

func extractTransmission(text string) string {
	switch {
	case automaticPattern.MatchString(text):
		return "Automatic"
	case manualPattern.MatchString(text):
		return "Manual"
	case amtPattern.MatchString(text):
		return "AMT"
	default:
		return ""
	}
}

func extractMileage(text string) string {
	if match := mileagePattern.FindStringSubmatch(text); match != nil {
		return match[1]
	}
	return ""
}

func extractEngineCC(text string) int {
	match := enginePattern.FindStringSubmatch(text)
	if match == nil {
		return 0
	}
	cc, err := strconv.Atoi(strings.ReplaceAll(match[1], ",", ""))
	if err != nil {
		return 0
	}
	return cc
}
