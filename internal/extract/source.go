package extract

import "strings"

// sourceNames maps URL fragments to display names for the portals we scrape,
// checked in order
var sourceNames = []struct {
	fragment string
	name     string
}{
	{"carwale", "CarWale"},
	{"cars24", "Cars24"},
	{"spinny", "Spinny"},
	{"cardekho", "CarDekho"},
	{"olx", "OLX Autos"},
	{"carandbike", "CarAndBike"},
	{"zigwheels", "ZigWheels"},
	{"autoportal", "AutoPortal"},
}

// SourceName attributes a scraped URL to a known car portal, defaulting to
// "Web" for anything unrecognized
func SourceName(url string) string {
	for _, s := range sourceNames {
		if strings.Contains(url, s.fragment) {
			return s.name
		}
	}
	return "Web"
}
