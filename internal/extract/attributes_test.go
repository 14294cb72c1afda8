package extract

import (
	"testing"

	"autovault/internal/catalog"
)

const swiftMarkdown = `# Maruti Suzuki Swift Price in India
The Maruti Suzuki Swift is a popular hatchback with a 1197 cc petrol engine,
manual gearbox and a claimed 22.3 km/l. Ex-showroom: ₹6.5 Lakh.
![Swift](https://stimg.cardekho.com/swift.jpg)`

func TestExtractCarInfoSwift(t *testing.T) {
	info := ExtractCarInfo(swiftMarkdown, "https://www.cardekho.com/maruti/swift", nil)
	if info == nil {
		t.Fatal("expected an extraction record")
	}

	if info.Brand != "Maruti Suzuki" {
		t.Fatalf("expected brand Maruti Suzuki, got %q", info.Brand)
	}
	if info.Model != "Swift" {
		t.Fatalf("expected model Swift, got %q", info.Model)
	}
	if info.ExShowroomPrice != 650000 {
		t.Fatalf("expected price 650000, got %v", info.ExShowroomPrice)
	}
	if info.FuelType != "Petrol" {
		t.Fatalf("expected Petrol, got %q", info.FuelType)
	}
	if info.BodyType != "Hatchback" {
		t.Fatalf("expected Hatchback, got %q", info.BodyType)
	}
	if info.Mileage != "22.3" {
		t.Fatalf("expected mileage 22.3, got %q", info.Mileage)
	}
	if info.EngineCC != 1197 {
		t.Fatalf("expected 1197 cc, got %d", info.EngineCC)
	}
	if info.ImageURL != "https://stimg.cardekho.com/swift.jpg" {
		t.Fatalf("unexpected image URL %q", info.ImageURL)
	}
	if info.Source != "CarDekho" {
		t.Fatalf("expected source CarDekho, got %q", info.Source)
	}
}

func TestExtractCarInfoNoSignal(t *testing.T) {
	info := ExtractCarInfo("A page about garden furniture with no cars at all", "https://example.com", nil)
	if info != nil {
		t.Fatalf("expected nil for text without brand signal, got %+v", info)
	}
}

func TestExtractCarInfoHintWinsOverText(t *testing.T) {
	hint := &catalog.DetectedCar{Brand: "Tata", Model: "Nexon"}
	info := ExtractCarInfo("Great deals on the Hyundai Creta this month, ₹11 Lakh", "https://www.carwale.com/deals", hint)
	if info == nil {
		t.Fatal("expected an extraction record")
	}
	if info.Brand != "Tata" || info.Model != "Nexon" {
		t.Fatalf("expected hint to win, got %s %s", info.Brand, info.Model)
	}
}

func TestExtractFuelTypePrecedence(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"1.5L diesel hybrid combo", "Diesel"}, // diesel outranks hybrid
		{"all electric drivetrain", "Electric"},
		{"factory-fitted CNG kit", "CNG"},
		{"strong hybrid system", "Hybrid"},
		{"nothing special", "Petrol"},
	}
	for _, tt := range tests {
		if got := extractFuelType(tt.text); got != tt.want {
			t.Fatalf("extractFuelType(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractBodyTypePrecedence(t *testing.T) {
	if got := extractBodyType("a compact SUV for the city"); got != "Compact SUV" {
		t.Fatalf("expected Compact SUV, got %q", got)
	}
	if got := extractBodyType("a proper SUV"); got != "SUV" {
		t.Fatalf("expected SUV, got %q", got)
	}
	if got := extractBodyType("spacious MPV for seven"); got != "MPV" {
		t.Fatalf("expected MPV, got %q", got)
	}
	if got := extractBodyType("just a car"); got != "" {
		t.Fatalf("expected empty body type, got %q", got)
	}
}

func TestExtractTransmission(t *testing.T) {
	if got := extractTransmission("smooth CVT gearbox"); got != "Automatic" {
		t.Fatalf("expected Automatic, got %q", got)
	}
	if got := extractTransmission("5-speed manual"); got != "Manual" {
		t.Fatalf("expected Manual, got %q", got)
	}
	if got := extractTransmission("budget AMT option"); got != "AMT" {
		t.Fatalf("expected AMT, got %q", got)
	}
}

func TestExtractEngineCCStripsCommas(t *testing.T) {
	if got := extractEngineCC("a 1,497 cc engine"); got != 1497 {
		t.Fatalf("expected 1497, got %d", got)
	}
}

func TestSourceName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.carwale.com/maruti/swift", "CarWale"},
		{"https://www.cars24.com/buy", "Cars24"},
		{"https://www.cardekho.com/swift", "CarDekho"},
		{"https://www.olx.in/cars", "OLX Autos"},
		{"https://www.zigwheels.com/swift", "ZigWheels"},
		{"https://blog.example.com/cars", "Web"},
	}
	for _, tt := range tests {
		if got := SourceName(tt.url); got != tt.want {
			t.Fatalf("SourceName(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
