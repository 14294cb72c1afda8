package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"autovault/internal/models"
)

func TestMain(m *testing.M) {
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	root := filepath.Join(cwd, "..", "..")
	if err := os.Chdir(root); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := NewDatabase(dbPath)
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUpsertAggregatedCarInsertThenUpdate(t *testing.T) {
	db := newTestDatabase(t)

	entry := &models.AggregatedCarEntry{
		Brand:           "Maruti Suzuki",
		Model:           "Swift",
		Year:            2024,
		FuelType:        "Petrol",
		BodyType:        "Hatchback",
		ExShowroomPrice: 650000,
		ImageURL:        "https://stimg.cardekho.com/images/swift.jpg",
		ImageURLs:       []string{"https://stimg.cardekho.com/images/swift.jpg"},
		Sources:         []string{"CarDekho"},
	}
	if err := db.UpsertAggregatedCar(entry); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	id, exists, err := db.FindCarID("Maruti Suzuki", "Swift", "")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if !exists {
		t.Fatalf("expected car to exist after upsert")
	}

	entry.ExShowroomPrice = 720000
	entry.Sources = []string{"CarDekho", "CarWale"}
	if err := db.UpsertAggregatedCar(entry); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	id2, _, err := db.FindCarID("Maruti Suzuki", "Swift", "")
	if err != nil {
		t.Fatalf("find after update failed: %v", err)
	}
	if id2 != id {
		t.Fatalf("expected update to reuse row %d, got %d", id, id2)
	}

	car, err := db.GetCarByID(id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if car == nil {
		t.Fatalf("expected car row")
	}
	if car.ExShowroomPrice != 720000 {
		t.Fatalf("expected updated price 720000, got %v", car.ExShowroomPrice)
	}
	if car.Source != "CarDekho, CarWale" {
		t.Fatalf("unexpected source field: %q", car.Source)
	}
	if len(car.ImageURLs) != 1 || car.ImageURLs[0] != entry.ImageURL {
		t.Fatalf("unexpected image urls: %v", car.ImageURLs)
	}
}

func TestListCarsFilters(t *testing.T) {
	db := newTestDatabase(t)

	entries := []*models.AggregatedCarEntry{
		{Brand: "Hyundai", Model: "Creta", Year: 2024, FuelType: "Petrol", BodyType: "SUV", ExShowroomPrice: 1100000},
		{Brand: "Hyundai", Model: "i20", Year: 2024, FuelType: "Petrol", BodyType: "Hatchback", ExShowroomPrice: 750000},
		{Brand: "Tata", Model: "Nexon EV", Year: 2024, FuelType: "Electric", BodyType: "SUV", ExShowroomPrice: 1450000},
	}
	for _, e := range entries {
		if err := db.UpsertAggregatedCar(e); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	cars, err := db.ListCars(CarFilter{Brand: "Hyundai"})
	if err != nil {
		t.Fatalf("list by brand failed: %v", err)
	}
	if len(cars) != 2 {
		t.Fatalf("expected 2 Hyundai cars, got %d", len(cars))
	}

	cars, err = db.ListCars(CarFilter{FuelType: "Electric"})
	if err != nil {
		t.Fatalf("list by fuel failed: %v", err)
	}
	if len(cars) != 1 || cars[0].Model != "Nexon EV" {
		t.Fatalf("expected Nexon EV, got %+v", cars)
	}

	cars, err = db.ListCars(CarFilter{Search: "nex"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(cars) != 1 || cars[0].Model != "Nexon EV" {
		t.Fatalf("expected search to match Nexon EV, got %+v", cars)
	}

	cars, err = db.ListCars(CarFilter{MinPrice: 1000000, MaxPrice: 1200000})
	if err != nil {
		t.Fatalf("price filter failed: %v", err)
	}
	if len(cars) != 1 || cars[0].Model != "Creta" {
		t.Fatalf("expected price filter to match Creta, got %+v", cars)
	}

	cars, err = db.ListCars(CarFilter{Limit: 2})
	if err != nil {
		t.Fatalf("limit failed: %v", err)
	}
	if len(cars) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(cars))
	}
}

func TestGetCarByIDMissing(t *testing.T) {
	db := newTestDatabase(t)

	car, err := db.GetCarByID(9999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if car != nil {
		t.Fatalf("expected nil for missing car, got %+v", car)
	}
}

func TestPriceObservationRecency(t *testing.T) {
	db := newTestDatabase(t)

	fresh := &models.PriceObservation{
		Brand: "Maruti Suzuki", Model: "Swift", Price: 650000,
		Source: "CarDekho", ScrapedAt: time.Now().Add(-2 * time.Hour),
	}
	stale := &models.PriceObservation{
		Brand: "Maruti Suzuki", Model: "Swift", Price: 600000,
		Source: "CarWale", ScrapedAt: time.Now().Add(-10 * 24 * time.Hour),
	}
	for _, obs := range []*models.PriceObservation{fresh, stale} {
		if err := db.InsertPriceObservation(obs); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	cutoff := time.Now().Add(-7 * 24 * time.Hour)
	observations, err := db.GetRecentPriceObservations("Maruti", "Swift", cutoff)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(observations) != 1 {
		t.Fatalf("expected 1 fresh observation, got %d", len(observations))
	}
	if observations[0].Price != 650000 {
		t.Fatalf("expected fresh price 650000, got %v", observations[0].Price)
	}
}

func TestPriceObservationCaseInsensitiveMatch(t *testing.T) {
	db := newTestDatabase(t)

	obs := &models.PriceObservation{
		Brand: "Hyundai", Model: "Creta", Price: 1100000, Source: "CarWale",
	}
	if err := db.InsertPriceObservation(obs); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	cutoff := time.Now().Add(-time.Hour)
	observations, err := db.GetRecentPriceObservations("hyundai", "CRETA", cutoff)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(observations) != 1 {
		t.Fatalf("expected case-insensitive match, got %d rows", len(observations))
	}
}

func TestValuationHistoryRoundTrip(t *testing.T) {
	db := newTestDatabase(t)

	record := &models.ValuationRecord{
		CarBrand:       "Maruti Suzuki",
		CarModel:       "Swift",
		CarYear:        2022,
		FuelType:       "Petrol",
		EstimatedValue: 685000,
		MinValue:       650000,
		MaxValue:       720000,
		DemandScore:    0.56,
		Sources: []models.PriceSource{
			{Name: "CarDekho", Price: 650000, URL: "https://www.cardekho.com/swift"},
			{Name: "CarWale", Price: 720000, URL: "https://www.carwale.com/swift"},
		},
	}
	if err := db.InsertValuation(record); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	records, err := db.ListValuations(10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0]
	if got.CarBrand != record.CarBrand || got.CarModel != record.CarModel {
		t.Fatalf("unexpected car: %s %s", got.CarBrand, got.CarModel)
	}
	if got.EstimatedValue != 685000 || got.DemandScore != 0.56 {
		t.Fatalf("unexpected numbers: %+v", got)
	}
	if len(got.Sources) != 2 || got.Sources[0].Name != "CarDekho" {
		t.Fatalf("sources did not round-trip: %+v", got.Sources)
	}
}

func TestSessionTokenResolution(t *testing.T) {
	db := newTestDatabase(t)

	if err := db.CreateSession("tok-valid", "user-1", nil); err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	expired := time.Now().Add(-time.Hour)
	if err := db.CreateSession("tok-expired", "user-2", &expired); err != nil {
		t.Fatalf("create expired session failed: %v", err)
	}

	userID, err := db.GetUserIDBySessionToken("tok-valid")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("expected user-1, got %q", userID)
	}

	userID, err = db.GetUserIDBySessionToken("tok-expired")
	if err != nil {
		t.Fatalf("resolve expired failed: %v", err)
	}
	if userID != "" {
		t.Fatalf("expected empty user for expired token, got %q", userID)
	}

	userID, err = db.GetUserIDBySessionToken("tok-unknown")
	if err != nil {
		t.Fatalf("resolve unknown failed: %v", err)
	}
	if userID != "" {
		t.Fatalf("expected empty user for unknown token, got %q", userID)
	}
}
