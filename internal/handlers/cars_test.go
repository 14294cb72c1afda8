package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"autovault/internal/database"
	"autovault/internal/models"
)

func carsRouter(db *database.Database) *gin.Engine {
	h := NewCarsHandler(db)
	r := gin.New()
	r.GET("/api/cars", h.GetCars)
	r.GET("/api/cars/:id", h.GetCarByID)
	return r
}

func seedCatalogCars(t *testing.T, db *database.Database) {
	t.Helper()
	entries := []*models.AggregatedCarEntry{
		{Brand: "Maruti Suzuki", Model: "Swift", Year: 2024, FuelType: "Petrol", BodyType: "Hatchback", ExShowroomPrice: 650000},
		{Brand: "Tata", Model: "Nexon EV", Year: 2024, FuelType: "Electric", BodyType: "SUV", ExShowroomPrice: 1450000},
	}
	for _, e := range entries {
		if err := db.UpsertAggregatedCar(e); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
}

func TestGetCarsWithFilters(t *testing.T) {
	db := newTestDB(t)
	seedCatalogCars(t, db)
	r := carsRouter(db)

	rec := performJSONRequest(r, http.MethodGet, "/api/cars?fuel_type=Electric", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Success bool          `json:"success"`
		Cars    []*models.Car `json:"cars"`
		Count   int           `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || resp.Count != 1 || resp.Cars[0].Model != "Nexon EV" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestGetCarByIDRoundTrip(t *testing.T) {
	db := newTestDB(t)
	seedCatalogCars(t, db)
	r := carsRouter(db)

	id, exists, err := db.FindCarID("Maruti Suzuki", "Swift", "")
	if err != nil || !exists {
		t.Fatalf("expected seeded Swift: exists=%v err=%v", exists, err)
	}

	rec := performJSONRequest(r, http.MethodGet, fmt.Sprintf("/api/cars/%d", id), nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Success bool        `json:"success"`
		Car     *models.Car `json:"car"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || resp.Car == nil || resp.Car.Model != "Swift" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestGetCarByIDErrors(t *testing.T) {
	db := newTestDB(t)
	r := carsRouter(db)

	if rec := performJSONRequest(r, http.MethodGet, "/api/cars/not-a-number", nil, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", rec.Code)
	}
	if rec := performJSONRequest(r, http.MethodGet, "/api/cars/9999", nil, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing car, got %d", rec.Code)
	}
}
