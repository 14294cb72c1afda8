package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"autovault/internal/database"
	"autovault/internal/util"
)

// CarsHandler serves catalog reads
type CarsHandler struct {
	db *database.Database
}

// NewCarsHandler creates a catalog read handler
func NewCarsHandler(db *database.Database) *CarsHandler {
	return &CarsHandler{db: db}
}

// GetCars godoc
// @Summary List catalog cars
// @Description Returns catalog rows with optional brand/fuel/body/price filters, free-text search, and offset pagination
// @Tags cars
// @Produce json
// @Param brand query string false "Exact brand"
// @Param fuel_type query string false "Exact fuel type"
// @Param body_type query string false "Exact body type"
// @Param search query string false "Substring match on brand or model"
// @Param min_price query number false "Minimum ex-showroom price"
// @Param max_price query number false "Maximum ex-showroom price"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} map[string]interface{}
// @Router /api/cars [get]
func (h *CarsHandler) GetCars(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	minPrice, _ := strconv.ParseFloat(c.DefaultQuery("min_price", "0"), 64)
	maxPrice, _ := strconv.ParseFloat(c.DefaultQuery("max_price", "0"), 64)

	filter := database.CarFilter{
		Brand:    c.Query("brand"),
		FuelType: c.Query("fuel_type"),
		BodyType: c.Query("body_type"),
		Search:   c.Query("search"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Limit:    limit,
		Offset:   offset,
	}

	cars, err := h.db.ListCars(filter)
	if err != nil {
		util.SafeErrorResponse(c, http.StatusInternalServerError, "Failed to load cars", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cars":    cars,
		"count":   len(cars),
	})
}

// GetCarByID godoc
// @Summary Get one catalog car
// @Tags cars
// @Produce json
// @Param id path int true "Car ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/cars/{id} [get]
func (h *CarsHandler) GetCarByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid car ID",
		})
		return
	}

	car, err := h.db.GetCarByID(id)
	if err != nil {
		util.SafeErrorResponse(c, http.StatusInternalServerError, "Failed to load car", err)
		return
	}
	if car == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Car not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"car":     car,
	})
}
