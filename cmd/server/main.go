// AutoVault Valuation & Scraping API
// @title AutoVault API
// @version 1.0
// @description Car catalog scraping and market-valuation API for the Indian car market
// @host localhost:8080
// @BasePath /

package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"

	_ "autovault/docs"
	"autovault/internal/config"
	"autovault/internal/database"
	"autovault/internal/handlers"
	"autovault/internal/middleware"
	"autovault/internal/search"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.NewDatabase(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	// Firecrawl when a key is configured; headless-browser fallback for the
	// scrape path otherwise. Valuation refuses to run without the key.
	var searcher search.Provider
	if cfg.FirecrawlAPIKey != "" {
		searcher = search.NewFirecrawlClient(cfg.FirecrawlAPIKey)
	} else {
		log.Println("FIRECRAWL_API_KEY not set, scrape path will use the browser fallback")
	}
	browserProvider := search.NewBrowserProvider()
	defer browserProvider.Close()

	// Initialize Gin router
	r := gin.Default()

	// Configure trusted proxies for Cloudflare Tunnels
	r.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
		"172.16.0.0/12",  // Docker networks
		"10.0.0.0/8",     // Private networks
		"192.168.0.0/16", // Private networks
	})

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.Use(middleware.SecurityHeaders())

	valuationHandler := handlers.NewValuationHandler(db, searcher, cfg)
	scrapeHandler := handlers.NewScrapeHandler(db, searcher, browserProvider, cfg)
	carsHandler := handlers.NewCarsHandler(db)

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// The scrape and valuation paths fan out to external services, so they
	// sit behind a per-IP rate limit
	limiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	// API routes
	api := r.Group("/api")
	{
		api.POST("/valuation", limiter.Middleware(), valuationHandler.GetValuation)
		api.GET("/valuations", valuationHandler.GetValuationHistory)
		api.POST("/scrape", limiter.Middleware(), scrapeHandler.ScrapeCars)
		api.GET("/cars", carsHandler.GetCars)
		api.GET("/cars/:id", carsHandler.GetCarByID)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
