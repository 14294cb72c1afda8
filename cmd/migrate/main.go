package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"autovault/internal/catalog"
)

const defaultDBPath = "./data/autovault.db"

func main() {
	fmt.Println("🗃️  AutoVault Database Migration Tool")
	fmt.Println("=====================================")

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/migrate/main.go <command>")
		fmt.Println("Commands:")
		fmt.Println("  init     - Initialize database with current schema")
		fmt.Println("  seed     - Seed the catalog with known brand/model rows")
		fmt.Println("  status   - Show database status")
		os.Exit(1)
	}

	command := os.Args[1]

	// Ensure data directory exists
	if err := os.MkdirAll("./data", 0755); err != nil {
		log.Fatal("Failed to create data directory:", err)
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Enable foreign keys and WAL mode
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		log.Fatal("Failed to enable foreign keys:", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		log.Fatal("Failed to enable WAL mode:", err)
	}

	switch command {
	case "init":
		initializeDatabase(db)
	case "seed":
		initializeDatabase(db)
		seedCatalog(db)
	case "status":
		showStatus(db, dbPath)
	default:
		log.Fatal("Unknown command:", command)
	}
}

func initializeDatabase(db *sql.DB) {
	fmt.Println("Initializing database with current schema...")

	schema, err := os.ReadFile("internal/database/schema.sql")
	if err != nil {
		log.Fatal("Failed to read schema file:", err)
	}

	if _, err := db.Exec(string(schema)); err != nil {
		log.Fatalf("Failed to execute schema: %v", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO database_metadata (key, value) VALUES
		('schema_version', '1.0'),
		('created_at', datetime('now'))`); err != nil {
		log.Fatal("Failed to write metadata:", err)
	}

	fmt.Println("✅ Database initialized successfully!")
}

// seedCatalog inserts one placeholder row per known model so the catalog API
// has content before any scrape has run. Existing rows are left alone.
func seedCatalog(db *sql.DB) {
	fmt.Println("Seeding catalog from static brand/model data...")

	stmt, err := db.Prepare(`
		INSERT INTO cars (brand, model, year, fuel_type, source)
		SELECT ?, ?, ?, 'Petrol', 'AutoVault'
		WHERE NOT EXISTS (SELECT 1 FROM cars WHERE brand = ? AND model = ?)
	`)
	if err != nil {
		log.Fatal("Failed to prepare seed statement:", err)
	}
	defer stmt.Close()

	year := time.Now().Year()
	seeded := 0
	for brand, modelList := range catalog.Models {
		for _, model := range modelList {
			result, err := stmt.Exec(brand, model, year, brand, model)
			if err != nil {
				log.Printf("Warning: failed to seed %s %s: %v", brand, model, err)
				continue
			}
			if n, _ := result.RowsAffected(); n > 0 {
				seeded++
			}
		}
	}

	fmt.Printf("✅ Seeded %d catalog rows!\n", seeded)
}

func showStatus(db *sql.DB, dbPath string) {
	fmt.Println("Database Status Report")
	fmt.Println("======================")

	var version string
	err := db.QueryRow("SELECT value FROM database_metadata WHERE key = 'schema_version'").Scan(&version)
	if err != nil {
		if err == sql.ErrNoRows {
			fmt.Println("❌ No schema version found - database needs initialization")
		} else {
			fmt.Printf("❌ Error checking schema version: %v\n", err)
		}
		return
	}

	fmt.Printf("📊 Current Schema Version: %s\n", version)

	tables := []string{"cars", "scraped_prices", "valuations", "sessions"}
	for _, table := range tables {
		var count int
		err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count)
		if err != nil {
			fmt.Printf("❌ Error counting %s: %v\n", table, err)
		} else {
			fmt.Printf("📋 %s: %d records\n", table, count)
		}
	}

	if stat, err := os.Stat(dbPath); err == nil {
		fmt.Printf("💾 Database size: %.2f KB\n", float64(stat.Size())/1024)
	}

	fmt.Println("✅ Status check complete!")
}
