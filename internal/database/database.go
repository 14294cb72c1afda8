package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"autovault/internal/models"
)

type Database struct {
	db *sql.DB
}

// NewDatabase creates a new database connection
func NewDatabase(dbPath string) (*Database, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database connection with SQLite optimizations
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_cache_size=10000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(1) // SQLite works best with single connection
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	database := &Database{db: db}

	// Initialize schema
	if err := database.initializeSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}

// initializeSchema creates tables and indexes
func (d *Database) initializeSchema() error {
	schemaPath := filepath.Join("internal", "database", "schema.sql")
	schemaFile, err := os.Open(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to open schema file: %w", err)
	}
	defer schemaFile.Close()

	schema, err := io.ReadAll(schemaFile)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	if _, err := d.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// Car catalog methods

// FindCarID looks for an existing catalog row matching brand+model+variant,
// used to decide between update and insert. No row is not an error.
func (d *Database) FindCarID(brand, model, variant string) (int, bool, error) {
	query := `SELECT id FROM cars WHERE brand = ? AND model = ? AND (variant = ? OR (variant IS NULL AND ? = ''))`

	var id int
	err := d.db.QueryRow(query, brand, model, variant, variant).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to query car: %w", err)
	}
	return id, true, nil
}

// UpsertAggregatedCar writes one aggregated scrape result into the catalog:
// an update when a (brand, model, variant) row already exists, an insert
// otherwise. No multi-row transactional guarantee is needed or provided.
func (d *Database) UpsertAggregatedCar(entry *models.AggregatedCarEntry) error {
	id, exists, err := d.FindCarID(entry.Brand, entry.Model, entry.Variant)
	if err != nil {
		return err
	}

	imageURLs, err := json.Marshal(entry.ImageURLs)
	if err != nil {
		return fmt.Errorf("failed to encode image URLs: %w", err)
	}
	source := joinSources(entry.Sources)
	now := time.Now()

	if exists {
		query := `
			UPDATE cars SET
				year = ?, fuel_type = ?, ex_showroom_price = ?, body_type = ?,
				transmission = ?, engine_cc = ?, mileage = ?, image_url = ?,
				image_urls = ?, source = ?, source_url = ?, scraped_at = ?, updated_at = ?
			WHERE id = ?
		`
		_, err = d.db.Exec(query, entry.Year, entry.FuelType, nullFloat(entry.ExShowroomPrice),
			nullString(entry.BodyType), nullString(entry.Transmission), nullInt(entry.EngineCC),
			nullString(entry.Mileage), nullString(entry.ImageURL), string(imageURLs),
			source, nullString(entry.SourceURL), now, now, id)
		if err != nil {
			return fmt.Errorf("failed to update car: %w", err)
		}
		return nil
	}

	query := `
		INSERT INTO cars (brand, model, variant, year, fuel_type, ex_showroom_price,
			body_type, transmission, engine_cc, mileage, image_url, image_urls,
			source, source_url, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = d.db.Exec(query, entry.Brand, entry.Model, nullString(entry.Variant), entry.Year,
		entry.FuelType, nullFloat(entry.ExShowroomPrice), nullString(entry.BodyType),
		nullString(entry.Transmission), nullInt(entry.EngineCC), nullString(entry.Mileage),
		nullString(entry.ImageURL), string(imageURLs), source, nullString(entry.SourceURL), now)
	if err != nil {
		return fmt.Errorf("failed to insert car: %w", err)
	}
	return nil
}

// CarFilter narrows ListCars results. Zero values mean "no filter".
type CarFilter struct {
	Brand    string
	FuelType string
	BodyType string
	Search   string
	MinPrice float64
	MaxPrice float64
	Limit    int
	Offset   int
}

// ListCars returns catalog rows matching the filter, newest first
func (d *Database) ListCars(filter CarFilter) ([]*models.Car, error) {
	query := `
		SELECT id, brand, model, variant, year, fuel_type, body_type, transmission,
		       mileage, engine_cc, ex_showroom_price, on_road_price, image_url,
		       image_urls, source, source_url, scraped_at, updated_at
		FROM cars WHERE 1=1
	`
	var args []interface{}

	if filter.Brand != "" {
		query += " AND brand = ?"
		args = append(args, filter.Brand)
	}
	if filter.FuelType != "" {
		query += " AND fuel_type = ?"
		args = append(args, filter.FuelType)
	}
	if filter.BodyType != "" {
		query += " AND body_type = ?"
		args = append(args, filter.BodyType)
	}
	if filter.Search != "" {
		query += " AND (brand LIKE ? OR model LIKE ?)"
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if filter.MinPrice > 0 {
		query += " AND ex_showroom_price >= ?"
		args = append(args, filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		query += " AND ex_showroom_price <= ?"
		args = append(args, filter.MaxPrice)
	}

	query += " ORDER BY updated_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}
	defer rows.Close()

	var cars []*models.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}

// GetCarByID returns one catalog row, or nil when it does not exist
func (d *Database) GetCarByID(id int) (*models.Car, error) {
	row := d.db.QueryRow(`
		SELECT id, brand, model, variant, year, fuel_type, body_type, transmission,
		       mileage, engine_cc, ex_showroom_price, on_road_price, image_url,
		       image_urls, source, source_url, scraped_at, updated_at
		FROM cars WHERE id = ?
	`, id)

	car, err := scanCar(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return car, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCar(row rowScanner) (*models.Car, error) {
	var car models.Car
	var variant, bodyType, transmission, mileage, imageURL, imageURLs, source, sourceURL sql.NullString
	var engineCC sql.NullInt64
	var exShowroom, onRoad sql.NullFloat64
	var scrapedAt, updatedAt sql.NullTime

	err := row.Scan(&car.ID, &car.Brand, &car.Model, &variant, &car.Year, &car.FuelType,
		&bodyType, &transmission, &mileage, &engineCC, &exShowroom, &onRoad,
		&imageURL, &imageURLs, &source, &sourceURL, &scrapedAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan car: %w", err)
	}

	car.Variant = variant.String
	car.BodyType = bodyType.String
	car.Transmission = transmission.String
	car.Mileage = mileage.String
	car.EngineCC = int(engineCC.Int64)
	car.ExShowroomPrice = exShowroom.Float64
	car.OnRoadPrice = onRoad.Float64
	car.ImageURL = imageURL.String
	car.Source = source.String
	car.SourceURL = sourceURL.String
	car.ScrapedAt = scrapedAt.Time
	car.UpdatedAt = updatedAt.Time

	if imageURLs.Valid && imageURLs.String != "" {
		if err := json.Unmarshal([]byte(imageURLs.String), &car.ImageURLs); err != nil {
			car.ImageURLs = nil // Tolerate legacy rows with malformed JSON
		}
	}

	return &car, nil
}

// Price observation log methods

// InsertPriceObservation appends one scraped price point to the log
func (d *Database) InsertPriceObservation(obs *models.PriceObservation) error {
	scrapedAt := obs.ScrapedAt
	if scrapedAt.IsZero() {
		scrapedAt = time.Now()
	}

	query := `
		INSERT INTO scraped_prices (brand, model, variant, year, price, fuel_type, source, source_url, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query, obs.Brand, obs.Model, nullString(obs.Variant), obs.Year,
		obs.Price, nullString(obs.FuelType), obs.Source, nullString(obs.SourceURL), scrapedAt)
	if err != nil {
		return fmt.Errorf("failed to insert price observation: %w", err)
	}
	return nil
}

// GetRecentPriceObservations returns logged prices for a brand/model newer
// than the given cutoff. Brand and model match case-insensitively and
// partially, newest first.
func (d *Database) GetRecentPriceObservations(brand, model string, since time.Time) ([]models.PriceObservation, error) {
	query := `
		SELECT id, brand, model, variant, year, price, fuel_type, source, source_url, scraped_at
		FROM scraped_prices
		WHERE brand LIKE ? COLLATE NOCASE AND model LIKE ? COLLATE NOCASE AND scraped_at >= ?
		ORDER BY scraped_at DESC
	`
	rows, err := d.db.Query(query, "%"+brand+"%", "%"+model+"%", since)
	if err != nil {
		return nil, fmt.Errorf("failed to query price observations: %w", err)
	}
	defer rows.Close()

	var observations []models.PriceObservation
	for rows.Next() {
		var obs models.PriceObservation
		var variant, fuelType, source, sourceURL sql.NullString
		var year sql.NullInt64

		err := rows.Scan(&obs.ID, &obs.Brand, &obs.Model, &variant, &year, &obs.Price,
			&fuelType, &source, &sourceURL, &obs.ScrapedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price observation: %w", err)
		}

		obs.Variant = variant.String
		obs.Year = int(year.Int64)
		obs.FuelType = fuelType.String
		obs.Source = source.String
		obs.SourceURL = sourceURL.String
		observations = append(observations, obs)
	}
	return observations, rows.Err()
}

// Valuation history methods

// InsertValuation appends one served valuation to the history
func (d *Database) InsertValuation(record *models.ValuationRecord) error {
	sources, err := json.Marshal(record.Sources)
	if err != nil {
		return fmt.Errorf("failed to encode valuation sources: %w", err)
	}

	query := `
		INSERT INTO valuations (user_id, car_brand, car_model, car_year, fuel_type,
			registration_number, estimated_value, min_value, max_value, demand_score, sources)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = d.db.Exec(query, nullString(record.UserID), record.CarBrand, record.CarModel,
		nullInt(record.CarYear), nullString(record.FuelType), nullString(record.RegistrationNumber),
		record.EstimatedValue, record.MinValue, record.MaxValue, record.DemandScore, string(sources))
	if err != nil {
		return fmt.Errorf("failed to insert valuation: %w", err)
	}
	return nil
}

// ListValuations returns the most recent valuation history rows
func (d *Database) ListValuations(limit int) ([]*models.ValuationRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := d.db.Query(`
		SELECT id, user_id, car_brand, car_model, car_year, fuel_type, registration_number,
		       estimated_value, min_value, max_value, demand_score, sources, created_at
		FROM valuations ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list valuations: %w", err)
	}
	defer rows.Close()

	var records []*models.ValuationRecord
	for rows.Next() {
		var record models.ValuationRecord
		var userID, fuelType, regNumber, sources sql.NullString
		var year sql.NullInt64

		err := rows.Scan(&record.ID, &userID, &record.CarBrand, &record.CarModel, &year,
			&fuelType, &regNumber, &record.EstimatedValue, &record.MinValue, &record.MaxValue,
			&record.DemandScore, &sources, &record.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan valuation: %w", err)
		}

		record.UserID = userID.String
		record.CarYear = int(year.Int64)
		record.FuelType = fuelType.String
		record.RegistrationNumber = regNumber.String
		if sources.Valid && sources.String != "" {
			_ = json.Unmarshal([]byte(sources.String), &record.Sources)
		}
		records = append(records, &record)
	}
	return records, rows.Err()
}

// Session methods

// GetUserIDBySessionToken resolves a bearer token to a user ID. An unknown or
// expired token returns an empty ID, not an error.
func (d *Database) GetUserIDBySessionToken(token string) (string, error) {
	query := `
		SELECT user_id FROM sessions
		WHERE token = ? AND (expires_at IS NULL OR expires_at > CURRENT_TIMESTAMP)
	`
	var userID string
	err := d.db.QueryRow(query, token).Scan(&userID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve session token: %w", err)
	}
	return userID, nil
}

// CreateSession stores a bearer-token to user mapping (used by tests and tooling)
func (d *Database) CreateSession(token, userID string, expiresAt *time.Time) error {
	_, err := d.db.Exec(`INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)`,
		token, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Helpers for nullable columns

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int) interface{} {
	if n == 0 {
		return nil
	}
	return n
}

func nullFloat(f float64) interface{} {
	if f == 0 {
		return nil
	}
	return f
}

func joinSources(sources []string) interface{} {
	if len(sources) == 0 {
		return nil
	}
	joined := sources[0]
	for _, s := range sources[1:] {
		joined += ", " + s
	}
	return joined
}
