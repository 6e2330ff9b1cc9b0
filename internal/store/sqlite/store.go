// Package sqlite implements domain.PropertyStore on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/davidbz/propwise/internal/domain"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// Config holds configuration for SQLite.
type Config struct {
	// Path is the database file, or ":memory:".
	Path string `env:"SQLITE_PATH" envDefault:"propwise.db"`
}

// Store is a SQLite-backed implementation of domain.PropertyStore.
type Store struct {
	db    *sql.DB
	clock domain.Clock
}

// New opens the database and creates the schema.
func New(cfg Config, clock domain.Clock) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}
	if clock == nil {
		clock = domain.SystemClock{}
	}

	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	// One connection: writes serialize anyway and ":memory:" is per connection.
	db.SetMaxOpenConns(1)

	store := &Store{db: db, clock: clock}

	if err = store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS properties (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		building_name    TEXT NOT NULL,
		property_type    TEXT NOT NULL,
		address          TEXT NOT NULL DEFAULT '',
		city             TEXT NOT NULL,
		city_key         TEXT NOT NULL,
		locality         TEXT NOT NULL DEFAULT '',
		price            REAL NOT NULL,
		area_sqft        REAL NOT NULL DEFAULT 0,
		bedrooms         INTEGER NOT NULL DEFAULT 0,
		description      TEXT NOT NULL DEFAULT '',
		source_url       TEXT NOT NULL DEFAULT '',
		embedding_id     TEXT NOT NULL DEFAULT '',
		investment_score REAL,
		created_at       INTEGER NOT NULL,
		updated_at       INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_properties_city_created ON properties(city_key, created_at);
	CREATE INDEX IF NOT EXISTS idx_properties_type ON properties(property_type);

	CREATE TABLE IF NOT EXISTS investment_analyses (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		property_id       INTEGER NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
		roi_5year         REAL NOT NULL,
		roi_10year        REAL NOT NULL,
		appreciation_rate REAL NOT NULL,
		rental_yield      REAL NOT NULL,
		risk_score        REAL NOT NULL,
		investment_score  REAL NOT NULL,
		recommendation    TEXT NOT NULL,
		analysis_text     TEXT NOT NULL DEFAULT '',
		created_at        INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_property ON investment_analyses(property_id, created_at);

	CREATE TABLE IF NOT EXISTS search_history (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		query          TEXT NOT NULL,
		city_key       TEXT NOT NULL DEFAULT '',
		property_types TEXT NOT NULL DEFAULT '',
		max_price      REAL,
		results_count  INTEGER NOT NULL DEFAULT 0,
		searched_at    INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_search_history_city ON search_history(city_key, searched_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

const propertyColumns = `id, building_name, property_type, address, city, locality, price, area_sqft,
	bedrooms, description, source_url, embedding_id, investment_score, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (*domain.PropertyRecord, error) {
	var (
		rec                  domain.PropertyRecord
		score                sql.NullFloat64
		createdAt, updatedAt int64
	)

	err := row.Scan(&rec.ID, &rec.BuildingName, &rec.PropertyType, &rec.Address, &rec.City, &rec.Locality,
		&rec.Price, &rec.AreaSqft, &rec.Bedrooms, &rec.Description, &rec.SourceURL, &rec.EmbeddingID,
		&score, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if score.Valid {
		v := score.Float64
		rec.InvestmentScore = &v
	}
	rec.CreatedAt = time.Unix(createdAt, 0).UTC()
	rec.UpdatedAt = time.Unix(updatedAt, 0).UTC()

	return &rec, nil
}

// GetProperty returns a listing or an error matching domain.ErrNotFound.
func (s *Store) GetProperty(ctx context.Context, id int64) (*domain.PropertyRecord, error) {
	rec, err := scanProperty(s.db.QueryRowContext(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("get property", fmt.Errorf("property %d", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query property: %w", err)
	}
	return rec, nil
}

// UpsertProperty inserts record when its ID is zero, or replaces the row with that ID.
func (s *Store) UpsertProperty(ctx context.Context, record *domain.PropertyRecord) (int64, error) {
	if record == nil {
		return 0, errors.New("record cannot be nil")
	}
	if strings.TrimSpace(record.BuildingName) == "" || strings.TrimSpace(record.City) == "" {
		return 0, errors.New("building name and city are required")
	}

	now := s.clock.Now().Unix()
	createdAt := now
	if !record.CreatedAt.IsZero() {
		createdAt = record.CreatedAt.Unix()
	}

	var score sql.NullFloat64
	if record.InvestmentScore != nil {
		score = sql.NullFloat64{Float64: *record.InvestmentScore, Valid: true}
	}

	args := []any{
		record.BuildingName, record.PropertyType, record.Address, record.City, domain.NormalizeCity(record.City),
		record.Locality, record.Price, record.AreaSqft, record.Bedrooms, record.Description, record.SourceURL,
		record.EmbeddingID, score, createdAt, now,
	}

	if record.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO properties (building_name, property_type, address, city, city_key, locality, price,
			 area_sqft, bedrooms, description, source_url, embedding_id, investment_score, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert property: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to read property id: %w", err)
		}
		return id, nil
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO properties (id, building_name, property_type, address, city, city_key, locality, price,
		 area_sqft, bedrooms, description, source_url, embedding_id, investment_score, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			building_name = excluded.building_name,
			property_type = excluded.property_type,
			address = excluded.address,
			city = excluded.city,
			city_key = excluded.city_key,
			locality = excluded.locality,
			price = excluded.price,
			area_sqft = excluded.area_sqft,
			bedrooms = excluded.bedrooms,
			description = excluded.description,
			source_url = excluded.source_url,
			updated_at = excluded.updated_at`,
		append([]any{record.ID}, args...)...)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert property %d: %w", record.ID, err)
	}
	return record.ID, nil
}

// ListProperties pages through listings ordered by id.
func (s *Store) ListProperties(ctx context.Context, afterID int64, limit int) ([]domain.PropertyRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id > ? ORDER BY id LIMIT ?`, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	var records []domain.PropertyRecord
	for rows.Next() {
		rec, scanErr := scanProperty(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan property: %w", scanErr)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// SetEmbeddingID writes back the embedding id of an indexed property.
func (s *Store) SetEmbeddingID(ctx context.Context, id int64, embeddingID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE properties SET embedding_id = ?, updated_at = ? WHERE id = ?`,
		embeddingID, s.clock.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to set embedding id: %w", err)
	}
	return requireRow(res, "set embedding id", id)
}

// SaveAnalysis stores an analysis and writes its investment score back to the property.
func (s *Store) SaveAnalysis(ctx context.Context, analysis *domain.InvestmentAnalysis) error {
	if analysis == nil {
		return errors.New("analysis cannot be nil")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := s.clock.Now().Unix()

	res, err := tx.ExecContext(ctx,
		`UPDATE properties SET investment_score = ?, updated_at = ? WHERE id = ?`,
		analysis.InvestmentScore, now, analysis.PropertyID)
	if err != nil {
		return fmt.Errorf("failed to update investment score: %w", err)
	}
	if err = requireRow(res, "save analysis", analysis.PropertyID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO investment_analyses (property_id, roi_5year, roi_10year, appreciation_rate, rental_yield,
		 risk_score, investment_score, recommendation, analysis_text, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		analysis.PropertyID, analysis.ROI5Year, analysis.ROI10Year, analysis.AppreciationRate,
		analysis.RentalYield, analysis.RiskScore, analysis.InvestmentScore, string(analysis.Recommendation),
		analysis.Narrative, now)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LatestAnalysis returns the most recent stored analysis of a property.
func (s *Store) LatestAnalysis(ctx context.Context, propertyID int64) (*domain.InvestmentAnalysis, error) {
	var (
		a              domain.InvestmentAnalysis
		recommendation string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT property_id, roi_5year, roi_10year, appreciation_rate, rental_yield, risk_score,
		 investment_score, recommendation, analysis_text
		 FROM investment_analyses WHERE property_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		propertyID,
	).Scan(&a.PropertyID, &a.ROI5Year, &a.ROI10Year, &a.AppreciationRate, &a.RentalYield, &a.RiskScore,
		&a.InvestmentScore, &recommendation, &a.Narrative)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("latest analysis", fmt.Errorf("no analysis for property %d", propertyID))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis: %w", err)
	}
	a.Recommendation = domain.Recommendation(recommendation)
	return &a, nil
}

// RecordSearch stores a served search.
func (s *Store) RecordSearch(ctx context.Context, entry *domain.SearchHistoryEntry) error {
	if entry == nil {
		return errors.New("entry cannot be nil")
	}

	searchedAt := entry.SearchedAt
	if searchedAt.IsZero() {
		searchedAt = s.clock.Now()
	}

	var maxPrice sql.NullFloat64
	if entry.MaxPrice != nil {
		maxPrice = sql.NullFloat64{Float64: *entry.MaxPrice, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO search_history (query, city_key, property_types, max_price, results_count, searched_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Query, domain.NormalizeCity(entry.City), strings.Join(entry.PropertyTypes, ","), maxPrice,
		entry.ResultsCount, searchedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	return nil
}

func requireRow(res sql.Result, op string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return domain.NotFoundError(op, fmt.Errorf("property %d", id))
	}
	return nil
}
