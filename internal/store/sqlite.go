package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andreiashu/geosearch"

	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS dataset_metadata (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    version TEXT NOT NULL DEFAULT '',
    last_updated TEXT NOT NULL DEFAULT '',
    source TEXT NOT NULL DEFAULT '',
    imported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS cities (
    position INTEGER PRIMARY KEY,
    id TEXT NOT NULL,
    name TEXT NOT NULL,
    country_code TEXT NOT NULL,
    latitude REAL,
    longitude REAL,
    population INTEGER,
    region TEXT
);

CREATE INDEX IF NOT EXISTS idx_cities_country ON cities(country_code);

CREATE TABLE IF NOT EXISTS skipped_entries (
    idx INTEGER PRIMARY KEY,
    reason TEXT NOT NULL
);
`

// SQLiteStore keeps one dataset in a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and applies
// the schema. Use ":memory:" for a throwaway store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases alive and serialises
	// writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveDataset replaces the stored dataset in a single transaction.
func (s *SQLiteStore) SaveDataset(ctx context.Context, ds *geosearch.Dataset) (err error) {
	if ds == nil {
		return geosearch.ErrNoDataset
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM cities"); err != nil {
		return fmt.Errorf("failed to clear cities: %w", err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM skipped_entries"); err != nil {
		return fmt.Errorf("failed to clear skipped entries: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO dataset_metadata (id, version, last_updated, source, imported_at)
		VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			version = excluded.version,
			last_updated = excluded.last_updated,
			source = excluded.source,
			imported_at = excluded.imported_at
	`, ds.Metadata.Version, ds.Metadata.LastUpdated, ds.Metadata.Source); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cities (position, id, name, country_code, latitude, longitude, population, region)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range rowsFromDataset(ds) {
		if _, err = stmt.ExecContext(ctx,
			r.position, r.id, r.name, r.countryCode,
			nullFloat64(r.latitude), nullFloat64(r.longitude),
			nullInt64(r.population), nullString(r.region),
		); err != nil {
			return fmt.Errorf("failed to insert city %q: %w", r.id, err)
		}
	}

	for _, sk := range skippedFromDataset(ds) {
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO skipped_entries (idx, reason) VALUES (?, ?)", sk.index, sk.reason,
		); err != nil {
			return fmt.Errorf("failed to insert skipped entry %d: %w", sk.index, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// LoadDataset reads the stored dataset back in its original order.
func (s *SQLiteStore) LoadDataset(ctx context.Context) (*geosearch.Dataset, error) {
	ds := &geosearch.Dataset{}

	err := s.db.QueryRowContext(ctx,
		"SELECT version, last_updated, source FROM dataset_metadata WHERE id = 1",
	).Scan(&ds.Metadata.Version, &ds.Metadata.LastUpdated, &ds.Metadata.Source)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT position, id, name, country_code, latitude, longitude, population, region
		FROM cities
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			r        row
			lat, lng sql.NullFloat64
			pop      sql.NullInt64
			region   sql.NullString
		)
		if err := rows.Scan(&r.position, &r.id, &r.name, &r.countryCode,
			&lat, &lng, &pop, &region); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		if lat.Valid && lng.Valid {
			r.latitude, r.longitude = &lat.Float64, &lng.Float64
		}
		if pop.Valid {
			r.population = &pop.Int64
		}
		if region.Valid {
			r.region = &region.String
		}
		ds.Cities = append(ds.Cities, r.entry())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cities: %w", err)
	}

	skipped, err := s.db.QueryContext(ctx, "SELECT idx, reason FROM skipped_entries ORDER BY idx ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query skipped entries: %w", err)
	}
	defer func() { _ = skipped.Close() }()

	for skipped.Next() {
		var sk skippedRow
		if err := skipped.Scan(&sk.index, &sk.reason); err != nil {
			return nil, fmt.Errorf("failed to scan skipped entry: %w", err)
		}
		ds.Skipped = append(ds.Skipped, sk.entry())
	}
	if err := skipped.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate skipped entries: %w", err)
	}
	return ds, nil
}

func nullFloat64(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
