package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/andreiashu/geosearch"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS dataset_metadata (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    version TEXT NOT NULL DEFAULT '',
    last_updated TEXT NOT NULL DEFAULT '',
    source TEXT NOT NULL DEFAULT '',
    imported_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS cities (
    position INTEGER PRIMARY KEY,
    id TEXT NOT NULL,
    name TEXT NOT NULL,
    country_code TEXT NOT NULL,
    latitude DOUBLE PRECISION,
    longitude DOUBLE PRECISION,
    population BIGINT,
    region TEXT
);

CREATE INDEX IF NOT EXISTS idx_cities_country ON cities(country_code);

CREATE TABLE IF NOT EXISTS skipped_entries (
    idx INTEGER PRIMARY KEY,
    reason TEXT NOT NULL
);
`

var cityColumns = []string{
	"position", "id", "name", "country_code", "latitude", "longitude", "population", "region",
}

// PostgresSource reads and writes the dataset in a PostgreSQL database.
type PostgresSource struct {
	db *pgxpool.Pool
}

// NewPostgresSource connects to connString, verifies the connection and
// applies the schema.
func NewPostgresSource(ctx context.Context, connString string) (*PostgresSource, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &PostgresSource{db: pool}, nil
}

// Close releases the connection pool.
func (p *PostgresSource) Close() error {
	p.db.Close()
	return nil
}

// SaveDataset replaces the stored dataset, bulk loading cities with COPY.
func (p *PostgresSource) SaveDataset(ctx context.Context, ds *geosearch.Dataset) error {
	if ds == nil {
		return geosearch.ErrNoDataset
	}

	return pgx.BeginFunc(ctx, p.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "TRUNCATE cities, skipped_entries"); err != nil {
			return fmt.Errorf("failed to clear cities: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO dataset_metadata (id, version, last_updated, source, imported_at)
			VALUES (1, $1, $2, $3, NOW())
			ON CONFLICT (id) DO UPDATE SET
				version = EXCLUDED.version,
				last_updated = EXCLUDED.last_updated,
				source = EXCLUDED.source,
				imported_at = EXCLUDED.imported_at
		`, ds.Metadata.Version, ds.Metadata.LastUpdated, ds.Metadata.Source); err != nil {
			return fmt.Errorf("failed to write metadata: %w", err)
		}

		rows := rowsFromDataset(ds)
		_, err := tx.CopyFrom(ctx, pgx.Identifier{"cities"}, cityColumns,
			pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
				r := rows[i]
				return []any{
					int32(r.position), r.id, r.name, r.countryCode,
					r.latitude, r.longitude, r.population, r.region,
				}, nil
			}))
		if err != nil {
			return fmt.Errorf("failed to copy cities: %w", err)
		}

		skipped := skippedFromDataset(ds)
		_, err = tx.CopyFrom(ctx, pgx.Identifier{"skipped_entries"}, []string{"idx", "reason"},
			pgx.CopyFromSlice(len(skipped), func(i int) ([]any, error) {
				return []any{int32(skipped[i].index), skipped[i].reason}, nil
			}))
		if err != nil {
			return fmt.Errorf("failed to copy skipped entries: %w", err)
		}
		return nil
	})
}

// LoadDataset reads the stored dataset in its original order.
func (p *PostgresSource) LoadDataset(ctx context.Context) (*geosearch.Dataset, error) {
	ds := &geosearch.Dataset{}

	err := p.db.QueryRow(ctx,
		"SELECT version, last_updated, source FROM dataset_metadata WHERE id = 1",
	).Scan(&ds.Metadata.Version, &ds.Metadata.LastUpdated, &ds.Metadata.Source)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	rows, err := p.db.Query(ctx, `
		SELECT position, id, name, country_code, latitude, longitude, population, region
		FROM cities
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			r        row
			position int32
		)
		if err := rows.Scan(&position, &r.id, &r.name, &r.countryCode,
			&r.latitude, &r.longitude, &r.population, &r.region); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		r.position = int(position)
		ds.Cities = append(ds.Cities, r.entry())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cities: %w", err)
	}

	skipped, err := p.db.Query(ctx, "SELECT idx, reason FROM skipped_entries ORDER BY idx ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query skipped entries: %w", err)
	}
	defer skipped.Close()

	for skipped.Next() {
		var (
			sk  skippedRow
			idx int32
		)
		if err := skipped.Scan(&idx, &sk.reason); err != nil {
			return nil, fmt.Errorf("failed to scan skipped entry: %w", err)
		}
		sk.index = int(idx)
		ds.Skipped = append(ds.Skipped, sk.entry())
	}
	if err := skipped.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate skipped entries: %w", err)
	}
	return ds, nil
}
