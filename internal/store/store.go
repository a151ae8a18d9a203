// Package store persists city datasets in SQL databases so a service can
// start from an imported catalog instead of a JSON file.
//
// Both backends keep the dataset's entry order in a position column; the
// engine's ranking uses load order as its tie-break, so a round trip must
// not reorder entries. Entries the catalog will reject are stored as they
// are, and undecodable entries are kept in skipped_entries, so an engine
// built from a stored dataset reports the same drop count as one built from
// the original file.
package store

import (
	"context"
	"errors"

	"github.com/andreiashu/geosearch"
)

// ErrEmpty is returned by LoadDataset when nothing has been imported yet.
var ErrEmpty = errors.New("store: no dataset imported")

// Source loads a dataset for building an engine.
type Source interface {
	LoadDataset(ctx context.Context) (*geosearch.Dataset, error)
	Close() error
}

// Sink replaces the stored dataset.
type Sink interface {
	SaveDataset(ctx context.Context, ds *geosearch.Dataset) error
}

// row is the flattened form of a geosearch.Entry shared by both backends.
type row struct {
	position    int
	id          string
	name        string
	countryCode string
	latitude    *float64
	longitude   *float64
	population  *int64
	region      *string
}

// rowsFromDataset flattens entries in dataset order.
func rowsFromDataset(ds *geosearch.Dataset) []row {
	rows := make([]row, 0, len(ds.Cities))
	for i, e := range ds.Cities {
		r := row{
			position:    i,
			id:          e.ID,
			name:        e.Name,
			countryCode: e.CountryCode,
			population:  e.Population,
			region:      e.Region,
		}
		if e.Coordinates != nil {
			lat, lng := e.Coordinates.Latitude, e.Coordinates.Longitude
			r.latitude, r.longitude = &lat, &lng
		}
		rows = append(rows, r)
	}
	return rows
}

func (r row) entry() geosearch.Entry {
	e := geosearch.Entry{
		ID:          r.id,
		Name:        r.name,
		CountryCode: r.countryCode,
		Population:  r.population,
		Region:      r.region,
	}
	if r.latitude != nil && r.longitude != nil {
		e.Coordinates = &geosearch.Coordinate{Latitude: *r.latitude, Longitude: *r.longitude}
	}
	return e
}

// skippedRow is a persisted geosearch.SkippedEntry.
type skippedRow struct {
	index  int
	reason string
}

func skippedFromDataset(ds *geosearch.Dataset) []skippedRow {
	rows := make([]skippedRow, 0, len(ds.Skipped))
	for _, s := range ds.Skipped {
		reason := "undecodable entry"
		if s.Err != nil {
			reason = s.Err.Error()
		}
		rows = append(rows, skippedRow{index: s.Index, reason: reason})
	}
	return rows
}

func (r skippedRow) entry() geosearch.SkippedEntry {
	return geosearch.SkippedEntry{Index: r.index, Err: errors.New(r.reason)}
}

var (
	_ Source = (*SQLiteStore)(nil)
	_ Sink   = (*SQLiteStore)(nil)
	_ Source = (*PostgresSource)(nil)
	_ Sink   = (*PostgresSource)(nil)
)
