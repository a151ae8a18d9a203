package geosearch

import (
	"compress/bzip2"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Error values for dataset loading.
var (
	ErrNoDataset      = errors.New("no dataset")
	ErrInvalidDataset = errors.New("invalid dataset")
	ErrInvalidEntry   = errors.New("invalid city entry")
)

// Metadata describes where a dataset came from. It is carried through for
// diagnostics only.
type Metadata struct {
	Version     string `json:"version"`
	LastUpdated string `json:"lastUpdated"`
	Source      string `json:"source"`
}

// Entry is one decoded city entry. Pointer fields distinguish "absent" from
// a zero value.
type Entry struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	CountryCode string      `json:"countryCode"`
	Coordinates *Coordinate `json:"coordinates"`
	Population  *int64      `json:"population,omitempty"`
	Region      *string     `json:"region,omitempty"`
}

// validate checks the required fields and value ranges of an entry.
func (e Entry) validate() error {
	switch {
	case strings.TrimSpace(e.ID) == "":
		return fmt.Errorf("%w: missing id", ErrInvalidEntry)
	case strings.TrimSpace(e.Name) == "":
		return fmt.Errorf("%w: missing name", ErrInvalidEntry)
	case strings.TrimSpace(e.CountryCode) == "":
		return fmt.Errorf("%w: missing countryCode", ErrInvalidEntry)
	case e.Coordinates == nil:
		return fmt.Errorf("%w: missing coordinates", ErrInvalidEntry)
	case !e.Coordinates.Valid():
		return fmt.Errorf("%w: coordinates (%f, %f) out of range",
			ErrInvalidEntry, e.Coordinates.Latitude, e.Coordinates.Longitude)
	case e.Population != nil && *e.Population < 0:
		return fmt.Errorf("%w: negative population %d", ErrInvalidEntry, *e.Population)
	}
	return nil
}

// SkippedEntry records an entry that could not be decoded at all.
type SkippedEntry struct {
	Index int   // Position in the dataset's cities array
	Err   error // Decode error
}

// Dataset is a decoded dataset payload.
type Dataset struct {
	Metadata Metadata
	Cities   []Entry
	Skipped  []SkippedEntry
}

// rawDataset mirrors the payload layout. Cities are decoded one by one so a
// single malformed entry does not reject the whole payload.
type rawDataset struct {
	Metadata *Metadata         `json:"metadata"`
	Cities   []json.RawMessage `json:"cities"`
}

// ParseDataset decodes a JSON dataset payload:
//
//	{"metadata": {"version": "1.0", "lastUpdated": "2024-01-01", "source": "..."},
//	 "cities": [{"id": "London_GB", "name": "London", "countryCode": "GB",
//	             "coordinates": {"latitude": 51.5, "longitude": -0.12},
//	             "population": 9000000, "region": "England"}]}
//
// Entries whose JSON cannot be decoded are reported in Dataset.Skipped; entries
// that decode but miss required fields are left for the catalog to reject.
func ParseDataset(r io.Reader) (*Dataset, error) {
	var raw rawDataset
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	if raw.Cities == nil {
		return nil, fmt.Errorf("%w: missing cities", ErrInvalidDataset)
	}

	ds := &Dataset{Cities: make([]Entry, 0, len(raw.Cities))}
	if raw.Metadata != nil {
		ds.Metadata = *raw.Metadata
	}
	for i, msg := range raw.Cities {
		var e Entry
		if err := json.Unmarshal(msg, &e); err != nil {
			ds.Skipped = append(ds.Skipped, SkippedEntry{Index: i, Err: err})
			continue
		}
		ds.Cities = append(ds.Cities, e)
	}
	return ds, nil
}

// LoadDatasetFile reads and decodes a dataset file. Files ending in ".bz2" or
// ".gz" are decompressed transparently; if path does not exist but path+".bz2"
// does, the compressed file is used.
func LoadDatasetFile(path string) (*Dataset, error) {
	if path == "" {
		return nil, ErrNoDataset
	}
	r, cleanup, err := openOptionallyCompressedFile(path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	ds, err := ParseDataset(r)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return ds, nil
}

func openOptionallyCompressedFile(path string) (io.Reader, func() error, error) {
	fh, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) && !strings.HasSuffix(path, ".bz2") {
		if bz, bzErr := os.Open(path + ".bz2"); bzErr == nil {
			fh, err, path = bz, nil, path+".bz2"
		}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}

	switch {
	case strings.HasSuffix(path, ".bz2"):
		return bzip2.NewReader(fh), fh.Close, nil
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, nil, fmt.Errorf("creating gzip reader for %s: %w", path, err)
		}
		return gz, func() error {
			gz.Close()
			return fh.Close()
		}, nil
	}
	return fh, fh.Close, nil
}
