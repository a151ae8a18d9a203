package geosearch

import (
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDataset = `{
  "metadata": {"version": "1.0", "lastUpdated": "2024-05-01", "source": "Cities Database"},
  "cities": [
    {"id": "London_GB", "name": "London", "countryCode": "GB",
     "coordinates": {"latitude": 51.5074, "longitude": -0.1278},
     "population": 9000000, "region": "England"},
    {"id": "Londonderry_GB", "name": "Londonderry", "countryCode": "GB",
     "coordinates": {"latitude": 54.9966, "longitude": -7.3086},
     "population": 85000, "region": null},
    {"id": "Paris_FR", "name": "Paris", "countryCode": "FR",
     "coordinates": {"latitude": 48.8566, "longitude": 2.3522},
     "population": null, "region": null},
    {"id": "Broken_XX", "name": "Broken", "countryCode": "XX",
     "coordinates": {"latitude": "north", "longitude": 0}},
    {"id": "NoCoords_FR", "name": "Nowhere", "countryCode": "FR"}
  ]
}`

func TestParseDataset(t *testing.T) {
	ds, err := ParseDataset(strings.NewReader(sampleDataset))
	if err != nil {
		t.Fatalf("ParseDataset() error = %v", err)
	}

	want := Metadata{Version: "1.0", LastUpdated: "2024-05-01", Source: "Cities Database"}
	if ds.Metadata != want {
		t.Errorf("Metadata = %+v, want %+v", ds.Metadata, want)
	}
	if len(ds.Cities) != 4 {
		t.Errorf("len(Cities) = %d, want 4", len(ds.Cities))
	}
	if len(ds.Skipped) != 1 || ds.Skipped[0].Index != 3 {
		t.Errorf("Skipped = %+v, want entry 3", ds.Skipped)
	}

	london := ds.Cities[0]
	if london.Population == nil || *london.Population != 9000000 {
		t.Errorf("London population = %v, want 9000000", london.Population)
	}
	if london.Region == nil || *london.Region != "England" {
		t.Errorf("London region = %v, want England", london.Region)
	}
	if derry := ds.Cities[1]; derry.Region != nil {
		t.Errorf("Londonderry region = %q, want nil", *derry.Region)
	}
	if paris := ds.Cities[2]; paris.Population != nil {
		t.Errorf("Paris population = %d, want nil", *paris.Population)
	}
}

func TestParseDataset_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"not json", "cities: []"},
		{"truncated", `{"metadata": {"version": "1"}, "cities": [`},
		{"missing cities", `{"metadata": {"version": "1"}}`},
		{"cities not an array", `{"cities": {"id": "x"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDataset(strings.NewReader(tt.input))
			if !errors.Is(err, ErrInvalidDataset) {
				t.Errorf("ParseDataset(%q) error = %v, want ErrInvalidDataset", tt.input, err)
			}
		})
	}
}

func TestParseDataset_MissingMetadataIsAllowed(t *testing.T) {
	ds, err := ParseDataset(strings.NewReader(`{"cities": []}`))
	if err != nil {
		t.Fatalf("ParseDataset() error = %v", err)
	}
	if ds.Metadata != (Metadata{}) || len(ds.Cities) != 0 {
		t.Errorf("got %+v, want empty dataset", ds)
	}
}

func TestLoadDatasetFile(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "cities.json")
	if err := os.WriteFile(plain, []byte(sampleDataset), 0644); err != nil {
		t.Fatal(err)
	}

	gzPath := filepath.Join(dir, "cities.json.gz")
	f, err := os.Create(gzPath)
	if err != nil {
		t.Fatal(err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(sampleDataset)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{plain, gzPath} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			ds, err := LoadDatasetFile(path)
			if err != nil {
				t.Fatalf("LoadDatasetFile(%s) error = %v", path, err)
			}
			if len(ds.Cities) != 4 {
				t.Errorf("len(Cities) = %d, want 4", len(ds.Cities))
			}
		})
	}
}

func TestLoadDatasetFile_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadDatasetFile(""); !errors.Is(err, ErrNoDataset) {
		t.Errorf("LoadDatasetFile(\"\") error = %v, want ErrNoDataset", err)
	}
	if _, err := LoadDatasetFile(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDatasetFile(bad); !errors.Is(err, ErrInvalidDataset) {
		t.Errorf("bad file error = %v, want ErrInvalidDataset", err)
	}

	notGzip := filepath.Join(dir, "plain.json.gz")
	if err := os.WriteFile(notGzip, []byte(sampleDataset), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDatasetFile(notGzip); err == nil {
		t.Error("LoadDatasetFile on a non-gzip .gz file succeeded")
	}
}

func TestOpen_LoadFailureYieldsEmptyEngine(t *testing.T) {
	e := Open(filepath.Join(t.TempDir(), "missing.json"), WithLogger(nopLogger()))

	if e.Err() == nil {
		t.Fatal("Err() = nil, want load error")
	}
	if got := e.SearchGlobal(""); len(got) != 0 {
		t.Errorf("SearchGlobal(\"\") = %v, want empty", ids(got))
	}
	if got := e.SearchGlobal("london"); len(got) != 0 {
		t.Errorf("SearchGlobal(london) = %v, want empty", ids(got))
	}
	if got := e.SearchInCountry("GB", ""); len(got) != 0 {
		t.Errorf("SearchInCountry(GB) = %v, want empty", ids(got))
	}
	if _, ok := e.LookupCity("London_GB"); ok {
		t.Error("LookupCity found a city in an empty engine")
	}
	if s := e.Stats(); s.Cities != 0 || s.Err == nil {
		t.Errorf("Stats() = %+v, want empty with error", s)
	}
}

func TestNew_NilDataset(t *testing.T) {
	e := New(nil, WithLogger(nopLogger()))
	if !errors.Is(e.Err(), ErrNoDataset) {
		t.Errorf("Err() = %v, want ErrNoDataset", e.Err())
	}
	if len(e.Countries()) != 0 {
		t.Errorf("Countries() = %v, want empty", e.Countries())
	}
}

func TestOpen_Stats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.json")
	if err := os.WriteFile(path, []byte(sampleDataset), 0644); err != nil {
		t.Fatal(err)
	}
	e := Open(path, WithLogger(nopLogger()))
	if e.Err() != nil {
		t.Fatalf("Err() = %v", e.Err())
	}

	s := e.Stats()
	if s.Cities != 3 {
		t.Errorf("Cities = %d, want 3", s.Cities)
	}
	if s.Countries != 2 {
		t.Errorf("Countries = %d, want 2", s.Countries)
	}
	// One undecodable entry plus one entry without coordinates.
	if s.Dropped != 2 {
		t.Errorf("Dropped = %d, want 2", s.Dropped)
	}
	if s.Metadata.Source != "Cities Database" {
		t.Errorf("Metadata.Source = %q", s.Metadata.Source)
	}
	if s.Terms == 0 {
		t.Error("Terms = 0")
	}
}

func TestEmpty_ReportsCause(t *testing.T) {
	cause := errors.New("connection refused")
	e := Empty(cause, WithLogger(nopLogger()))
	if !errors.Is(e.Err(), cause) {
		t.Errorf("Err() = %v, want %v", e.Err(), cause)
	}
	if got := e.SearchGlobal(""); len(got) != 0 {
		t.Errorf("SearchGlobal(\"\") = %v, want empty", ids(got))
	}
}
