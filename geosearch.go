// Package geosearch provides in-memory search over a static city catalog.
//
// An Engine is built once from a dataset and is read-only afterwards: all of
// its query methods are safe for concurrent use without locking, never block
// on I/O and never fail: no results is reported as an empty (nil) slice.
//
// Example:
//
//	e := geosearch.Open("cities.json", geosearch.WithLanguage(language.English))
//	for _, c := range e.SearchGlobal("london") {
//	    fmt.Println(c.DisplayName(), c.FormattedPopulation())
//	}
package geosearch

import (
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// Config contains the options an Engine is built with.
type Config struct {
	Logger       zerolog.Logger // Diagnostics channel for load warnings and failures
	CountryNamer CountryNamer   // Country names used as search text; nil disables them
}

// Option is a functional option for configuring an Engine.
type Option func(*Config)

// WithLogger sets the logger that receives load diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithCountryNamer sets how country codes resolve to searchable names.
// Passing nil disables country names as search text.
func WithCountryNamer(namer CountryNamer) Option {
	return func(c *Config) {
		c.CountryNamer = namer
	}
}

// WithLanguage makes country names searchable in the given language.
func WithLanguage(tag language.Tag) Option {
	return WithCountryNamer(NewLocalizedCountryNamer(tag))
}

// defaultConfig returns the default configuration: English country names and
// the global zerolog logger.
func defaultConfig() *Config {
	return &Config{
		Logger:       log.With().Str("component", "geosearch").Logger(),
		CountryNamer: NewLocalizedCountryNamer(language.English),
	}
}

// Engine answers city searches over an immutable catalog.
type Engine struct {
	catalog  *Catalog
	index    *TermIndex
	top      *RankedTopSet
	metadata Metadata
	skipped  int
	err      error
}

// New builds an Engine from a decoded dataset. A nil dataset produces an
// empty engine whose Err reports ErrNoDataset.
func New(ds *Dataset, opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if ds == nil {
		return newEmpty(cfg, ErrNoDataset)
	}

	for _, s := range ds.Skipped {
		cfg.Logger.Warn().Int("entry", s.Index).Err(s.Err).Msg("skipping undecodable city entry")
	}

	catalog := NewCatalog(ds.Cities, cfg.CountryNamer, cfg.Logger)
	e := &Engine{
		catalog:  catalog,
		index:    NewTermIndex(catalog),
		top:      NewRankedTopSet(catalog),
		metadata: ds.Metadata,
		skipped:  len(ds.Skipped),
	}

	cfg.Logger.Info().
		Str("version", ds.Metadata.Version).
		Str("last_updated", ds.Metadata.LastUpdated).
		Str("source", ds.Metadata.Source).
		Int("cities", catalog.Len()).
		Int("terms", e.index.Len()).
		Int("dropped", catalog.dropped+e.skipped).
		Int("duplicates", catalog.duplicates).
		Msg("city catalog loaded")
	return e
}

// Open loads a dataset file and builds an Engine from it. Open never fails:
// when the file is missing or unreadable the failure is logged once and an
// empty engine is returned, with the cause available from Err.
func Open(path string, opts ...Option) *Engine {
	ds, err := LoadDatasetFile(path)
	if err != nil {
		return Empty(err, opts...)
	}
	return New(ds, opts...)
}

// Empty returns an engine with no cities whose Err reports err. Callers that
// load datasets from elsewhere use it to keep serving after a load failure.
func Empty(err error, opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return newEmpty(cfg, err)
}

// newEmpty returns an engine that answers every query with no results.
func newEmpty(cfg *Config, err error) *Engine {
	cfg.Logger.Error().Err(err).Msg("city dataset not loaded, searches will return no results")
	catalog := NewCatalog(nil, nil, zerolog.Nop())
	return &Engine{
		catalog: catalog,
		index:   NewTermIndex(catalog),
		top:     NewRankedTopSet(catalog),
		err:     err,
	}
}

// Err returns the dataset load failure, or nil if the dataset loaded.
func (e *Engine) Err() error {
	return e.err
}

// SearchGlobal returns the cities whose searchable text contains every
// whitespace-separated term of query as a substring, ranked by population
// and capped at MaxResults. A blank query returns the top ranked cities.
func (e *Engine) SearchGlobal(query string) []City {
	terms := tokenize(query)
	if len(terms) == 0 {
		return e.top.Top(MaxResults)
	}

	var candidates *roaring.Bitmap
	for i, term := range terms {
		matches := e.index.MatchingSubstring(term)
		if i == 0 {
			candidates = matches
		} else {
			candidates = roaring.And(candidates, matches)
		}
		if candidates.IsEmpty() {
			return nil
		}
	}

	positions := candidates.ToArray()
	e.catalog.rank(positions)
	return e.catalog.resolve(positions, MaxResults)
}

// SearchInCountry is SearchGlobal restricted to the cities of one country.
// The country's cities are scanned directly instead of going through the
// index; both paths apply the same substring AND matching. Unknown country
// codes return no results.
func (e *Engine) SearchInCountry(countryCode, query string) []City {
	group := e.catalog.byCountry[countryCode]
	if len(group) == 0 {
		return nil
	}

	terms := tokenize(query)
	positions := make([]uint32, 0, len(group))
	for _, pos := range group {
		if matchesAll(e.catalog.terms[pos], terms) {
			positions = append(positions, pos)
		}
	}
	e.catalog.rank(positions)
	return e.catalog.resolve(positions, MaxResults)
}

// matchesAll reports whether every query term is a substring of at least one
// of the city's terms. An empty query matches everything.
func matchesAll(cityTerms, queryTerms []string) bool {
	for _, q := range queryTerms {
		if !containsSubstring(cityTerms, q) {
			return false
		}
	}
	return true
}

func containsSubstring(terms []string, sub string) bool {
	for _, t := range terms {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
}

// LookupCity returns the city with the given id.
func (e *Engine) LookupCity(id string) (City, bool) {
	return e.catalog.Lookup(id)
}

// Countries returns the country codes present in the catalog, sorted.
func (e *Engine) Countries() []string {
	return e.catalog.Countries()
}

// CountryBounds returns the bounding box of a country's cities.
func (e *Engine) CountryBounds(countryCode string) (Bounds, bool) {
	return e.catalog.Bounds(countryCode)
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *Catalog { return e.catalog }

// Index returns the engine's term index.
func (e *Engine) Index() *TermIndex { return e.index }

// TopSet returns the engine's precomputed ranking of the whole catalog.
func (e *Engine) TopSet() *RankedTopSet { return e.top }

// Stats summarises what the engine loaded.
type Stats struct {
	Metadata   Metadata
	Cities     int
	Countries  int
	Terms      int
	Dropped    int // malformed or undecodable entries
	Duplicates int // entries skipped for a repeated id
	Err        error
}

// Stats returns load diagnostics.
func (e *Engine) Stats() Stats {
	return Stats{
		Metadata:   e.metadata,
		Cities:     e.catalog.Len(),
		Countries:  len(e.catalog.byCountry),
		Terms:      e.index.Len(),
		Dropped:    e.catalog.dropped + e.skipped,
		Duplicates: e.catalog.duplicates,
		Err:        e.err,
	}
}
