package geosearch

import (
	"sort"

	"github.com/golang/geo/s2"
	"github.com/rs/zerolog"
)

// Catalog is the immutable set of cities an Engine searches.
//
// Every city is addressed internally by its position in load order; the
// position doubles as the ranking tie-break and as the member value of the
// TermIndex posting sets. Duplicate ids keep the first occurrence: later
// entries with an already seen id are dropped and counted.
type Catalog struct {
	cities    []City              // load order
	terms     [][]string          // search terms, parallel to cities
	byID      map[string]uint32   // id -> position
	byCountry map[string][]uint32 // country code -> positions in load order

	dropped    int // entries rejected as malformed
	duplicates int // entries rejected for a repeated id
}

// NewCatalog builds a catalog from decoded entries. Malformed entries and
// duplicate ids are skipped and logged at warn level; they never abort the
// build. A nil namer disables country names as search text.
func NewCatalog(entries []Entry, namer CountryNamer, logger zerolog.Logger) *Catalog {
	if namer == nil {
		namer = noCountryNames
	}
	c := &Catalog{
		cities:    make([]City, 0, len(entries)),
		terms:     make([][]string, 0, len(entries)),
		byID:      make(map[string]uint32, len(entries)),
		byCountry: make(map[string][]uint32),
	}

	countries := newStringInterner(300)
	regions := newStringInterner(8192)
	countryNames := make(map[string]string)

	for i, e := range entries {
		if err := e.validate(); err != nil {
			c.dropped++
			logger.Warn().Int("entry", i).Str("id", e.ID).Err(err).Msg("skipping malformed city entry")
			continue
		}
		if _, seen := c.byID[e.ID]; seen {
			c.duplicates++
			logger.Warn().Int("entry", i).Str("id", e.ID).Msg("skipping duplicate city id")
			continue
		}

		city := City{
			ID:          e.ID,
			Name:        e.Name,
			CountryCode: countries.intern(e.CountryCode),
			Coordinate:  *e.Coordinates,
		}
		if e.Region != nil {
			city.Region = regions.intern(*e.Region)
		}
		if e.Population != nil {
			city.population = *e.Population
			city.hasPopulation = true
		}

		countryName, ok := countryNames[city.CountryCode]
		if !ok {
			countryName = namer.CountryName(city.CountryCode)
			countryNames[city.CountryCode] = countryName
		}

		pos := uint32(len(c.cities))
		c.cities = append(c.cities, city)
		c.terms = append(c.terms, searchTerms(city.Name, city.Region, countryName))
		c.byID[city.ID] = pos
		c.byCountry[city.CountryCode] = append(c.byCountry[city.CountryCode], pos)
	}

	logger.Debug().
		Int("countries", countries.count()).
		Int("regions", regions.count()).
		Msg("interned catalog strings")
	return c
}

// Len returns the number of cities in the catalog.
func (c *Catalog) Len() int {
	return len(c.cities)
}

// Lookup returns the city with the given id.
func (c *Catalog) Lookup(id string) (City, bool) {
	pos, ok := c.byID[id]
	if !ok {
		return City{}, false
	}
	return c.cities[pos], true
}

// CitiesInCountry returns the country's cities in load order. Unknown codes
// yield an empty slice.
func (c *Catalog) CitiesInCountry(code string) []City {
	positions := c.byCountry[code]
	if len(positions) == 0 {
		return nil
	}
	out := make([]City, len(positions))
	for i, pos := range positions {
		out[i] = c.cities[pos]
	}
	return out
}

// CountryLen returns the number of cities in the country without copying them.
func (c *Catalog) CountryLen(code string) int {
	return len(c.byCountry[code])
}

// Countries returns the country codes present in the catalog, sorted.
func (c *Catalog) Countries() []string {
	codes := make([]string, 0, len(c.byCountry))
	for code := range c.byCountry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Bounds is a latitude/longitude box. When a box crosses the antimeridian
// West is greater than East.
type Bounds struct {
	South, West, North, East float64
	Center                   Coordinate
}

// Bounds returns the smallest box containing all of a country's cities, for
// framing the country on a map.
func (c *Catalog) Bounds(code string) (Bounds, bool) {
	positions := c.byCountry[code]
	if len(positions) == 0 {
		return Bounds{}, false
	}
	rect := s2.EmptyRect()
	for _, pos := range positions {
		rect = rect.AddPoint(c.cities[pos].Coordinate.latLng())
	}
	lo, hi, center := rect.Lo(), rect.Hi(), rect.Center()
	return Bounds{
		South:  lo.Lat.Degrees(),
		West:   lo.Lng.Degrees(),
		North:  hi.Lat.Degrees(),
		East:   hi.Lng.Degrees(),
		Center: Coordinate{Latitude: center.Lat.Degrees(), Longitude: center.Lng.Degrees()},
	}, true
}

// rank orders positions by the ranking rule: population descending, unknown
// population as zero, ties by load order.
func (c *Catalog) rank(positions []uint32) {
	sort.Slice(positions, func(i, j int) bool {
		pi, pj := c.cities[positions[i]].rankPopulation(), c.cities[positions[j]].rankPopulation()
		if pi != pj {
			return pi > pj
		}
		return positions[i] < positions[j]
	})
}

// resolve copies the cities at positions, stopping after limit entries.
func (c *Catalog) resolve(positions []uint32, limit int) []City {
	if len(positions) > limit {
		positions = positions[:limit]
	}
	if len(positions) == 0 {
		return nil
	}
	out := make([]City, len(positions))
	for i, pos := range positions {
		out[i] = c.cities[pos]
	}
	return out
}
