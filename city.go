package geosearch

import (
	"fmt"
	"strings"

	geohash "github.com/TomiHiltunen/geohash-golang"
	"github.com/dustin/go-humanize"
	"github.com/golang/geo/s2"
)

// Coordinate is a WGS84 position in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate lies within [-90,90] x [-180,180].
// NaN components are invalid.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

func (c Coordinate) latLng() s2.LatLng {
	return s2.LatLngFromDegrees(c.Latitude, c.Longitude)
}

// maxGeohashPrecision is the length of the hash returned by geohash.Encode.
const maxGeohashPrecision = 12

// Geohash returns the geohash of the coordinate truncated to precision
// characters. Precision outside 1..12 yields the full 12 character hash.
func (c Coordinate) Geohash(precision int) string {
	h := geohash.Encode(c.Latitude, c.Longitude)
	if precision > 0 && precision < maxGeohashPrecision && precision < len(h) {
		return h[:precision]
	}
	return h
}

// City is an immutable catalog record. Values are copied out of the catalog,
// so callers can never mutate engine state through them.
type City struct {
	ID          string     // Stable identifier, unique within a catalog
	Name        string     // Display name
	CountryCode string     // ISO 3166-1 alpha-2 code (e.g., "GB")
	Region      string     // State/province, empty when unknown
	Coordinate  Coordinate // Position in degrees

	population    int64
	hasPopulation bool
}

// Population returns the city's population and whether the dataset knew it.
// An unknown population ranks as zero but is never reported as zero.
func (c City) Population() (int64, bool) {
	return c.population, c.hasPopulation
}

// rankPopulation is the population used by the ranking rule.
func (c City) rankPopulation() int64 {
	if !c.hasPopulation {
		return 0
	}
	return c.population
}

// DisplayName returns "Name, Region", or just Name when the region is unknown.
func (c City) DisplayName() string {
	if c.Region != "" {
		return c.Name + ", " + c.Region
	}
	return c.Name
}

// FormattedPopulation renders the population for list rows: "9.0M", "85.0K",
// or the exact figure below one thousand. Unknown populations render as "".
func (c City) FormattedPopulation() string {
	if !c.hasPopulation {
		return ""
	}
	switch p := c.population; {
	case p >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(p)/1_000_000)
	case p >= 1_000:
		return fmt.Sprintf("%.1fK", float64(p)/1_000)
	default:
		return humanize.Comma(p)
	}
}

// String implements fmt.Stringer.
func (c City) String() string {
	var b strings.Builder
	b.WriteString(c.DisplayName())
	if c.CountryCode != "" {
		b.WriteString(" (")
		b.WriteString(c.CountryCode)
		b.WriteString(")")
	}
	return b.String()
}
