package geosearch

import (
	"fmt"

	"github.com/rs/zerolog"
)

func nopLogger() zerolog.Logger { return zerolog.Nop() }

func int64Ptr(v int64) *int64 { return &v }

func stringPtr(s string) *string { return &s }

// cityEntry builds a valid entry; pop < 0 means "population unknown".
func cityEntry(id, name, country string, pop int64) Entry {
	e := Entry{
		ID:          id,
		Name:        name,
		CountryCode: country,
		Coordinates: &Coordinate{Latitude: 10, Longitude: 10},
	}
	if pop >= 0 {
		e.Population = int64Ptr(pop)
	}
	return e
}

// newTestEngine builds a quiet engine without country names, so only name and
// region contribute search terms.
func newTestEngine(entries ...Entry) *Engine {
	return New(&Dataset{Cities: entries}, WithLogger(zerolog.Nop()), WithCountryNamer(nil))
}

// londonEntries is the two city catalog used throughout the docs.
func londonEntries() []Entry {
	london := cityEntry("1", "London", "GB", 9000000)
	london.Coordinates = &Coordinate{Latitude: 51.5074, Longitude: -0.1278}
	derry := cityEntry("2", "Londonderry", "GB", 85000)
	derry.Coordinates = &Coordinate{Latitude: 54.9966, Longitude: -7.3086}
	return []Entry{london, derry}
}

// worldEntries is a mixed catalog with repeated populations, unknown
// populations, regions and several countries.
func worldEntries() []Entry {
	return []Entry{
		{ID: "paris", Name: "Paris", CountryCode: "FR", Coordinates: &Coordinate{48.8566, 2.3522}, Population: int64Ptr(2100000), Region: stringPtr("Ile-de-France")},
		{ID: "paris-tx", Name: "Paris", CountryCode: "US", Coordinates: &Coordinate{33.6609, -95.5555}, Population: int64Ptr(25000), Region: stringPtr("Texas")},
		{ID: "austin", Name: "Austin", CountryCode: "US", Coordinates: &Coordinate{30.2672, -97.7431}, Population: int64Ptr(960000), Region: stringPtr("Texas")},
		{ID: "dallas", Name: "Dallas", CountryCode: "US", Coordinates: &Coordinate{32.7767, -96.7970}, Population: int64Ptr(1300000), Region: stringPtr("Texas")},
		{ID: "new-york", Name: "New York City", CountryCode: "US", Coordinates: &Coordinate{40.7128, -74.0060}, Population: int64Ptr(8300000), Region: stringPtr("New York")},
		{ID: "york", Name: "York", CountryCode: "GB", Coordinates: &Coordinate{53.9590, -1.0815}, Population: int64Ptr(210000), Region: stringPtr("England")},
		{ID: "newport", Name: "Newport", CountryCode: "GB", Coordinates: &Coordinate{51.5842, -2.9977}, Population: int64Ptr(145000), Region: stringPtr("Wales")},
		{ID: "lyon", Name: "Lyon", CountryCode: "FR", Coordinates: &Coordinate{45.7640, 4.8357}, Population: int64Ptr(513000)},
		{ID: "nice", Name: "Nice", CountryCode: "FR", Coordinates: &Coordinate{43.7102, 7.2620}},
		{ID: "annecy", Name: "Annecy", CountryCode: "FR", Coordinates: &Coordinate{45.8992, 6.1294}},
		{ID: "auckland", Name: "Auckland", CountryCode: "NZ", Coordinates: &Coordinate{-36.8485, 174.7633}, Population: int64Ptr(1660000)},
		{ID: "tokyo", Name: "Tokyo", CountryCode: "JP", Coordinates: &Coordinate{35.6762, 139.6503}, Population: int64Ptr(13960000), Region: stringPtr("Tokyo")},
		{ID: "sao-paulo", Name: "São Paulo", CountryCode: "BR", Coordinates: &Coordinate{-23.5505, -46.6333}, Population: int64Ptr(12300000), Region: stringPtr("São Paulo")},
		{ID: "santa-cruz-us", Name: "Santa Cruz", CountryCode: "US", Coordinates: &Coordinate{36.9741, -122.0308}, Population: int64Ptr(62000), Region: stringPtr("California")},
		{ID: "santa-cruz-bo", Name: "Santa Cruz de la Sierra", CountryCode: "BO", Coordinates: &Coordinate{-17.8146, -63.1561}, Population: int64Ptr(1450000)},
		{ID: "york-pa", Name: "York", CountryCode: "US", Coordinates: &Coordinate{39.9626, -76.7277}, Population: int64Ptr(44000), Region: stringPtr("Pennsylvania")},
		{ID: "tie-a", Name: "Twinville", CountryCode: "CA", Coordinates: &Coordinate{45, -75}, Population: int64Ptr(5000)},
		{ID: "tie-b", Name: "Twin Falls", CountryCode: "US", Coordinates: &Coordinate{42.5629, -114.4609}, Population: int64Ptr(5000), Region: stringPtr("Idaho")},
		{ID: "tie-c", Name: "Twinsburg", CountryCode: "US", Coordinates: &Coordinate{41.3126, -81.4401}, Population: int64Ptr(5000), Region: stringPtr("Ohio")},
	}
}

// manyEntries returns n cities all containing the term "town" so that broad
// queries exceed MaxResults. Every seventh city has an unknown population.
func manyEntries(n int) []Entry {
	entries := make([]Entry, 0, n)
	countries := []string{"FR", "DE", "IT"}
	for i := 0; i < n; i++ {
		pop := int64((i * 37) % 11 * 1000)
		if i%7 == 0 {
			pop = -1
		}
		entries = append(entries, cityEntry(
			fmt.Sprintf("c%03d", i),
			fmt.Sprintf("Town %03d", i),
			countries[i%len(countries)],
			pop,
		))
	}
	return entries
}

func ids(cities []City) []string {
	out := make([]string, len(cities))
	for i, c := range cities {
		out[i] = c.ID
	}
	return out
}
