// Package httpapi exposes a city search engine over a read-only JSON API.
package httpapi

import "github.com/andreiashu/geosearch"

// geohashPrecision gives roughly 150m cells, enough to tell cities apart.
const geohashPrecision = 7

// ErrorResponse represents an API error body
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status         string `json:"status"` // "healthy" or "degraded"
	Cities         int    `json:"cities"`
	Countries      int    `json:"countries"`
	DatasetVersion string `json:"dataset_version,omitempty"`
	LastUpdated    string `json:"last_updated,omitempty"`
	Dropped        int    `json:"dropped"`
	Duplicates     int    `json:"duplicates"`
	Error          string `json:"error,omitempty"`
}

// CityResponse is one city as rendered in result lists.
type CityResponse struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	DisplayName         string  `json:"display_name"`
	CountryCode         string  `json:"country_code"`
	Region              string  `json:"region,omitempty"`
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
	Population          *int64  `json:"population,omitempty"`
	FormattedPopulation string  `json:"formatted_population,omitempty"`
	Geohash             string  `json:"geohash"`
}

// SearchResponse represents search results
type SearchResponse struct {
	Query       string         `json:"query"`
	CountryCode string         `json:"country_code,omitempty"`
	Count       int            `json:"count"`
	Results     []CityResponse `json:"results"`
}

// CountryResponse is one country present in the catalog.
type CountryResponse struct {
	Code   string `json:"code"`
	Name   string `json:"name,omitempty"`
	Cities int    `json:"cities"`
}

// CountriesResponse lists the catalog's countries.
type CountriesResponse struct {
	Count     int               `json:"count"`
	Countries []CountryResponse `json:"countries"`
}

// BoundsResponse is the bounding box of a country's cities.
type BoundsResponse struct {
	CountryCode string  `json:"country_code"`
	South       float64 `json:"south"`
	West        float64 `json:"west"`
	North       float64 `json:"north"`
	East        float64 `json:"east"`
	CenterLat   float64 `json:"center_latitude"`
	CenterLng   float64 `json:"center_longitude"`
}

func cityResponse(c geosearch.City) CityResponse {
	resp := CityResponse{
		ID:                  c.ID,
		Name:                c.Name,
		DisplayName:         c.DisplayName(),
		CountryCode:         c.CountryCode,
		Region:              c.Region,
		Latitude:            c.Coordinate.Latitude,
		Longitude:           c.Coordinate.Longitude,
		FormattedPopulation: c.FormattedPopulation(),
		Geohash:             c.Coordinate.Geohash(geohashPrecision),
	}
	if pop, ok := c.Population(); ok {
		resp.Population = &pop
	}
	return resp
}

func cityResponses(cities []geosearch.City) []CityResponse {
	out := make([]CityResponse, len(cities))
	for i, c := range cities {
		out[i] = cityResponse(c)
	}
	return out
}
