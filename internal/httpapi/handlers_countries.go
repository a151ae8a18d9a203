package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// HandleCountries lists the countries present in the catalog.
func (h *Handler) HandleCountries(w http.ResponseWriter, _ *http.Request) {
	codes := h.engine.Countries()
	catalog := h.engine.Catalog()

	countries := make([]CountryResponse, len(codes))
	for i, code := range codes {
		countries[i] = CountryResponse{
			Code:   code,
			Cities: catalog.CountryLen(code),
		}
		if h.namer != nil {
			countries[i].Name = h.namer.CountryName(code)
		}
	}

	writeJSON(w, http.StatusOK, CountriesResponse{
		Count:     len(countries),
		Countries: countries,
	})
}

// HandleCountryBounds returns the bounding box of a country's cities, used
// to frame a map on the selected country.
func (h *Handler) HandleCountryBounds(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	b, ok := h.engine.CountryBounds(code)
	if !ok {
		writeError(w, http.StatusNotFound, "country not found", "COUNTRY_NOT_FOUND")
		return
	}
	writeJSON(w, http.StatusOK, BoundsResponse{
		CountryCode: code,
		South:       b.South,
		West:        b.West,
		North:       b.North,
		East:        b.East,
		CenterLat:   b.Center.Latitude,
		CenterLng:   b.Center.Longitude,
	})
}
