package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// HandleSearch runs a global search: GET /cities?q=lon&limit=10.
// A missing or blank q returns the most populous cities.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "limit must be a positive integer", "INVALID_LIMIT")
		return
	}

	query := r.URL.Query().Get("q")
	results := truncate(h.engine.SearchGlobal(query), limit)

	h.logger.Info().
		Str("query", query).
		Int("results", len(results)).
		Int("limit", limit).
		Msg("search completed")

	writeJSON(w, http.StatusOK, SearchResponse{
		Query:   query,
		Count:   len(results),
		Results: cityResponses(results),
	})
}

// HandleCountrySearch runs a search scoped to one country:
// GET /countries/{code}/cities?q=lon. Unknown codes yield an empty result.
func (h *Handler) HandleCountrySearch(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "limit must be a positive integer", "INVALID_LIMIT")
		return
	}

	code := chi.URLParam(r, "code")
	query := r.URL.Query().Get("q")
	results := truncate(h.engine.SearchInCountry(code, query), limit)

	h.logger.Info().
		Str("country", code).
		Str("query", query).
		Int("results", len(results)).
		Msg("country search completed")

	writeJSON(w, http.StatusOK, SearchResponse{
		Query:       query,
		CountryCode: code,
		Count:       len(results),
		Results:     cityResponses(results),
	})
}

// HandleLookup returns one city by id: GET /cities/{id}.
func (h *Handler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	city, ok := h.engine.LookupCity(id)
	if !ok {
		writeError(w, http.StatusNotFound, "city not found", "CITY_NOT_FOUND")
		return
	}
	writeJSON(w, http.StatusOK, cityResponse(city))
}
