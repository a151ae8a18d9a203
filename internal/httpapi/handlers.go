package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/andreiashu/geosearch"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	engine *geosearch.Engine
	namer  geosearch.CountryNamer
	logger zerolog.Logger
}

// NewHandler creates a new HTTP handler. namer may be nil, in which case
// country listings carry codes only.
func NewHandler(engine *geosearch.Engine, namer geosearch.CountryNamer, logger zerolog.Logger) *Handler {
	return &Handler{
		engine: engine,
		namer:  namer,
		logger: logger,
	}
}

// Routes returns the API router.
func (h *Handler) Routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.HandleHealth)
	r.Get("/cities", h.HandleSearch)
	r.Get("/cities/{id}", h.HandleLookup)
	r.Route("/countries", func(r chi.Router) {
		r.Get("/", h.HandleCountries)
		r.Get("/{code}/cities", h.HandleCountrySearch)
		r.Get("/{code}/bounds", h.HandleCountryBounds)
	})

	return r
}

// Helper functions used across all handlers

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// parseLimit reads the optional limit parameter. Results are capped at
// geosearch.MaxResults whatever the caller asks for.
func parseLimit(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return geosearch.MaxResults, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, false
	}
	if limit > geosearch.MaxResults {
		limit = geosearch.MaxResults
	}
	return limit, true
}

func truncate(cities []geosearch.City, limit int) []geosearch.City {
	if len(cities) > limit {
		return cities[:limit]
	}
	return cities
}
