package httpapi

import "net/http"

// HandleHealth reports whether a dataset is loaded and what it contains.
// A failed load still answers 200 with status "degraded": the engine serves
// empty results rather than failing.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	stats := h.engine.Stats()

	resp := HealthResponse{
		Status:         "healthy",
		Cities:         stats.Cities,
		Countries:      stats.Countries,
		DatasetVersion: stats.Metadata.Version,
		LastUpdated:    stats.Metadata.LastUpdated,
		Dropped:        stats.Dropped,
		Duplicates:     stats.Duplicates,
	}
	if stats.Err != nil {
		resp.Status = "degraded"
		resp.Error = stats.Err.Error()
	}

	h.logger.Debug().Int("cities", stats.Cities).Str("status", resp.Status).Msg("health check")

	writeJSON(w, http.StatusOK, resp)
}
