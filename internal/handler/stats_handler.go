package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/prn-tf/chronicle/internal/auth"
	"github.com/prn-tf/chronicle/internal/search"
	"github.com/prn-tf/chronicle/internal/service"
)

// StatsHandler serves the statistics and search endpoints.
type StatsHandler struct {
	stats  *service.StatsService
	logger zerolog.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(stats *service.StatsService, logger zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		stats:  stats,
		logger: logger.With().Str("handler", "stats").Logger(),
	}
}

// GetStats handles GET /stats. Statistics are always computable; repository
// read failures show up as an empty statistics view, never an error page.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.FromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	stats := h.stats.GetStats(r.Context(), identity.UserID)
	writeJSON(w, http.StatusOK, toStatsResponse(stats))
}

// Search handles GET /search?q=&sort=&order=. sort is one of date, title,
// favorite (default date); order is asc or desc (default desc).
func (h *StatsHandler) Search(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.FromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	q := r.URL.Query()
	entries := h.stats.SearchEntries(r.Context(), service.SearchEntriesInput{
		UserID:    identity.UserID,
		Query:     q.Get("q"),
		SortBy:    search.ParseCriteria(q.Get("sort")),
		Ascending: q.Get("order") == "asc",
	})

	writeJSON(w, http.StatusOK, toEntryResponses(entries))
}
