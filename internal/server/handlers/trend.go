// internal/server/handlers/trend.go

package handlers

import (
	"net/http"

	"mangaintel/internal/domain/news"
)

// TrendHandler handles trend HTTP requests.
type TrendHandler struct {
	store news.Store
}

// NewTrendHandler creates a new trend handler.
func NewTrendHandler(store news.Store) *TrendHandler {
	return &TrendHandler{store: store}
}

// ListTrends returns trends for one period (default 24h) sorted by
// change percentage descending.
func (h *TrendHandler) ListTrends(w http.ResponseWriter, r *http.Request) {
	period := news.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = news.Period24h
	}

	trends, err := h.store.TrendsByPeriod(r.Context(), period)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch trends")
		return
	}

	respondWithJSON(w, http.StatusOK, trends)
}
