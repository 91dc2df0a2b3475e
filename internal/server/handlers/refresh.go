// internal/server/handlers/refresh.go

package handlers

import (
	"net/http"

	"mangaintel/internal/service/aggregator"
)

// RefreshHandler triggers an on-demand fetch cycle outside the
// scheduler's cadence.
type RefreshHandler struct {
	aggregator *aggregator.Aggregator
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(ag *aggregator.Aggregator) *RefreshHandler {
	return &RefreshHandler{aggregator: ag}
}

// Refresh runs a fetch over all active sources and reports completion.
func (h *RefreshHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.aggregator.FetchAll(r.Context()); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to refresh news")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "News refresh completed"})
}
