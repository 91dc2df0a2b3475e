// internal/server/handlers/alert.go

package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mangaintel/internal/adapter/storage"
	"mangaintel/internal/domain/news"
)

// AlertHandler handles alert HTTP requests.
type AlertHandler struct {
	store news.Store
}

// NewAlertHandler creates a new alert handler.
func NewAlertHandler(store news.Store) *AlertHandler {
	return &AlertHandler{store: store}
}

// alertView is an alert enriched with its referenced company.
type alertView struct {
	news.Alert
	Company *news.Company `json:"company,omitempty"`
}

// ListAlerts returns alerts; ?unread=true narrows to unread alerts
// sorted by priority.
func (h *AlertHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	var (
		alerts []news.Alert
		err    error
	)
	if r.URL.Query().Get("unread") == "true" {
		alerts, err = h.store.UnreadAlerts(r.Context())
	} else {
		alerts, err = h.store.AllAlerts(r.Context())
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch alerts")
		return
	}

	companies, err := h.store.ListCompanies(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch alerts")
		return
	}

	byID := make(map[string]news.Company, len(companies))
	for _, c := range companies {
		byID[c.ID] = c
	}

	views := make([]alertView, 0, len(alerts))
	for _, a := range alerts {
		view := alertView{Alert: a}
		if c, ok := byID[a.CompanyID]; ok {
			company := c
			view.Company = &company
		}
		views = append(views, view)
	}

	respondWithJSON(w, http.StatusOK, views)
}

// MarkRead flips the read flag on a single alert.
func (h *AlertHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.MarkAlertRead(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Alert not found")
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to mark alert as read")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}
