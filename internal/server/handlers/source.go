// internal/server/handlers/source.go

package handlers

import (
	"encoding/json"
	"net/http"

	"mangaintel/internal/domain/news"
)

// SourceHandler handles news source HTTP requests.
type SourceHandler struct {
	store news.Store
}

// NewSourceHandler creates a new source handler.
func NewSourceHandler(store news.Store) *SourceHandler {
	return &SourceHandler{store: store}
}

// ListSources returns all configured news sources.
func (h *SourceHandler) ListSources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.store.ListSources(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch news sources")
		return
	}

	respondWithJSON(w, http.StatusOK, sources)
}

type createSourceRequest struct {
	Name     string          `json:"name"`
	URL      string          `json:"url"`
	Type     news.SourceType `json:"type"`
	Language string          `json:"language"`
	IsActive *bool           `json:"isActive"`
}

// CreateSource registers a new source. It starts with no fetch
// timestamp until the aggregator first reaches it.
func (h *SourceHandler) CreateSource(w http.ResponseWriter, r *http.Request) {
	var req createSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Name == "" || req.URL == "" || req.Type == "" {
		respondWithError(w, http.StatusBadRequest, "name, url and type are required")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	source, err := h.store.CreateSource(r.Context(), news.Source{
		Name:     req.Name,
		URL:      req.URL,
		Type:     req.Type,
		Language: req.Language,
		IsActive: isActive,
	})
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create news source")
		return
	}

	respondWithJSON(w, http.StatusCreated, source)
}
