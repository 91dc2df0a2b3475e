// internal/server/handlers/company.go

package handlers

import (
	"encoding/json"
	"net/http"

	"mangaintel/internal/domain/news"
)

// CompanyHandler handles tracked-company HTTP requests.
type CompanyHandler struct {
	store news.Store
}

// NewCompanyHandler creates a new company handler.
func NewCompanyHandler(store news.Store) *CompanyHandler {
	return &CompanyHandler{store: store}
}

// companyView is a company enriched with its article mention count.
type companyView struct {
	news.Company
	Mentions int `json:"mentions"`
}

// ListCompanies returns all tracked companies with mention counts.
func (h *CompanyHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.store.ListCompanies(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch companies")
		return
	}

	mentions, err := h.store.CompanyMentions(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch companies")
		return
	}

	counts := make(map[string]int, len(mentions))
	for _, m := range mentions {
		counts[m.CompanyID] = m.Mentions
	}

	views := make([]companyView, 0, len(companies))
	for _, c := range companies {
		views = append(views, companyView{Company: c, Mentions: counts[c.ID]})
	}

	respondWithJSON(w, http.StatusOK, views)
}

// createCompanyRequest is the company registration payload.
type createCompanyRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Website     string `json:"website"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

// CreateCompany registers a new tracked company.
func (h *CompanyHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req createCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid company data")
		return
	}
	if req.Name == "" || req.Type == "" {
		respondWithError(w, http.StatusBadRequest, "Invalid company data")
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	company, err := h.store.CreateCompany(r.Context(), news.Company{
		Name:        req.Name,
		Type:        news.CompanyType(req.Type),
		Website:     req.Website,
		Description: req.Description,
		IsActive:    active,
	})
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid company data")
		return
	}

	respondWithJSON(w, http.StatusCreated, company)
}
