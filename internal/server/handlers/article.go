// internal/server/handlers/article.go

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"mangaintel/internal/adapter/storage"
	"mangaintel/internal/domain/news"
)

// ArticleHandler handles article-related HTTP requests.
type ArticleHandler struct {
	store news.Store
}

// NewArticleHandler creates a new article handler.
func NewArticleHandler(store news.Store) *ArticleHandler {
	return &ArticleHandler{store: store}
}

// articleView is an article enriched with its referenced company.
type articleView struct {
	news.Article
	Company *news.Company `json:"company,omitempty"`
}

// ListArticles returns articles filtered by category/company or by a
// free-text search term, enriched with company data.
func (h *ArticleHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		articles []news.Article
		err      error
	)
	if search := q.Get("search"); search != "" {
		articles, err = h.store.SearchArticles(r.Context(), search)
	} else {
		limit := 20
		if v, convErr := strconv.Atoi(q.Get("limit")); convErr == nil {
			limit = v
		}
		offset, _ := strconv.Atoi(q.Get("offset"))

		articles, err = h.store.ListArticles(r.Context(), news.ArticleFilter{
			Category:  news.Category(q.Get("category")),
			CompanyID: q.Get("companyId"),
			Limit:     limit,
			Offset:    offset,
		})
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch articles")
		return
	}

	companies, err := h.store.ListCompanies(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch articles")
		return
	}

	byID := make(map[string]news.Company, len(companies))
	for _, c := range companies {
		byID[c.ID] = c
	}

	views := make([]articleView, 0, len(articles))
	for _, a := range articles {
		view := articleView{Article: a}
		if c, ok := byID[a.CompanyID]; ok {
			company := c
			view.Company = &company
		}
		views = append(views, view)
	}

	respondWithJSON(w, http.StatusOK, views)
}

// GetArticle returns a single article by ID.
func (h *ArticleHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	article, err := h.store.GetArticle(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Article not found")
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch article")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, article)
}

// createArticleRequest is the manual article submission payload.
type createArticleRequest struct {
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Summary     string    `json:"summary"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"imageUrl"`
	PublishedAt time.Time `json:"publishedAt"`
	SourceID    string    `json:"sourceId"`
	CompanyID   string    `json:"companyId"`
	Category    string    `json:"category"`
	Language    string    `json:"language"`
	Keywords    []string  `json:"keywords"`
	IsBreaking  bool      `json:"isBreaking"`
	Importance  int       `json:"importance"`
}

// CreateArticle inserts an article supplied directly over the API.
func (h *ArticleHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req createArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid article data")
		return
	}
	if req.Title == "" || req.URL == "" || req.Category == "" {
		respondWithError(w, http.StatusBadRequest, "Invalid article data")
		return
	}

	article, err := h.store.CreateArticle(r.Context(), news.Article{
		Title:       req.Title,
		Content:     req.Content,
		Summary:     req.Summary,
		URL:         req.URL,
		ImageURL:    req.ImageURL,
		PublishedAt: req.PublishedAt,
		SourceID:    req.SourceID,
		CompanyID:   req.CompanyID,
		Category:    news.Category(req.Category),
		Language:    req.Language,
		Keywords:    req.Keywords,
		IsBreaking:  req.IsBreaking,
		Importance:  req.Importance,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateURL) {
			respondWithError(w, http.StatusConflict, "Article URL already exists")
		} else {
			respondWithError(w, http.StatusBadRequest, "Invalid article data")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, article)
}
