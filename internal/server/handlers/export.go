// internal/server/handlers/export.go

package handlers

import (
	"encoding/csv"
	"net/http"
	"time"

	"mangaintel/internal/domain/news"
)

// ExportHandler produces downloadable article reports.
type ExportHandler struct {
	store news.Store
}

// NewExportHandler creates a new export handler.
func NewExportHandler(store news.Store) *ExportHandler {
	return &ExportHandler{store: store}
}

// Export writes the filtered article set as CSV (default) or JSON.
// Supported query parameters: format, category, dateFrom, dateTo.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	articles, err := h.store.ListArticles(r.Context(), news.ArticleFilter{
		Category: news.Category(q.Get("category")),
	})
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to export articles")
		return
	}

	if from, parseErr := time.Parse(time.RFC3339, q.Get("dateFrom")); parseErr == nil {
		articles = filterAfter(articles, from)
	}
	if to, parseErr := time.Parse(time.RFC3339, q.Get("dateTo")); parseErr == nil {
		articles = filterBefore(articles, to)
	}

	if q.Get("format") == "json" {
		w.Header().Set("Content-Disposition", `attachment; filename="manga-industry-report.json"`)
		respondWithJSON(w, http.StatusOK, articles)
		return
	}

	companies, err := h.store.ListCompanies(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to export articles")
		return
	}
	names := make(map[string]string, len(companies))
	for _, c := range companies {
		names[c.ID] = c.Name
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="manga-industry-report.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Title", "URL", "Published Date", "Category", "Sentiment", "Company"})
	for _, a := range articles {
		sentiment := ""
		if a.Sentiment != nil {
			sentiment = string(*a.Sentiment)
		}
		_ = cw.Write([]string{
			a.Title,
			a.URL,
			a.PublishedAt.Format(time.RFC3339),
			string(a.Category),
			sentiment,
			names[a.CompanyID],
		})
	}
	cw.Flush()
}

func filterAfter(articles []news.Article, cutoff time.Time) []news.Article {
	out := articles[:0]
	for _, a := range articles {
		if !a.PublishedAt.Before(cutoff) {
			out = append(out, a)
		}
	}
	return out
}

func filterBefore(articles []news.Article, cutoff time.Time) []news.Article {
	out := articles[:0]
	for _, a := range articles {
		if !a.PublishedAt.After(cutoff) {
			out = append(out, a)
		}
	}
	return out
}
