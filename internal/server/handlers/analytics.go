// internal/server/handlers/analytics.go

package handlers

import (
	"net/http"

	"mangaintel/internal/domain/news"
	"mangaintel/internal/service/sentiment"
)

// AnalyticsHandler serves aggregated dashboard statistics.
type AnalyticsHandler struct {
	store    news.Store
	analyzer *sentiment.Analyzer
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(store news.Store, analyzer *sentiment.Analyzer) *AnalyticsHandler {
	return &AnalyticsHandler{store: store, analyzer: analyzer}
}

type statsResponse struct {
	Articles        news.ArticleStats      `json:"articles"`
	Sentiment       news.SentimentStats    `json:"sentiment"`
	MarketSentiment news.MarketSentiment   `json:"marketSentiment"`
	TopCompanies    []news.CompanyMentions `json:"topCompanies"`
}

// Stats returns article volume, sentiment distribution, overall market
// sentiment and per-company mention counts in a single payload.
func (h *AnalyticsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	articles, err := h.store.ArticleStats(ctx)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to compute article stats")
		return
	}

	sentimentStats, err := h.store.SentimentStats(ctx)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to compute sentiment stats")
		return
	}

	market, err := h.analyzer.MarketSentiment(ctx)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to compute market sentiment")
		return
	}

	mentions, err := h.store.CompanyMentions(ctx)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to compute company mentions")
		return
	}

	respondWithJSON(w, http.StatusOK, statsResponse{
		Articles:        articles,
		Sentiment:       sentimentStats,
		MarketSentiment: market,
		TopCompanies:    mentions,
	})
}
