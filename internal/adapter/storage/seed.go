// internal/adapter/storage/seed.go

package storage

import (
	"context"
	"fmt"
	"time"

	"mangaintel/internal/domain/news"
)

// Seed populates the store with demo companies, sources, articles,
// alerts, and trends so the dashboard has data before the first fetch
// cycle completes. Intended for development environments only.
func Seed(ctx context.Context, store news.Store) error {
	lineManga, err := store.CreateCompany(ctx, news.Company{
		Name:        "LINE Manga",
		Type:        news.CompanyCompetitor,
		Website:     "https://manga.line.me",
		Description: "Digital manga platform by LINE Corporation",
		IsActive:    true,
	})
	if err != nil {
		return fmt.Errorf("seed companies: %w", err)
	}

	piccoma, err := store.CreateCompany(ctx, news.Company{
		Name:        "Piccoma",
		Type:        news.CompanyCompetitor,
		Website:     "https://piccoma.com",
		Description: "Webtoon and manga platform",
		IsActive:    true,
	})
	if err != nil {
		return fmt.Errorf("seed companies: %w", err)
	}

	if _, err := store.CreateCompany(ctx, news.Company{
		Name:        "Shueisha",
		Type:        news.CompanyPublisher,
		Website:     "https://www.shueisha.co.jp",
		Description: "Major manga publisher",
		IsActive:    true,
	}); err != nil {
		return fmt.Errorf("seed companies: %w", err)
	}

	seedSources := []news.Source{
		{Name: "Anime News Network", URL: "https://www.animenewsnetwork.com/rss.xml", Type: news.SourceRSS, Language: "en", IsActive: true},
		{Name: "Comic Natalie", URL: "https://natalie.mu/comic", Type: news.SourceScrape, Language: "ja", IsActive: true},
	}
	for _, src := range seedSources {
		if _, err := store.CreateSource(ctx, src); err != nil {
			return fmt.Errorf("seed sources: %w", err)
		}
	}

	positive := news.SentimentPositive
	positiveScore := 75
	neutral := news.SentimentNeutral
	neutralScore := 10

	seedArticles := []news.Article{
		{
			Title:          "LINE Manga announces strategic partnership with major Korean webtoon publisher",
			Content:        "LINE Manga has announced a strategic partnership with a major Korean webtoon publisher to bring exclusive content to the Japanese market...",
			Summary:        "The collaboration aims to bring premium Korean webtoon content to the Japanese market.",
			URL:            "https://example.com/line-manga-partnership",
			PublishedAt:    time.Now().Add(-2 * time.Minute),
			CompanyID:      lineManga.ID,
			Category:       news.CategoryCompetitor,
			Sentiment:      &positive,
			SentimentScore: &positiveScore,
			Keywords:       []string{"partnership", "webtoon", "korean", "exclusive"},
			IsBreaking:     true,
			Importance:     5,
		},
		{
			Title:          "Piccoma expands AI-powered recommendation system with machine learning partnership",
			Content:        "Piccoma has announced the expansion of its AI-powered recommendation system through a new machine learning partnership...",
			Summary:        "The new system promises to increase user engagement through personalized content discovery.",
			URL:            "https://example.com/piccoma-ai-expansion",
			PublishedAt:    time.Now().Add(-15 * time.Minute),
			CompanyID:      piccoma.ID,
			Category:       news.CategoryCompetitor,
			Sentiment:      &neutral,
			SentimentScore: &neutralScore,
			Keywords:       []string{"ai", "recommendation", "machine learning", "engagement"},
			Importance:     4,
		},
	}
	for _, a := range seedArticles {
		if _, err := store.CreateArticle(ctx, a); err != nil {
			return fmt.Errorf("seed articles: %w", err)
		}
	}

	seedAlerts := []news.Alert{
		{Title: "High Competition Alert", Message: "LINE Manga market share increased 5%", Type: news.AlertError, Priority: 5, CompanyID: lineManga.ID},
		{Title: "Partnership Opportunity", Message: "New Korean publisher seeking distribution", Type: news.AlertWarning, Priority: 3},
	}
	for _, a := range seedAlerts {
		if _, err := store.CreateAlert(ctx, a); err != nil {
			return fmt.Errorf("seed alerts: %w", err)
		}
	}

	seedTrends := []news.Trend{
		{Keyword: "webtoon", Mentions: 47, Sentiment: news.SentimentPositive, Period: news.Period24h},
		{Keyword: "ai", Mentions: 23, Sentiment: news.SentimentPositive, Period: news.Period24h},
		{Keyword: "subscription", Mentions: 19, Sentiment: news.SentimentPositive, Period: news.Period24h},
	}
	for _, t := range seedTrends {
		if _, err := store.CreateTrend(ctx, t); err != nil {
			return fmt.Errorf("seed trends: %w", err)
		}
	}

	return nil
}
