// internal/service/alerting/engine.go

package alerting

import (
	"context"
	"fmt"
	"log/slog"

	"mangaintel/internal/adapter/events"
	"mangaintel/internal/domain/news"
)

// Rule thresholds. All three rules are evaluated independently per
// company; any combination may fire in one pass.
const (
	activityThreshold = 3   // articles per hour that count as high activity
	negativeScoreBar  = -50 // sentiment score below which coverage alerts
)

// Engine evaluates per-company alert rules against the last hour of
// articles. Conditions persisting across runs fire again each run;
// there is deliberately no suppression window.
type Engine struct {
	store  news.Store
	events *events.Publisher
	logger *slog.Logger
}

// New creates an alert engine over the store.
func New(store news.Store, pub *events.Publisher, logger *slog.Logger) *Engine {
	return &Engine{store: store, events: pub, logger: logger}
}

// CheckForAlerts evaluates every company against the recent window.
func (e *Engine) CheckForAlerts(ctx context.Context) error {
	companies, err := e.store.ListCompanies(ctx)
	if err != nil {
		return fmt.Errorf("list companies: %w", err)
	}

	recent, err := e.store.RecentArticles(ctx, 1)
	if err != nil {
		return fmt.Errorf("recent articles: %w", err)
	}

	for _, company := range companies {
		var matching []news.Article
		for _, article := range recent {
			if article.CompanyID == company.ID {
				matching = append(matching, article)
			}
		}
		if err := e.evaluate(ctx, company, matching); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) evaluate(ctx context.Context, company news.Company, articles []news.Article) error {
	// High activity.
	if len(articles) >= activityThreshold {
		if err := e.raise(ctx, news.Alert{
			Title:     "High Activity Alert",
			Message:   fmt.Sprintf("%s has %d new articles in the last hour", company.Name, len(articles)),
			Type:      news.AlertWarning,
			Priority:  4,
			CompanyID: company.ID,
		}); err != nil {
			return err
		}
	}

	// Breaking news: reference the first breaking article encountered.
	for _, article := range articles {
		if !article.IsBreaking {
			continue
		}
		if err := e.raise(ctx, news.Alert{
			Title:     "Breaking News Alert",
			Message:   fmt.Sprintf("Breaking news about %s: %s", company.Name, article.Title),
			Type:      news.AlertError,
			Priority:  5,
			CompanyID: company.ID,
			ArticleID: article.ID,
		}); err != nil {
			return err
		}
		break
	}

	// Strongly negative coverage.
	for _, article := range articles {
		if article.Sentiment == nil || article.SentimentScore == nil {
			continue
		}
		if *article.Sentiment != news.SentimentNegative || *article.SentimentScore >= negativeScoreBar {
			continue
		}
		if err := e.raise(ctx, news.Alert{
			Title:     "Negative Sentiment Alert",
			Message:   fmt.Sprintf("Negative coverage detected for %s", company.Name),
			Type:      news.AlertWarning,
			Priority:  3,
			CompanyID: company.ID,
		}); err != nil {
			return err
		}
		break
	}

	return nil
}

func (e *Engine) raise(ctx context.Context, alert news.Alert) error {
	created, err := e.store.CreateAlert(ctx, alert)
	if err != nil {
		return fmt.Errorf("create alert: %w", err)
	}

	e.events.AlertCreated(created)
	if e.logger != nil {
		e.logger.Info("alert raised", "title", created.Title, "company", created.CompanyID, "priority", created.Priority)
	}
	return nil
}
