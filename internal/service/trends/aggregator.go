// internal/service/trends/aggregator.go

package trends

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"mangaintel/internal/adapter/events"
	"mangaintel/internal/adapter/storage"
	"mangaintel/internal/domain/news"
)

// Aggregator recomputes keyword trends from the recent article window.
type Aggregator struct {
	store  news.Store
	events *events.Publisher
	logger *slog.Logger
}

// New creates a trend aggregator over the store.
func New(store news.Store, pub *events.Publisher, logger *slog.Logger) *Aggregator {
	return &Aggregator{store: store, events: pub, logger: logger}
}

// UpdateTrends counts keyword occurrences across the last 24 hours of
// articles and upserts a 24h trend per observed keyword. An article
// contributes at most 1 to a keyword's count. Keywords absent from the
// current window keep their previous trend untouched; stale trends are
// not pruned.
func (ag *Aggregator) UpdateTrends(ctx context.Context) error {
	articles, err := ag.store.RecentArticles(ctx, 24)
	if err != nil {
		return fmt.Errorf("recent articles: %w", err)
	}

	counts := make(map[string]int)
	for _, article := range articles {
		for _, keyword := range article.Keywords {
			counts[keyword]++
		}
	}

	for keyword, count := range counts {
		if err := ag.upsert(ctx, keyword, count); err != nil {
			return err
		}
	}

	if ag.logger != nil {
		ag.logger.Debug("trends updated", "keywords", len(counts))
	}
	return nil
}

func (ag *Aggregator) upsert(ctx context.Context, keyword string, count int) error {
	existing, err := ag.store.TrendByKeyword(ctx, keyword, news.Period24h)
	if errors.Is(err, storage.ErrNotFound) {
		created, err := ag.store.CreateTrend(ctx, news.Trend{
			Keyword:   keyword,
			Mentions:  count,
			Sentiment: news.SentimentNeutral,
			Period:    news.Period24h,
		})
		if err != nil {
			return fmt.Errorf("create trend %q: %w", keyword, err)
		}
		ag.events.TrendUpdated(created)
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup trend %q: %w", keyword, err)
	}

	change := 0
	if existing.Mentions > 0 {
		change = int(math.Round(float64(count-existing.Mentions) / float64(existing.Mentions) * 100))
	}

	updated, err := ag.store.UpdateTrend(ctx, existing.ID, news.TrendUpdate{
		Mentions:         &count,
		ChangePercentage: &change,
	})
	if err != nil {
		return fmt.Errorf("update trend %q: %w", keyword, err)
	}

	ag.events.TrendUpdated(updated)
	return nil
}
