// internal/service/sentiment/analyzer.go

package sentiment

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"mangaintel/internal/domain/news"
)

// Keyword-based sentiment scorer (offline, no external model). The
// word lists are fixed; scoring is deterministic.

var positiveWords = wordSet(
	"success", "growth", "increase", "expansion", "partnership", "collaboration",
	"innovative", "breakthrough", "launch", "positive", "excellent", "strong",
)

var negativeWords = wordSet(
	"decline", "decrease", "loss", "failure", "crisis", "problem",
	"concern", "negative", "weak", "poor", "difficult", "challenge",
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Score maps text to a sentiment label and an integer score in
// [-100, 100]. Tokens are split on whitespace and matched
// case-insensitively against the fixed word lists; the raw
// positive-minus-negative count is scaled by 10 and clamped.
func Score(text string) (news.Sentiment, int) {
	raw := 0
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if _, ok := positiveWords[word]; ok {
			raw++
		} else if _, ok := negativeWords[word]; ok {
			raw--
		}
	}

	value := raw * 10
	if value > 100 {
		value = 100
	}
	if value < -100 {
		value = -100
	}

	label := news.SentimentNeutral
	if value > 20 {
		label = news.SentimentPositive
	} else if value < -20 {
		label = news.SentimentNegative
	}
	return label, value
}

// Analyzer scores unscored articles and aggregates market tone.
type Analyzer struct {
	store  news.Store
	logger *slog.Logger
}

// NewAnalyzer creates a sentiment analyzer backed by the store.
func NewAnalyzer(store news.Store, logger *slog.Logger) *Analyzer {
	return &Analyzer{store: store, logger: logger}
}

// AnalyzeAll scores every article that has no sentiment yet. Articles
// already carrying both a label and a score are never rescored, so
// re-running the job is idempotent.
func (a *Analyzer) AnalyzeAll(ctx context.Context) error {
	articles, err := a.store.ListArticles(ctx, news.ArticleFilter{})
	if err != nil {
		return fmt.Errorf("list articles: %w", err)
	}

	scored := 0
	for _, article := range articles {
		if article.Scored() {
			continue
		}

		text := article.Title + " " + article.Content + " " + article.Summary
		label, value := Score(text)

		if _, err := a.store.UpdateArticle(ctx, article.ID, news.ArticleUpdate{
			Sentiment:      &label,
			SentimentScore: &value,
		}); err != nil {
			return fmt.Errorf("score article %s: %w", article.ID, err)
		}
		scored++
	}

	if a.logger != nil && scored > 0 {
		a.logger.Info("sentiment analysis complete", "scored", scored)
	}
	return nil
}

// MarketSentiment aggregates the last 24 hours of coverage into an
// overall label and a 0-100 percentage. An empty window yields
// {neutral, 0}; that is a defined result, not an error.
func (a *Analyzer) MarketSentiment(ctx context.Context) (news.MarketSentiment, error) {
	recent, err := a.store.RecentArticles(ctx, 24)
	if err != nil {
		return news.MarketSentiment{}, fmt.Errorf("recent articles: %w", err)
	}

	if len(recent) == 0 {
		return news.MarketSentiment{Sentiment: news.SentimentNeutral, Percentage: 0}, nil
	}

	total := 0
	for _, article := range recent {
		if article.SentimentScore != nil {
			total += *article.SentimentScore
		}
	}

	mean := float64(total) / float64(len(recent))
	percentage := int(math.Round((mean + 100) / 200 * 100))

	label := news.SentimentNeutral
	if mean > 10 {
		label = news.SentimentPositive
	} else if mean < -10 {
		label = news.SentimentNegative
	}

	return news.MarketSentiment{Sentiment: label, Percentage: percentage}, nil
}
