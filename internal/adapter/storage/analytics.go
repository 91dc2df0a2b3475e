// internal/adapter/storage/analytics.go

package storage

import (
	"context"
	"math"
	"sort"
	"time"

	"mangaintel/internal/domain/news"
)

// ArticleStats summarizes article volume: total count, articles
// published today, and week-over-week growth percentage.
func (s *MemoryStore) ArticleStats(_ context.Context) (news.ArticleStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.Add(-7 * 24 * time.Hour)
	twoWeeksAgo := weekAgo.Add(-7 * 24 * time.Hour)

	stats := news.ArticleStats{Total: len(s.articles)}

	var thisWeek, previousWeek int
	for _, a := range s.articles {
		if !a.PublishedAt.Before(startOfDay) {
			stats.Today++
		}
		switch {
		case !a.PublishedAt.Before(weekAgo):
			thisWeek++
		case !a.PublishedAt.Before(twoWeeksAgo):
			previousWeek++
		}
	}

	if previousWeek > 0 {
		stats.WeekGrowth = int(math.Round(float64(thisWeek-previousWeek) / float64(previousWeek) * 100))
	}
	return stats, nil
}

// SentimentStats counts scored articles by sentiment label.
func (s *MemoryStore) SentimentStats(_ context.Context) (news.SentimentStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats news.SentimentStats
	for _, a := range s.articles {
		if a.Sentiment == nil {
			continue
		}
		switch *a.Sentiment {
		case news.SentimentPositive:
			stats.Positive++
		case news.SentimentNegative:
			stats.Negative++
		case news.SentimentNeutral:
			stats.Neutral++
		}
	}
	return stats, nil
}

// CompanyMentions counts articles per referenced company, most
// mentioned first. Articles pointing at unknown companies are skipped.
func (s *MemoryStore) CompanyMentions(_ context.Context) ([]news.CompanyMentions, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, a := range s.articles {
		if a.CompanyID != "" {
			counts[a.CompanyID]++
		}
	}

	mentions := make([]news.CompanyMentions, 0, len(counts))
	for companyID, n := range counts {
		company, ok := s.companies[companyID]
		if !ok {
			continue
		}
		mentions = append(mentions, news.CompanyMentions{
			CompanyID:   companyID,
			CompanyName: company.Name,
			Mentions:    n,
		})
	}

	sort.Slice(mentions, func(i, j int) bool {
		return mentions[i].Mentions > mentions[j].Mentions
	})
	return mentions, nil
}
