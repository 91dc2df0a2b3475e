// internal/adapter/storage/trend_store.go

package storage

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"mangaintel/internal/domain/news"
)

// CreateTrend inserts a new trend. ChangePercentage starts at 0 on
// first creation regardless of input.
func (s *MemoryStore) CreateTrend(_ context.Context, t news.Trend) (news.Trend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = uuid.New().String()
	t.ChangePercentage = 0
	t.UpdatedAt = time.Now()
	if t.Period == "" {
		t.Period = news.Period24h
	}

	s.trends[t.ID] = t
	return t, nil
}

// TrendByKeyword looks up the trend for a keyword within one period.
// The same keyword in a different period is a distinct trend.
func (s *MemoryStore) TrendByKeyword(_ context.Context, keyword string, period news.Period) (news.Trend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.trends {
		if t.Keyword == keyword && t.Period == period {
			return t, nil
		}
	}
	return news.Trend{}, ErrNotFound
}

// AllTrends returns every trend sorted by change percentage descending.
func (s *MemoryStore) AllTrends(_ context.Context) ([]news.Trend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trends := make([]news.Trend, 0, len(s.trends))
	for _, t := range s.trends {
		trends = append(trends, t)
	}
	sortByChange(trends)
	return trends, nil
}

// TrendsByPeriod returns trends for one period sorted by change
// percentage descending.
func (s *MemoryStore) TrendsByPeriod(_ context.Context, period news.Period) ([]news.Trend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var trends []news.Trend
	for _, t := range s.trends {
		if t.Period == period {
			trends = append(trends, t)
		}
	}
	sortByChange(trends)
	return trends, nil
}

// UpdateTrend merges the set fields of upd into an existing trend and
// refreshes its timestamp.
func (s *MemoryStore) UpdateTrend(_ context.Context, id string, upd news.TrendUpdate) (news.Trend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trends[id]
	if !ok {
		return news.Trend{}, ErrNotFound
	}

	if upd.Mentions != nil {
		t.Mentions = *upd.Mentions
	}
	if upd.Sentiment != nil {
		t.Sentiment = *upd.Sentiment
	}
	if upd.ChangePercentage != nil {
		t.ChangePercentage = *upd.ChangePercentage
	}
	t.UpdatedAt = time.Now()

	s.trends[id] = t
	return t, nil
}

func sortByChange(trends []news.Trend) {
	sort.Slice(trends, func(i, j int) bool {
		return trends[i].ChangePercentage > trends[j].ChangePercentage
	})
}
