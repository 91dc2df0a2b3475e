// internal/adapter/storage/article_store.go

package storage

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"mangaintel/internal/domain/news"
)

// CreateArticle inserts a new article. The URL must be unique across
// all articles; inserting a known URL returns ErrDuplicateURL and
// leaves the existing record untouched.
func (s *MemoryStore) CreateArticle(_ context.Context, a news.Article) (news.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.articleByURL[a.URL]; exists {
		return news.Article{}, ErrDuplicateURL
	}

	a.ID = uuid.New().String()
	if a.Language == "" {
		a.Language = "ja"
	}
	if a.Importance == 0 {
		a.Importance = 1
	}
	a.Keywords = cloneKeywords(a.Keywords)

	s.articles[a.ID] = a
	s.articleByURL[a.URL] = a.ID
	return a, nil
}

// GetArticle retrieves an article by ID.
func (s *MemoryStore) GetArticle(_ context.Context, id string) (news.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[id]
	if !ok {
		return news.Article{}, ErrNotFound
	}
	return cloneArticle(a), nil
}

// GetArticleByURL retrieves an article by its deduplication key.
func (s *MemoryStore) GetArticleByURL(_ context.Context, url string) (news.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.articleByURL[url]
	if !ok {
		return news.Article{}, ErrNotFound
	}
	return cloneArticle(s.articles[id]), nil
}

// ListArticles returns articles newest-first, narrowed by the filter
// and paginated by (Offset, Limit). Limit 0 means no limit.
func (s *MemoryStore) ListArticles(_ context.Context, filter news.ArticleFilter) ([]news.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var articles []news.Article
	for _, a := range s.articles {
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		if filter.CompanyID != "" && a.CompanyID != filter.CompanyID {
			continue
		}
		articles = append(articles, cloneArticle(a))
	}
	sortNewestFirst(articles)

	offset := filter.Offset
	if offset > len(articles) {
		offset = len(articles)
	}
	articles = articles[offset:]

	if filter.Limit > 0 && filter.Limit < len(articles) {
		articles = articles[:filter.Limit]
	}
	return articles, nil
}

// ArticlesByCompany returns all articles referencing the company.
func (s *MemoryStore) ArticlesByCompany(_ context.Context, companyID string) ([]news.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var articles []news.Article
	for _, a := range s.articles {
		if a.CompanyID == companyID {
			articles = append(articles, cloneArticle(a))
		}
	}
	sortNewestFirst(articles)
	return articles, nil
}

// RecentArticles returns articles published within the last windowHours
// hours, newest-first.
func (s *MemoryStore) RecentArticles(_ context.Context, windowHours int) ([]news.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := time.Now().Add(-time.Duration(windowHours) * time.Hour)

	var articles []news.Article
	for _, a := range s.articles {
		if a.PublishedAt.After(cutoff) {
			articles = append(articles, cloneArticle(a))
		}
	}
	sortNewestFirst(articles)
	return articles, nil
}

// SearchArticles performs a case-insensitive substring match over
// title, content, summary, and keywords.
func (s *MemoryStore) SearchArticles(_ context.Context, term string) ([]news.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lowered := strings.ToLower(term)

	var articles []news.Article
	for _, a := range s.articles {
		if matchesTerm(a, lowered) {
			articles = append(articles, cloneArticle(a))
		}
	}
	sortNewestFirst(articles)
	return articles, nil
}

// UpdateArticle merges the set fields of upd into an existing article.
func (s *MemoryStore) UpdateArticle(_ context.Context, id string, upd news.ArticleUpdate) (news.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles[id]
	if !ok {
		return news.Article{}, ErrNotFound
	}

	if upd.Title != nil {
		a.Title = *upd.Title
	}
	if upd.Content != nil {
		a.Content = *upd.Content
	}
	if upd.Summary != nil {
		a.Summary = *upd.Summary
	}
	if upd.Sentiment != nil {
		sent := *upd.Sentiment
		a.Sentiment = &sent
	}
	if upd.SentimentScore != nil {
		score := *upd.SentimentScore
		a.SentimentScore = &score
	}
	if upd.Importance != nil {
		a.Importance = *upd.Importance
	}
	if upd.IsBreaking != nil {
		a.IsBreaking = *upd.IsBreaking
	}

	s.articles[id] = a
	return cloneArticle(a), nil
}

func sortNewestFirst(articles []news.Article) {
	sort.Slice(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
}

func cloneArticle(a news.Article) news.Article {
	a.Keywords = cloneKeywords(a.Keywords)
	if a.Sentiment != nil {
		sent := *a.Sentiment
		a.Sentiment = &sent
	}
	if a.SentimentScore != nil {
		score := *a.SentimentScore
		a.SentimentScore = &score
	}
	return a
}

func cloneKeywords(keywords []string) []string {
	if keywords == nil {
		return nil
	}
	out := make([]string, len(keywords))
	copy(out, keywords)
	return out
}
