package news

import (
	"context"
	"time"
)

// CompanyUpdate is a partial update; nil fields are left unchanged.
type CompanyUpdate struct {
	Name        *string
	Type        *CompanyType
	Website     *string
	Description *string
	IsActive    *bool
}

// SourceUpdate is a partial update; nil fields are left unchanged.
type SourceUpdate struct {
	Name        *string
	URL         *string
	Type        *SourceType
	Language    *string
	IsActive    *bool
	LastFetched *time.Time
}

// ArticleUpdate is a partial update; nil fields are left unchanged.
type ArticleUpdate struct {
	Title          *string
	Content        *string
	Summary        *string
	Sentiment      *Sentiment
	SentimentScore *int
	Importance     *int
	IsBreaking     *bool
}

// TrendUpdate is a partial update; nil fields are left unchanged.
type TrendUpdate struct {
	Mentions         *int
	Sentiment        *Sentiment
	ChangePercentage *int
}

// Store is the authoritative repository for all entities. All pipeline
// components read and write exclusively through it.
type Store interface {
	// Companies
	CreateCompany(ctx context.Context, c Company) (Company, error)
	GetCompany(ctx context.Context, id string) (Company, error)
	ListCompanies(ctx context.Context) ([]Company, error)
	UpdateCompany(ctx context.Context, id string, upd CompanyUpdate) (Company, error)

	// News sources
	CreateSource(ctx context.Context, s Source) (Source, error)
	GetSource(ctx context.Context, id string) (Source, error)
	ListSources(ctx context.Context) ([]Source, error)
	ActiveSources(ctx context.Context) ([]Source, error)
	UpdateSource(ctx context.Context, id string, upd SourceUpdate) (Source, error)

	// Articles
	CreateArticle(ctx context.Context, a Article) (Article, error)
	GetArticle(ctx context.Context, id string) (Article, error)
	GetArticleByURL(ctx context.Context, url string) (Article, error)
	ListArticles(ctx context.Context, filter ArticleFilter) ([]Article, error)
	ArticlesByCompany(ctx context.Context, companyID string) ([]Article, error)
	RecentArticles(ctx context.Context, windowHours int) ([]Article, error)
	SearchArticles(ctx context.Context, term string) ([]Article, error)
	UpdateArticle(ctx context.Context, id string, upd ArticleUpdate) (Article, error)

	// Alerts
	CreateAlert(ctx context.Context, a Alert) (Alert, error)
	AllAlerts(ctx context.Context) ([]Alert, error)
	UnreadAlerts(ctx context.Context) ([]Alert, error)
	MarkAlertRead(ctx context.Context, id string) error

	// Trends
	CreateTrend(ctx context.Context, t Trend) (Trend, error)
	TrendByKeyword(ctx context.Context, keyword string, period Period) (Trend, error)
	AllTrends(ctx context.Context) ([]Trend, error)
	TrendsByPeriod(ctx context.Context, period Period) ([]Trend, error)
	UpdateTrend(ctx context.Context, id string, upd TrendUpdate) (Trend, error)

	// Analytics
	ArticleStats(ctx context.Context) (ArticleStats, error)
	SentimentStats(ctx context.Context) (SentimentStats, error)
	CompanyMentions(ctx context.Context) ([]CompanyMentions, error)
}
