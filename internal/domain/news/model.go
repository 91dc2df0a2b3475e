package news

import (
	"time"
)

// CompanyType classifies a tracked company.
type CompanyType string

const (
	CompanyCompetitor CompanyType = "competitor"
	CompanyPublisher  CompanyType = "publisher"
	CompanyPlatform   CompanyType = "platform"
)

// Company is a tracked market participant. Identity is immutable;
// metadata may be updated after registration.
type Company struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        CompanyType `json:"type"`
	Website     string      `json:"website,omitempty"`
	Description string      `json:"description,omitempty"`
	IsActive    bool        `json:"isActive"`
}

// SourceType selects the fetch strategy for a news source.
type SourceType string

const (
	SourceRSS    SourceType = "rss"
	SourceScrape SourceType = "scrape"
	SourceAPI    SourceType = "api"
)

// Source is a configured origin of raw news items. LastFetched is nil
// until the first successful fetch attempt.
type Source struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	Type        SourceType `json:"type"`
	Language    string     `json:"language"`
	IsActive    bool       `json:"isActive"`
	LastFetched *time.Time `json:"lastFetched,omitempty"`
}

// Category classifies an article by topic.
type Category string

const (
	CategoryCompetitor  Category = "competitor"
	CategoryPartnership Category = "partnership"
	CategoryMarket      Category = "market"
	CategoryGlobal      Category = "global"
)

// Sentiment is a three-way tone label.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Article is a normalized news item. URL is unique across all articles
// and serves as the deduplication key. Sentiment and SentimentScore are
// nil until the analyzer scores the article, and are set exactly once.
type Article struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Content        string     `json:"content,omitempty"`
	Summary        string     `json:"summary,omitempty"`
	URL            string     `json:"url"`
	ImageURL       string     `json:"imageUrl,omitempty"`
	PublishedAt    time.Time  `json:"publishedAt"`
	SourceID       string     `json:"sourceId,omitempty"`
	CompanyID      string     `json:"companyId,omitempty"`
	Category       Category   `json:"category"`
	Sentiment      *Sentiment `json:"sentiment,omitempty"`
	SentimentScore *int       `json:"sentimentScore,omitempty"` // -100..100
	Language       string     `json:"language"`
	Keywords       []string   `json:"keywords,omitempty"` // lowercase, deduplicated
	IsBreaking     bool       `json:"isBreaking"`
	Importance     int        `json:"importance"` // 1..5
}

// Scored reports whether the analyzer has already scored this article.
func (a Article) Scored() bool {
	return a.Sentiment != nil && a.SentimentScore != nil
}

// AlertType is the severity class of an alert.
type AlertType string

const (
	AlertInfo    AlertType = "info"
	AlertWarning AlertType = "warning"
	AlertError   AlertType = "error"
	AlertSuccess AlertType = "success"
)

// Alert is a rule-generated notification. Only the read flag is mutated
// after creation.
type Alert struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      AlertType `json:"type"`
	Priority  int       `json:"priority"` // 1..5
	CompanyID string    `json:"companyId,omitempty"`
	ArticleID string    `json:"articleId,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// Period is the rolling window a trend is computed over.
type Period string

const (
	Period24h Period = "24h"
	Period7d  Period = "7d"
	Period30d Period = "30d"
)

// Trend tracks mention counts for a keyword within a period. A keyword
// is unique per period; the same keyword in a different period is a
// distinct trend.
type Trend struct {
	ID               string    `json:"id"`
	Keyword          string    `json:"keyword"`
	Mentions         int       `json:"mentions"`
	Sentiment        Sentiment `json:"sentiment,omitempty"`
	ChangePercentage int       `json:"changePercentage"`
	Period           Period    `json:"period"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ArticleFilter narrows article listings. Zero values mean "no
// constraint"; Limit 0 returns everything after Offset.
type ArticleFilter struct {
	Category  Category
	CompanyID string
	Limit     int
	Offset    int
}

// MarketSentiment is the aggregated tone of the last 24 hours of
// coverage. Percentage maps the mean score onto 0..100.
type MarketSentiment struct {
	Sentiment  Sentiment `json:"sentiment"`
	Percentage int       `json:"percentage"`
}

// ArticleStats summarizes article volume for the analytics endpoint.
type ArticleStats struct {
	Total      int `json:"total"`
	Today      int `json:"today"`
	WeekGrowth int `json:"weekGrowth"` // percent vs previous week
}

// SentimentStats counts scored articles by label.
type SentimentStats struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// CompanyMentions pairs a company with its article count.
type CompanyMentions struct {
	CompanyID   string `json:"companyId"`
	CompanyName string `json:"companyName"`
	Mentions    int    `json:"mentions"`
}
