// internal/adapter/events/publisher_test.go

package events

import (
	"testing"
	"time"

	"mangaintel/internal/domain/news"
)

func TestPublisherWithoutConnectionDropsEvents(t *testing.T) {
	// Components publish unconditionally; a publisher built without a
	// broker connection must absorb every call.
	p := NewPublisher(nil, "intel", nil)

	p.ArticleCreated(news.Article{Title: "t", URL: "https://example.com/x", PublishedAt: time.Now()})
	p.AlertCreated(news.Alert{Title: "a"})
	p.TrendUpdated(news.Trend{Keyword: "webtoon"})
}

func TestNilPublisherDropsEvents(t *testing.T) {
	var p *Publisher

	p.ArticleCreated(news.Article{})
	p.AlertCreated(news.Alert{})
	p.TrendUpdated(news.Trend{})
}
