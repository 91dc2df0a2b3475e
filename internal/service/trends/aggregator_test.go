// internal/service/trends/aggregator_test.go

package trends

import (
	"context"
	"testing"
	"time"

	"mangaintel/internal/adapter/storage"
	"mangaintel/internal/domain/news"
)

func seedArticles(t *testing.T, store *storage.MemoryStore, n int, keyword, urlPrefix string) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := store.CreateArticle(context.Background(), news.Article{
			Title:       "article",
			URL:         urlPrefix + string(rune('a'+i)),
			Category:    news.CategoryMarket,
			Keywords:    []string{keyword},
			PublishedAt: time.Now().Add(-time.Hour),
		})
		if err != nil {
			t.Fatalf("CreateArticle: %v", err)
		}
	}
}

func TestUpdateTrendsCreatesWithZeroChange(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	seedArticles(t, store, 4, "webtoon", "https://example.com/w/")

	ag := New(store, nil, nil)
	if err := ag.UpdateTrends(ctx); err != nil {
		t.Fatalf("UpdateTrends: %v", err)
	}

	trend, err := store.TrendByKeyword(ctx, "webtoon", news.Period24h)
	if err != nil {
		t.Fatalf("TrendByKeyword: %v", err)
	}
	if trend.Mentions != 4 {
		t.Errorf("got mentions %d, want 4", trend.Mentions)
	}
	if trend.ChangePercentage != 0 {
		t.Errorf("got change %d, want 0 on first observation", trend.ChangePercentage)
	}
	if trend.Sentiment != news.SentimentNeutral {
		t.Errorf("got sentiment %v, want neutral", trend.Sentiment)
	}
}

func TestUpdateTrendsComputesChange(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	// Previous run saw 20 mentions.
	prev, err := store.CreateTrend(ctx, news.Trend{
		Keyword: "manga", Mentions: 20, Sentiment: news.SentimentNeutral, Period: news.Period24h,
	})
	if err != nil {
		t.Fatalf("CreateTrend: %v", err)
	}

	seedArticles(t, store, 25, "manga", "https://example.com/m/")

	ag := New(store, nil, nil)
	if err := ag.UpdateTrends(ctx); err != nil {
		t.Fatalf("UpdateTrends: %v", err)
	}

	trend, err := store.TrendByKeyword(ctx, "manga", news.Period24h)
	if err != nil {
		t.Fatalf("TrendByKeyword: %v", err)
	}
	if trend.ID != prev.ID {
		t.Error("expected the existing trend to be updated, not replaced")
	}
	if trend.Mentions != 25 {
		t.Errorf("got mentions %d, want 25", trend.Mentions)
	}
	if trend.ChangePercentage != 25 {
		t.Errorf("got change %d, want 25", trend.ChangePercentage)
	}
}

func TestUpdateTrendsZeroPreviousMentions(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	if _, err := store.CreateTrend(ctx, news.Trend{
		Keyword: "ai", Mentions: 0, Sentiment: news.SentimentNeutral, Period: news.Period24h,
	}); err != nil {
		t.Fatalf("CreateTrend: %v", err)
	}

	seedArticles(t, store, 3, "ai", "https://example.com/ai/")

	ag := New(store, nil, nil)
	if err := ag.UpdateTrends(ctx); err != nil {
		t.Fatalf("UpdateTrends: %v", err)
	}

	trend, err := store.TrendByKeyword(ctx, "ai", news.Period24h)
	if err != nil {
		t.Fatalf("TrendByKeyword: %v", err)
	}
	if trend.ChangePercentage != 0 {
		t.Errorf("got change %d, want 0 when previous mentions were 0", trend.ChangePercentage)
	}
	if trend.Mentions != 3 {
		t.Errorf("got mentions %d, want 3", trend.Mentions)
	}
}

func TestUpdateTrendsLeavesAbsentKeywordsUntouched(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	stale, err := store.CreateTrend(ctx, news.Trend{
		Keyword: "subscription", Mentions: 9, Sentiment: news.SentimentNeutral, Period: news.Period24h,
	})
	if err != nil {
		t.Fatalf("CreateTrend: %v", err)
	}

	seedArticles(t, store, 2, "webtoon", "https://example.com/only/")

	ag := New(store, nil, nil)
	if err := ag.UpdateTrends(ctx); err != nil {
		t.Fatalf("UpdateTrends: %v", err)
	}

	got, err := store.TrendByKeyword(ctx, "subscription", news.Period24h)
	if err != nil {
		t.Fatalf("TrendByKeyword: %v", err)
	}
	if got.Mentions != stale.Mentions || got.ChangePercentage != stale.ChangePercentage {
		t.Errorf("absent keyword was modified: %+v", got)
	}
}

func TestUpdateTrendsIgnoresOldArticles(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	if _, err := store.CreateArticle(ctx, news.Article{
		Title:       "old",
		URL:         "https://example.com/old",
		Category:    news.CategoryMarket,
		Keywords:    []string{"expansion"},
		PublishedAt: time.Now().Add(-48 * time.Hour),
	}); err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}

	ag := New(store, nil, nil)
	if err := ag.UpdateTrends(ctx); err != nil {
		t.Fatalf("UpdateTrends: %v", err)
	}

	if _, err := store.TrendByKeyword(ctx, "expansion", news.Period24h); err == nil {
		t.Error("articles outside the 24h window must not create trends")
	}
}
