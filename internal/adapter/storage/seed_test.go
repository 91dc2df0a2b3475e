// internal/adapter/storage/seed_test.go

package storage

import (
	"context"
	"testing"

	"mangaintel/internal/domain/news"
)

func TestSeed(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := Seed(ctx, store); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	companies, err := store.ListCompanies(ctx)
	if err != nil {
		t.Fatalf("ListCompanies: %v", err)
	}
	if len(companies) != 3 {
		t.Errorf("got %d companies, want 3", len(companies))
	}

	sources, err := store.ListSources(ctx)
	if err != nil {
		t.Fatalf("ListSources: %v", err)
	}
	if len(sources) != 2 {
		t.Errorf("got %d sources, want 2", len(sources))
	}

	articles, err := store.ListArticles(ctx, news.ArticleFilter{})
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if len(articles) != 2 {
		t.Errorf("got %d articles, want 2", len(articles))
	}

	alerts, err := store.UnreadAlerts(ctx)
	if err != nil {
		t.Fatalf("UnreadAlerts: %v", err)
	}
	if len(alerts) != 2 {
		t.Errorf("got %d unread alerts, want 2", len(alerts))
	}

	trends, err := store.TrendsByPeriod(ctx, news.Period24h)
	if err != nil {
		t.Fatalf("TrendsByPeriod: %v", err)
	}
	if len(trends) != 3 {
		t.Errorf("got %d trends, want 3", len(trends))
	}
}

func TestSeedTwiceReportsDuplicate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := Seed(ctx, store); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(ctx, store); err == nil {
		t.Error("expected the second seed to fail on duplicate article URLs")
	}
}
