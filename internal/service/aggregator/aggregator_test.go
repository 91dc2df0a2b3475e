// internal/service/aggregator/aggregator_test.go

package aggregator

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"mangaintel/internal/adapter/storage"
	"mangaintel/internal/domain/news"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
		want    news.Category
	}{
		{
			name:  "partnership keyword",
			title: "Shueisha announces partnership with Webtoon",
			want:  news.CategoryPartnership,
		},
		{
			name:    "collaboration in content",
			title:   "Industry news",
			content: "A new collaboration between publishers",
			want:    news.CategoryPartnership,
		},
		{
			name:  "global keyword",
			title: "Platform plans international rollout",
			want:  news.CategoryGlobal,
		},
		{
			name:  "competitor name",
			title: "Piccoma tops app revenue charts",
			want:  news.CategoryCompetitor,
		},
		{
			name:  "partnership beats global",
			title: "Global partnership announced",
			want:  news.CategoryPartnership,
		},
		{
			name:  "global beats competitor",
			title: "Piccoma goes global",
			want:  news.CategoryGlobal,
		},
		{
			name:  "no match falls back to market",
			title: "Quarterly earnings released",
			want:  news.CategoryMarket,
		},
		{
			name:  "case insensitive",
			title: "PARTNERSHIP signed",
			want:  news.CategoryPartnership,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Categorize(tc.title, tc.content); got != tc.want {
				t.Errorf("Categorize(%q, %q) = %v, want %v", tc.title, tc.content, got, tc.want)
			}
		})
	}
}

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "multiple matches in pattern order",
			text: "Global manga subscription service announces partnership",
			want: []string{"partnership", "manga", "subscription", "global"},
		},
		{
			name: "substring match",
			text: "Company aims to maintain its lead",
			want: []string{"ai"},
		},
		{
			name: "case insensitive",
			text: "WEBTOON expansion",
			want: []string{"webtoon", "expansion"},
		},
		{
			name: "no matches",
			text: "Unrelated announcement",
			want: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractKeywords(tc.text); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ExtractKeywords(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestImportance(t *testing.T) {
	competitors := []string{"LINE Manga", "Piccoma"}

	tests := []struct {
		name  string
		title string
		want  int
	}{
		{
			name:  "plain title",
			title: "New volume released",
			want:  1,
		},
		{
			name:  "breaking",
			title: "BREAKING: major announcement",
			want:  3,
		},
		{
			name:  "partnership",
			title: "Partnership signed with studio",
			want:  2,
		},
		{
			name:  "competitor mention",
			title: "Piccoma releases earnings",
			want:  2,
		},
		{
			name:  "two competitors count once",
			title: "Piccoma overtakes LINE Manga",
			want:  2,
		},
		{
			name:  "everything stacked",
			title: "BREAKING: Partnership with Piccoma announced",
			want:  5,
		},
		{
			name:  "clamped at five",
			title: "BREAKING urgent: partnership and acquisition with Piccoma and LINE Manga",
			want:  5,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Importance(tc.title, competitors); got != tc.want {
				t.Errorf("Importance(%q) = %d, want %d", tc.title, got, tc.want)
			}
		})
	}
}

func TestFetchAllCreatesArticles(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	src, err := store.CreateSource(ctx, news.Source{
		Name: "Feed", URL: "https://feed.example", Type: news.SourceRSS, IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateSource: %v", err)
	}

	registry := NewRegistry()
	registry.Register(news.SourceRSS, &StaticFetcher{Items: []RawItem{
		{
			Title:       "Partnership with Webtoon announced",
			Content:     "Global expansion follows",
			URL:         "https://example.com/p1",
			PublishedAt: time.Now(),
		},
	}})

	ag := New(store, registry, nil, nil)
	if err := ag.FetchAll(ctx); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	created, err := store.GetArticleByURL(ctx, "https://example.com/p1")
	if err != nil {
		t.Fatalf("GetArticleByURL: %v", err)
	}
	if created.Category != news.CategoryPartnership {
		t.Errorf("got category %v, want partnership", created.Category)
	}
	if created.SourceID != src.ID {
		t.Errorf("got source %q, want %q", created.SourceID, src.ID)
	}
	if created.Sentiment != nil || created.SentimentScore != nil {
		t.Error("aggregated articles must start unscored")
	}

	updatedSrc, err := store.GetSource(ctx, src.ID)
	if err != nil {
		t.Fatalf("GetSource: %v", err)
	}
	if updatedSrc.LastFetched == nil {
		t.Error("expected LastFetched to advance after a successful fetch")
	}
}

func TestFetchAllDeduplicatesByURL(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	if _, err := store.CreateSource(ctx, news.Source{
		Name: "Feed", URL: "https://feed.example", Type: news.SourceRSS, IsActive: true,
	}); err != nil {
		t.Fatalf("CreateSource: %v", err)
	}

	item := RawItem{
		Title:       "Original headline",
		URL:         "https://example.com/dup",
		PublishedAt: time.Now(),
	}
	registry := NewRegistry()
	registry.Register(news.SourceRSS, &StaticFetcher{Items: []RawItem{item}})

	ag := New(store, registry, nil, nil)
	if err := ag.FetchAll(ctx); err != nil {
		t.Fatalf("first FetchAll: %v", err)
	}

	// Same URL again, different title: silently dropped.
	item.Title = "Rewritten headline"
	registry.Register(news.SourceRSS, &StaticFetcher{Items: []RawItem{item}})
	if err := ag.FetchAll(ctx); err != nil {
		t.Fatalf("second FetchAll: %v", err)
	}

	all, err := store.ListArticles(ctx, news.ArticleFilter{})
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d articles, want 1", len(all))
	}
	if all[0].Title != "Original headline" {
		t.Error("duplicate URL must not overwrite the existing article")
	}
}

func TestFetchAllIsolatesFailingSources(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	if _, err := store.CreateSource(ctx, news.Source{
		Name: "Broken", URL: "https://broken.example", Type: news.SourceScrape, IsActive: true,
	}); err != nil {
		t.Fatalf("CreateSource: %v", err)
	}
	if _, err := store.CreateSource(ctx, news.Source{
		Name: "Healthy", URL: "https://healthy.example", Type: news.SourceRSS, IsActive: true,
	}); err != nil {
		t.Fatalf("CreateSource: %v", err)
	}

	registry := NewRegistry()
	registry.Register(news.SourceScrape, &StaticFetcher{Err: errors.New("connection refused")})
	registry.Register(news.SourceRSS, &StaticFetcher{Items: []RawItem{
		{Title: "Survives", URL: "https://example.com/ok", PublishedAt: time.Now()},
	}})

	ag := New(store, registry, nil, nil)
	if err := ag.FetchAll(ctx); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	if _, err := store.GetArticleByURL(ctx, "https://example.com/ok"); err != nil {
		t.Error("healthy source must still be processed when another fails")
	}

	// A failed fetch attempt does not advance the timestamp.
	sources, err := store.ListSources(ctx)
	if err != nil {
		t.Fatalf("ListSources: %v", err)
	}
	for _, src := range sources {
		switch src.Name {
		case "Broken":
			if src.LastFetched != nil {
				t.Error("failed source must keep a nil LastFetched")
			}
		case "Healthy":
			if src.LastFetched == nil {
				t.Error("healthy source must advance LastFetched")
			}
		}
	}
}

func TestFetchAllSkipsInactiveSources(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	if _, err := store.CreateSource(ctx, news.Source{
		Name: "Dormant", URL: "https://dormant.example", Type: news.SourceRSS, IsActive: false,
	}); err != nil {
		t.Fatalf("CreateSource: %v", err)
	}

	registry := NewRegistry()
	registry.Register(news.SourceRSS, &StaticFetcher{Items: []RawItem{
		{Title: "Should not appear", URL: "https://example.com/dormant", PublishedAt: time.Now()},
	}})

	ag := New(store, registry, nil, nil)
	if err := ag.FetchAll(ctx); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	all, err := store.ListArticles(ctx, news.ArticleFilter{})
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("got %d articles from an inactive source, want 0", len(all))
	}
}

func TestFetchAllUnsupportedSourceType(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	if _, err := store.CreateSource(ctx, news.Source{
		Name: "Exotic", URL: "https://exotic.example", Type: news.SourceAPI, IsActive: true,
	}); err != nil {
		t.Fatalf("CreateSource: %v", err)
	}

	ag := New(store, NewRegistry(), nil, nil)
	if err := ag.FetchAll(ctx); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	// No strategy registered counts as no attempt at all.
	sources, _ := store.ListSources(ctx)
	if sources[0].LastFetched != nil {
		t.Error("unsupported source type must not advance LastFetched")
	}
}

func TestProcessItemFillsDerivedFields(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	if _, err := store.CreateCompany(ctx, news.Company{
		Name: "Piccoma", Type: news.CompanyCompetitor, IsActive: true,
	}); err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	src, err := store.CreateSource(ctx, news.Source{
		Name: "Feed", URL: "https://feed.example", Type: news.SourceRSS, Language: "en", IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateSource: %v", err)
	}

	ag := New(store, NewRegistry(), nil, nil)
	err = ag.ProcessItem(ctx, RawItem{
		Title:       "BREAKING: Partnership with Piccoma announced",
		Content:     "A global webtoon collaboration",
		URL:         "https://example.com/derived",
		PublishedAt: time.Now(),
	}, src.ID)
	if err != nil {
		t.Fatalf("ProcessItem: %v", err)
	}

	got, err := store.GetArticleByURL(ctx, "https://example.com/derived")
	if err != nil {
		t.Fatalf("GetArticleByURL: %v", err)
	}
	if got.Category != news.CategoryPartnership {
		t.Errorf("got category %v, want partnership", got.Category)
	}
	if got.Importance != 5 {
		t.Errorf("got importance %d, want 5", got.Importance)
	}
	if got.Language != "en" {
		t.Errorf("got language %q, want source default %q", got.Language, "en")
	}
	want := []string{"partnership", "collaboration", "webtoon", "global"}
	if !reflect.DeepEqual(got.Keywords, want) {
		t.Errorf("got keywords %v, want %v", got.Keywords, want)
	}
}
