// internal/service/aggregator/aggregator.go

package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"mangaintel/internal/adapter/events"
	"mangaintel/internal/adapter/storage"
	"mangaintel/internal/domain/news"
)

// Fixed keyword patterns scanned over title+content; matches are
// collected lowercased into the article's keyword set.
var keywordPatterns = []string{
	"partnership", "collaboration", "webtoon", "manga",
	"ai", "subscription", "global", "expansion",
}

// Aggregator turns source-specific raw payloads into normalized,
// deduplicated articles.
type Aggregator struct {
	store    news.Store
	registry *Registry
	events   *events.Publisher
	logger   *slog.Logger
}

// New creates an aggregator over the given store and fetch registry.
func New(store news.Store, registry *Registry, pub *events.Publisher, logger *slog.Logger) *Aggregator {
	return &Aggregator{store: store, registry: registry, events: pub, logger: logger}
}

// FetchAll iterates every active source, dispatches to its fetch
// strategy, and processes the returned items. A failing source is
// logged and skipped; it never prevents the remaining sources from
// being fetched. Any successful fetch attempt, even one yielding zero
// items, advances the source's last-fetched timestamp.
func (ag *Aggregator) FetchAll(ctx context.Context) error {
	sources, err := ag.store.ActiveSources(ctx)
	if err != nil {
		return fmt.Errorf("list active sources: %w", err)
	}

	competitors, err := ag.competitorNames(ctx)
	if err != nil {
		return fmt.Errorf("list competitors: %w", err)
	}

	for _, src := range sources {
		fetcher, err := ag.registry.Resolve(src.Type)
		if err != nil {
			ag.warn("unsupported source type", "source", src.Name, "type", src.Type)
			continue
		}

		items, err := fetcher.Fetch(ctx, src)
		if err != nil {
			ag.warn("fetch failed", "source", src.Name, "error", err)
			continue
		}

		now := time.Now()
		if _, err := ag.store.UpdateSource(ctx, src.ID, news.SourceUpdate{LastFetched: &now}); err != nil {
			ag.warn("update last fetched", "source", src.Name, "error", err)
		}

		for _, item := range items {
			if err := ag.processItem(ctx, item, src, competitors); err != nil {
				ag.warn("process item", "source", src.Name, "url", item.URL, "error", err)
			}
		}
	}
	return nil
}

// ProcessItem normalizes a single raw item into an article and stores
// it unless its URL already exists.
func (ag *Aggregator) ProcessItem(ctx context.Context, item RawItem, sourceID string) error {
	src, err := ag.store.GetSource(ctx, sourceID)
	if err != nil {
		return fmt.Errorf("lookup source %s: %w", sourceID, err)
	}

	competitors, err := ag.competitorNames(ctx)
	if err != nil {
		return fmt.Errorf("list competitors: %w", err)
	}
	return ag.processItem(ctx, item, src, competitors)
}

func (ag *Aggregator) processItem(ctx context.Context, item RawItem, src news.Source, competitors []string) error {
	// URL is the dedup key: a known URL is silently dropped without
	// touching the existing record.
	if _, err := ag.store.GetArticleByURL(ctx, item.URL); err == nil {
		ag.debug("duplicate article skipped", "url", item.URL)
		return nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("dedup lookup: %w", err)
	}

	language := item.Language
	if language == "" {
		language = src.Language
	}

	article := news.Article{
		Title:       item.Title,
		Content:     item.Content,
		Summary:     item.Summary,
		URL:         item.URL,
		ImageURL:    item.ImageURL,
		PublishedAt: item.PublishedAt,
		SourceID:    src.ID,
		CompanyID:   item.CompanyID,
		Category:    Categorize(item.Title, item.Content),
		Language:    language,
		Keywords:    ExtractKeywords(item.Title + " " + item.Content),
		IsBreaking:  item.IsBreaking,
		Importance:  Importance(item.Title, competitors),
	}

	created, err := ag.store.CreateArticle(ctx, article)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateURL) {
			return nil
		}
		return fmt.Errorf("create article: %w", err)
	}

	ag.events.ArticleCreated(created)
	ag.debug("article added", "title", created.Title, "category", created.Category)
	return nil
}

// Categorize assigns a topic category by precedence-ordered keyword
// matching over the lowercased title+content; the first matching rule
// wins.
func Categorize(title, content string) news.Category {
	text := strings.ToLower(title + " " + content)

	switch {
	case containsAny(text, "partnership", "collaboration", "alliance"):
		return news.CategoryPartnership
	case containsAny(text, "global", "international", "overseas"):
		return news.CategoryGlobal
	case containsAny(text, "competitor", "line manga", "piccoma"):
		return news.CategoryCompetitor
	default:
		return news.CategoryMarket
	}
}

// ExtractKeywords scans the fixed pattern list case-insensitively and
// returns the lowercased matches as a deduplicated set.
func ExtractKeywords(text string) []string {
	lowered := strings.ToLower(text)

	var keywords []string
	for _, pattern := range keywordPatterns {
		if strings.Contains(lowered, pattern) {
			keywords = append(keywords, pattern)
		}
	}
	return keywords
}

// Importance ranks a title on a 1-5 scale: +2 for breaking/urgent
// language, +1 for partnership/acquisition language, +1 when a tracked
// competitor is named, clamped at 5.
func Importance(title string, competitors []string) int {
	lowered := strings.ToLower(title)

	importance := 1
	if containsAny(lowered, "breaking", "urgent") {
		importance += 2
	}
	if containsAny(lowered, "partnership", "acquisition") {
		importance++
	}
	for _, name := range competitors {
		if name != "" && strings.Contains(lowered, strings.ToLower(name)) {
			importance++
			break
		}
	}

	if importance > 5 {
		importance = 5
	}
	return importance
}

func (ag *Aggregator) competitorNames(ctx context.Context) ([]string, error) {
	companies, err := ag.store.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, c := range companies {
		if c.Type == news.CompanyCompetitor && c.IsActive {
			names = append(names, c.Name)
		}
	}
	return names, nil
}

func containsAny(text string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func (ag *Aggregator) warn(msg string, args ...interface{}) {
	if ag.logger != nil {
		ag.logger.Warn(msg, args...)
	}
}

func (ag *Aggregator) debug(msg string, args ...interface{}) {
	if ag.logger != nil {
		ag.logger.Debug(msg, args...)
	}
}
