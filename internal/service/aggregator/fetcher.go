// internal/service/aggregator/fetcher.go

package aggregator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mangaintel/internal/domain/news"
)

// RawItem is one unprocessed news item produced by a fetch strategy.
// Adapters validate and type their payloads before handing them over;
// nothing untyped crosses this boundary.
type RawItem struct {
	Title       string
	Content     string
	Summary     string
	URL         string
	ImageURL    string
	PublishedAt time.Time
	Language    string
	CompanyID   string
	IsBreaking  bool
}

// Fetcher produces zero or more raw items for a configured source.
// Implementations wrap the actual transport (feed pull, page scrape,
// API call) and live outside the pipeline core.
type Fetcher interface {
	Fetch(ctx context.Context, src news.Source) ([]RawItem, error)
}

// Registry maps source types to their fetch strategies.
type Registry struct {
	fetchers map[news.SourceType]Fetcher
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{fetchers: make(map[news.SourceType]Fetcher)}
}

// Register adds or replaces the strategy for a source type.
func (r *Registry) Register(t news.SourceType, f Fetcher) {
	if r.fetchers == nil {
		r.fetchers = make(map[news.SourceType]Fetcher)
	}
	r.fetchers[t] = f
}

// Resolve returns the strategy for a source type or an error if no
// strategy is registered.
func (r *Registry) Resolve(t news.SourceType) (Fetcher, error) {
	if f, ok := r.fetchers[t]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("no fetcher registered for source type %q", t)
}

// StubFetcher stands in for a transport that is wired in deployment.
// It produces no items but counts as a successful fetch attempt, so
// the source's last-fetched timestamp still advances.
type StubFetcher struct {
	kind   string
	logger *slog.Logger
}

// NewStubFetcher creates a placeholder strategy for the given kind.
func NewStubFetcher(kind string, logger *slog.Logger) *StubFetcher {
	return &StubFetcher{kind: kind, logger: logger}
}

// Fetch logs the attempt and returns no items.
func (f *StubFetcher) Fetch(_ context.Context, src news.Source) ([]RawItem, error) {
	if f.logger != nil {
		f.logger.Debug("stub fetch", "kind", f.kind, "source", src.Name, "url", src.URL)
	}
	return nil, nil
}

// StaticFetcher serves a fixed set of items; used in tests and demos.
type StaticFetcher struct {
	Items []RawItem
	Err   error
}

// Fetch returns the configured items or error.
func (f *StaticFetcher) Fetch(_ context.Context, _ news.Source) ([]RawItem, error) {
	return f.Items, f.Err
}
