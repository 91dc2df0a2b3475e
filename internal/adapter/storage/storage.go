// internal/adapter/storage/storage.go

package storage

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"mangaintel/internal/domain/news"
)

// Sentinel errors returned by store operations. Updates on unknown IDs
// report ErrNotFound and make no change.
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateURL = errors.New("article url already exists")
)

// MemoryStore keeps all entities in process memory. There is no
// durability guarantee across restarts. A single RWMutex guards every
// collection: scheduled jobs run on independent timers and their store
// calls may interleave.
type MemoryStore struct {
	mu sync.RWMutex

	companies map[string]news.Company
	sources   map[string]news.Source
	articles  map[string]news.Article
	alerts    map[string]news.Alert
	trends    map[string]news.Trend

	articleByURL map[string]string // url -> article id
}

var _ news.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		companies:    make(map[string]news.Company),
		sources:      make(map[string]news.Source),
		articles:     make(map[string]news.Article),
		alerts:       make(map[string]news.Alert),
		trends:       make(map[string]news.Trend),
		articleByURL: make(map[string]string),
	}
}

// CreateCompany registers a company under a fresh identity.
func (s *MemoryStore) CreateCompany(_ context.Context, c news.Company) (news.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = uuid.New().String()
	s.companies[c.ID] = c
	return c, nil
}

// GetCompany retrieves a company by ID.
func (s *MemoryStore) GetCompany(_ context.Context, id string) (news.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.companies[id]
	if !ok {
		return news.Company{}, ErrNotFound
	}
	return c, nil
}

// ListCompanies returns all registered companies.
func (s *MemoryStore) ListCompanies(_ context.Context) ([]news.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	companies := make([]news.Company, 0, len(s.companies))
	for _, c := range s.companies {
		companies = append(companies, c)
	}
	sort.Slice(companies, func(i, j int) bool {
		return companies[i].Name < companies[j].Name
	})
	return companies, nil
}

// UpdateCompany merges the set fields of upd into an existing company.
func (s *MemoryStore) UpdateCompany(_ context.Context, id string, upd news.CompanyUpdate) (news.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.companies[id]
	if !ok {
		return news.Company{}, ErrNotFound
	}

	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Type != nil {
		c.Type = *upd.Type
	}
	if upd.Website != nil {
		c.Website = *upd.Website
	}
	if upd.Description != nil {
		c.Description = *upd.Description
	}
	if upd.IsActive != nil {
		c.IsActive = *upd.IsActive
	}

	s.companies[id] = c
	return c, nil
}

// CreateSource registers a news source under a fresh identity.
// LastFetched starts nil regardless of input.
func (s *MemoryStore) CreateSource(_ context.Context, src news.Source) (news.Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src.ID = uuid.New().String()
	src.LastFetched = nil
	if src.Language == "" {
		src.Language = "ja"
	}
	s.sources[src.ID] = src
	return src, nil
}

// GetSource retrieves a source by ID.
func (s *MemoryStore) GetSource(_ context.Context, id string) (news.Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src, ok := s.sources[id]
	if !ok {
		return news.Source{}, ErrNotFound
	}
	return src, nil
}

// ListSources returns all configured sources.
func (s *MemoryStore) ListSources(_ context.Context) ([]news.Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sources := make([]news.Source, 0, len(s.sources))
	for _, src := range s.sources {
		sources = append(sources, src)
	}
	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Name < sources[j].Name
	})
	return sources, nil
}

// ActiveSources returns sources with the active flag set.
func (s *MemoryStore) ActiveSources(ctx context.Context) ([]news.Source, error) {
	all, err := s.ListSources(ctx)
	if err != nil {
		return nil, err
	}

	active := all[:0]
	for _, src := range all {
		if src.IsActive {
			active = append(active, src)
		}
	}
	return active, nil
}

// UpdateSource merges the set fields of upd into an existing source.
func (s *MemoryStore) UpdateSource(_ context.Context, id string, upd news.SourceUpdate) (news.Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, ok := s.sources[id]
	if !ok {
		return news.Source{}, ErrNotFound
	}

	if upd.Name != nil {
		src.Name = *upd.Name
	}
	if upd.URL != nil {
		src.URL = *upd.URL
	}
	if upd.Type != nil {
		src.Type = *upd.Type
	}
	if upd.Language != nil {
		src.Language = *upd.Language
	}
	if upd.IsActive != nil {
		src.IsActive = *upd.IsActive
	}
	if upd.LastFetched != nil {
		t := *upd.LastFetched
		src.LastFetched = &t
	}

	s.sources[id] = src
	return src, nil
}

func matchesTerm(a news.Article, term string) bool {
	if strings.Contains(strings.ToLower(a.Title), term) ||
		strings.Contains(strings.ToLower(a.Content), term) ||
		strings.Contains(strings.ToLower(a.Summary), term) {
		return true
	}
	for _, kw := range a.Keywords {
		if strings.Contains(strings.ToLower(kw), term) {
			return true
		}
	}
	return false
}
