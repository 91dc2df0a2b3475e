// internal/adapter/storage/alert_store.go

package storage

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"mangaintel/internal/domain/news"
)

// CreateAlert inserts a new alert with the read flag cleared.
func (s *MemoryStore) CreateAlert(_ context.Context, a news.Alert) (news.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = uuid.New().String()
	a.IsRead = false
	a.CreatedAt = time.Now()
	if a.Priority == 0 {
		a.Priority = 1
	}

	s.alerts[a.ID] = a
	return a, nil
}

// AllAlerts returns every alert, most recent first.
func (s *MemoryStore) AllAlerts(_ context.Context) ([]news.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alerts := make([]news.Alert, 0, len(s.alerts))
	for _, a := range s.alerts {
		alerts = append(alerts, a)
	}
	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].CreatedAt.After(alerts[j].CreatedAt)
	})
	return alerts, nil
}

// UnreadAlerts returns alerts with read=false, highest priority first.
func (s *MemoryStore) UnreadAlerts(_ context.Context) ([]news.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var alerts []news.Alert
	for _, a := range s.alerts {
		if !a.IsRead {
			alerts = append(alerts, a)
		}
	}
	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].Priority > alerts[j].Priority
	})
	return alerts, nil
}

// MarkAlertRead flips the read flag on a single alert.
func (s *MemoryStore) MarkAlertRead(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.alerts[id]
	if !ok {
		return ErrNotFound
	}
	a.IsRead = true
	s.alerts[id] = a
	return nil
}
