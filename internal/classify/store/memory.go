package store

import (
	"context"
	"sync"

	"pidkit/internal/classify/models"
)

// memoryCap bounds the in-memory history so a long-lived dev process does not
// grow without limit.
const memoryCap = 10000

// InMemoryHistoryStore keeps history in process memory. Used in tests and
// when no Postgres DSN is configured.
type InMemoryHistoryStore struct {
	mu      sync.RWMutex
	records []models.Record
}

func NewMemory() *InMemoryHistoryStore {
	return &InMemoryHistoryStore{}
}

func (s *InMemoryHistoryStore) Append(_ context.Context, record *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, *record)
	if len(s.records) > memoryCap {
		s.records = s.records[len(s.records)-memoryCap:]
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *InMemoryHistoryStore) Recent(_ context.Context, limit int) ([]models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.records)
	if limit < n {
		n = limit
	}
	out := make([]models.Record, 0, n)
	for i := len(s.records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}

func (s *InMemoryHistoryStore) Purge(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	purged := int64(len(s.records))
	s.records = nil
	return purged, nil
}
