package memory

import (
	"context"
	"sync"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
	"github.com/futureready-labs/futureready-kb/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore is an in-memory implementation of driven.IndexStore.
type IndexStore struct {
	mu      sync.RWMutex
	entries map[string]domain.IndexEntry
}

// NewIndexStore creates a new in-memory index store.
func NewIndexStore() *IndexStore {
	return &IndexStore{
		entries: make(map[string]domain.IndexEntry),
	}
}

// Entries returns all entries in canonical encounter order.
func (s *IndexStore) Entries(_ context.Context) ([]domain.IndexedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.IndexedDocument, 0, len(s.entries))
	for id, entry := range s.entries {
		out = append(out, domain.IndexedDocument{ID: id, IndexEntry: entry})
	}
	domain.SortByUploadTime(out)
	return out, nil
}

// Upsert inserts or replaces the entry for an ID.
func (s *IndexStore) Upsert(_ context.Context, id string, entry domain.IndexEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = entry
	return nil
}

// Replace swaps the entire mapping.
func (s *IndexStore) Replace(_ context.Context, entries map[string]domain.IndexEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]domain.IndexEntry, len(entries))
	for id, entry := range entries {
		s.entries[id] = entry
	}
	return nil
}

// Len returns the number of index entries. Test helper.
func (s *IndexStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
