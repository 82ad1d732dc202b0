// Package memory provides in-memory implementations of the storage
// ports, used in tests and as reference implementations.
package memory

import (
	"context"
	"sync"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
	"github.com/futureready-labs/futureready-kb/internal/core/ports/driven"
)

// Ensure ContentStore implements the interface.
var _ driven.ContentStore = (*ContentStore)(nil)

// ContentStore is an in-memory implementation of driven.ContentStore.
type ContentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
}

// NewContentStore creates a new in-memory content store.
func NewContentStore() *ContentStore {
	return &ContentStore{
		documents: make(map[string]domain.Document),
	}
}

// SaveDocument stores or updates a document.
func (s *ContentStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = *doc
	return nil
}

// LoadDocument retrieves a document by ID; absent IDs return (nil, nil).
func (s *ContentStore) LoadDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

// Exists reports whether a record exists for the ID.
func (s *ContentStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.documents[id]
	return ok, nil
}

// ListMetadata returns every stored document without raw content.
func (s *ContentStore) ListMetadata(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.documents))
	for id := range s.documents {
		doc := s.documents[id]
		doc.RawContent = nil
		docs = append(docs, doc)
	}
	return docs, nil
}

// Len returns the number of stored documents. Test helper.
func (s *ContentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}
