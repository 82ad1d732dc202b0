package driven

import (
	"context"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
)

// IndexStore maintains the denormalised search projection. The full
// identifier-to-entry mapping is persisted as a single snapshot on
// every mutation (write-through); implementations must replace the
// snapshot atomically so no reader observes a half-written file.
//
// Every identifier present in the index must have a corresponding
// document in the ContentStore; the store never enforces the reverse.
type IndexStore interface {
	// Entries returns all index entries in canonical encounter order
	// (ascending upload time, ties by ID). The returned slice is a
	// copy and safe to retain.
	Entries(ctx context.Context) ([]domain.IndexedDocument, error)

	// Upsert inserts or replaces the entry for a document ID and
	// persists the full snapshot.
	Upsert(ctx context.Context, id string, entry domain.IndexEntry) error

	// Replace swaps the entire mapping, used when rebuilding the
	// index from authoritative document records.
	Replace(ctx context.Context, entries map[string]domain.IndexEntry) error
}
