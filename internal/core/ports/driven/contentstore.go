package driven

import (
	"context"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
)

// ContentStore persists document content and metadata, keyed by the
// generated document identifier. The raw blob and the metadata record
// are stored as two independently loadable artifacts.
type ContentStore interface {
	// SaveDocument durably stores a document's blob and metadata
	// record, overwriting any previous version.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// LoadDocument retrieves a document by ID. Absence is not an
	// error: when no metadata record exists it returns (nil, nil).
	// A metadata record whose content blob is missing is corruption
	// and fails with domain.ErrStorage.
	LoadDocument(ctx context.Context, id string) (*domain.Document, error)

	// Exists reports whether a metadata record exists for the ID.
	Exists(ctx context.Context, id string) (bool, error)

	// ListMetadata returns every persisted document without raw
	// content, for index reconstruction.
	ListMetadata(ctx context.Context) ([]domain.Document, error)
}
