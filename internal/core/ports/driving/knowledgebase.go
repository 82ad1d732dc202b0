package driving

import (
	"context"
	"time"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
)

// IngestRequest carries a document admission request.
type IngestRequest struct {
	// FilePath is the path to the source file on the local filesystem.
	FilePath string

	// Uploader is the uploader's email address (required).
	Uploader string

	// Department owning the document. Falls back to the store-level
	// department when empty.
	Department string

	// BusinessContext is the mandatory justification for the upload.
	BusinessContext string

	// Tags label the document (optional).
	Tags []string

	// RelatedDocs references other document IDs (optional).
	RelatedDocs []string

	// ExpiryDate is when the document lapses (optional).
	ExpiryDate *time.Time

	// SourceURL is the original location for web archives (optional).
	SourceURL string

	// ParseContent requests text extraction during ingestion.
	ParseContent bool
}

// KnowledgeBaseService is the primary contract of the document store.
// Agents are handed this interface to compose queries and render
// answers and alerts.
type KnowledgeBaseService interface {
	// Ingest admits a new document: validates metadata, persists the
	// blob and metadata record, and updates the index. Fails with
	// domain.ErrNotFound for a missing source file and
	// domain.ErrValidation before any disk write for invalid metadata.
	Ingest(ctx context.Context, req IngestRequest) (*domain.Document, error)

	// Search answers a query with ranked results. Limit defaults are
	// the caller's responsibility (domain.NewSearchQuery applies the
	// default); a zero or negative limit yields no results.
	Search(ctx context.Context, query domain.SearchQuery) ([]domain.SearchResult, error)

	// GetDocument loads a document by ID. Absence is not an error:
	// an unknown ID returns (nil, nil).
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// UpdateMetadata applies a partial metadata update, bumping the
	// document version and updated time. Fails with
	// domain.ErrNotFound for an unknown ID.
	UpdateMetadata(ctx context.Context, id string, update domain.MetadataUpdate) (*domain.Document, error)

	// RebuildIndex re-derives the full index from persisted document
	// records, for recovery after a corrupted or lost snapshot.
	// Returns the number of indexed documents.
	RebuildIndex(ctx context.Context) (int, error)
}
