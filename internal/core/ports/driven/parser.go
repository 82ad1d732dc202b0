package driven

import (
	"context"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
)

// Parser extracts plain text from raw document content.
// Each parser handles specific document types; rich binary formats
// (PDF, DOCX, XLSX) are parsed by external collaborators behind this
// same contract.
type Parser interface {
	// SupportedTypes returns the document types this parser handles.
	SupportedTypes() []domain.DocumentType

	// Priority returns the selection priority (higher = preferred)
	// when multiple parsers support the same type.
	Priority() int

	// Parse extracts text from raw content.
	Parse(ctx context.Context, content []byte) (string, error)
}

// ParserRegistry selects a parser for a document type.
type ParserRegistry interface {
	// ParserFor returns the highest-priority parser for the type,
	// or false when no parser handles it.
	ParserFor(t domain.DocumentType) (Parser, bool)
}
