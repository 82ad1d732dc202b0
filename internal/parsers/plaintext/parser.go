// Package plaintext provides the fallback parser for plain text
// documents.
package plaintext

import (
	"context"
	"strings"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
	"github.com/futureready-labs/futureready-kb/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

// Parser handles plain text documents.
type Parser struct{}

// New creates a new plain text parser.
func New() *Parser {
	return &Parser{}
}

// SupportedTypes returns the document types this parser handles.
func (p *Parser) SupportedTypes() []domain.DocumentType {
	return []domain.DocumentType{domain.TypeTXT}
}

// Priority returns the selection priority.
func (p *Parser) Priority() int {
	return 5 // Fallback parser
}

// Parse converts raw bytes to text, dropping invalid UTF-8 sequences.
func (p *Parser) Parse(_ context.Context, content []byte) (string, error) {
	return strings.ToValidUTF8(string(content), ""), nil
}
