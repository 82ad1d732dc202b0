// Package parsers provides implementations of the Parser interface
// for various document formats. Each parser knows how to extract text
// content from specific document types.
//
// Parsers are registered with the Registry at startup.
package parsers

import (
	"github.com/futureready-labs/futureready-kb/internal/core/domain"
	"github.com/futureready-labs/futureready-kb/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ParserRegistry = (*Registry)(nil)

// Registry selects the highest-priority parser per document type.
type Registry struct {
	byType map[domain.DocumentType]driven.Parser
}

// NewRegistry creates a registry from the given parsers. When two
// parsers support the same type, the higher priority wins.
func NewRegistry(parsers ...driven.Parser) *Registry {
	r := &Registry{byType: make(map[domain.DocumentType]driven.Parser)}
	for _, p := range parsers {
		r.Register(p)
	}
	return r
}

// Register adds a parser for each type it supports.
func (r *Registry) Register(p driven.Parser) {
	for _, t := range p.SupportedTypes() {
		current, ok := r.byType[t]
		if !ok || p.Priority() > current.Priority() {
			r.byType[t] = p
		}
	}
}

// ParserFor returns the parser for a document type.
func (r *Registry) ParserFor(t domain.DocumentType) (driven.Parser, bool) {
	p, ok := r.byType[t]
	return p, ok
}
