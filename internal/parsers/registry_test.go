package parsers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
	"github.com/futureready-labs/futureready-kb/internal/parsers/html"
	"github.com/futureready-labs/futureready-kb/internal/parsers/markdown"
	"github.com/futureready-labs/futureready-kb/internal/parsers/plaintext"
)

type stubParser struct {
	types    []domain.DocumentType
	priority int
	output   string
}

func (s *stubParser) SupportedTypes() []domain.DocumentType { return s.types }
func (s *stubParser) Priority() int                         { return s.priority }
func (s *stubParser) Parse(context.Context, []byte) (string, error) {
	return s.output, nil
}

func TestRegistrySelectsByType(t *testing.T) {
	registry := NewRegistry(plaintext.New(), markdown.New(), html.New())

	tests := []struct {
		docType domain.DocumentType
		found   bool
	}{
		{domain.TypeTXT, true},
		{domain.TypeMarkdown, true},
		{domain.TypeHTML, true},
		{domain.TypeWebArchive, true},
		{domain.TypePDF, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.docType), func(t *testing.T) {
			_, ok := registry.ParserFor(tt.docType)
			assert.Equal(t, tt.found, ok)
		})
	}
}

func TestRegistryPriorityWins(t *testing.T) {
	low := &stubParser{types: []domain.DocumentType{domain.TypeTXT}, priority: 1, output: "low"}
	high := &stubParser{types: []domain.DocumentType{domain.TypeTXT}, priority: 100, output: "high"}

	// Registration order must not matter.
	for _, registry := range []*Registry{NewRegistry(low, high), NewRegistry(high, low)} {
		p, ok := registry.ParserFor(domain.TypeTXT)
		require.True(t, ok)
		out, err := p.Parse(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, "high", out)
	}
}
