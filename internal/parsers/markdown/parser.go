// Package markdown provides the parser for Markdown documents.
package markdown

import (
	"context"
	"regexp"
	"strings"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
	"github.com/futureready-labs/futureready-kb/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

// Parser handles Markdown documents.
type Parser struct{}

// New creates a new Markdown parser.
func New() *Parser {
	return &Parser{}
}

// SupportedTypes returns the document types this parser handles.
func (p *Parser) SupportedTypes() []domain.DocumentType {
	return []domain.DocumentType{domain.TypeMarkdown}
}

// Priority returns the selection priority.
func (p *Parser) Priority() int {
	return 50 // Format-specific, higher than plaintext
}

// Parse converts markdown to plain text with formatting stripped.
func (p *Parser) Parse(_ context.Context, content []byte) (string, error) {
	return stripMarkdown(string(content)), nil
}

// Pre-compiled regular expressions for markdown stripping.
var (
	codeBlocks   = regexp.MustCompile("(?s)```[^`]*```")
	inlineCode   = regexp.MustCompile("`[^`]+`")
	images       = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	links        = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headings     = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquotes  = regexp.MustCompile(`(?m)^>\s*`)
	horizRules   = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	listMarkers  = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	numberedList = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	multiLines   = regexp.MustCompile(`\n{3,}`)
)

// stripMarkdown removes common markdown formatting for plain text
// content. This is a simplified implementation that handles common
// cases.
func stripMarkdown(content string) string {
	content = codeBlocks.ReplaceAllString(content, "")
	content = inlineCode.ReplaceAllString(content, "")
	content = images.ReplaceAllString(content, "")

	// Convert links [text](url) to just text
	content = links.ReplaceAllString(content, "$1")

	content = headings.ReplaceAllString(content, "")

	// Remove bold/italic markers
	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "__", "")
	content = strings.ReplaceAll(content, "*", "")

	content = blockquotes.ReplaceAllString(content, "")
	content = horizRules.ReplaceAllString(content, "")
	content = listMarkers.ReplaceAllString(content, "")
	content = numberedList.ReplaceAllString(content, "")
	content = multiLines.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}
