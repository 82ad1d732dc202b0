package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// DocumentType classifies a document by its source format.
type DocumentType string

// Supported document types.
const (
	TypePDF        DocumentType = "pdf"
	TypeDOCX       DocumentType = "docx"
	TypeXLSX       DocumentType = "xlsx"
	TypeTXT        DocumentType = "txt"
	TypeHTML       DocumentType = "html"
	TypeMarkdown   DocumentType = "md"
	TypeWebArchive DocumentType = "web_archive"
)

// extensionTypes maps lowercase filename extensions to document types.
var extensionTypes = map[string]DocumentType{
	".pdf":  TypePDF,
	".docx": TypeDOCX,
	".doc":  TypeDOCX,
	".xlsx": TypeXLSX,
	".xls":  TypeXLSX,
	".txt":  TypeTXT,
	".html": TypeHTML,
	".htm":  TypeHTML,
	".md":   TypeMarkdown,
}

// ClassifyFilename determines the document type from a filename extension.
// Classification is case-insensitive; unrecognised extensions fall back to
// plain text and never fail.
func ClassifyFilename(name string) DocumentType {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return TypeTXT
}

// MinBusinessContextLen is the minimum length (in characters, after
// trimming surrounding whitespace) of the business context. Every
// document must carry a stated reason for existing; this is the
// system's core admission invariant.
const MinBusinessContextLen = 10

// DocumentMetadata is the mandatory metadata attached to every document.
type DocumentMetadata struct {
	// UploaderID identifies who uploaded the document. Must look like
	// an email address (contain "@").
	UploaderID string

	// UploadTime is when the document was ingested. It never changes
	// and serves as the logical insertion clock for temporal queries.
	UploadTime time.Time

	// Department owning the document. Falls back to the store-level
	// department when the caller omits one.
	Department string

	// BusinessContext is the free-text justification for the upload.
	BusinessContext string

	// Tags label the document for filtering. Order is irrelevant.
	Tags []string

	// RelatedDocIDs references other documents in the store.
	// Existence of the referenced documents is not validated.
	RelatedDocIDs []string

	// ExpiryDate is when the document lapses, if it does.
	ExpiryDate *time.Time

	// SourceURL is the original location for web archives.
	SourceURL string

	// CustomFields carries free-form caller-supplied fields.
	CustomFields map[string]any
}

// Validate enforces the mandatory-field invariants. It is side-effect
// free; a failing bundle must never reach persistence.
func (m *DocumentMetadata) Validate() error {
	trimmed := strings.TrimSpace(m.BusinessContext)
	if utf8.RuneCountInString(trimmed) < MinBusinessContextLen {
		return fmt.Errorf("%w: business context must be at least %d characters; state why this document is being stored",
			ErrValidation, MinBusinessContextLen)
	}
	if !strings.Contains(m.UploaderID, "@") {
		return fmt.Errorf("%w: uploader %q is not a valid email address", ErrValidation, m.UploaderID)
	}
	return nil
}

// Document is the authoritative record for a stored document.
// Created once by ingestion; only tags, business context and related
// document references may change afterwards. Raw content is immutable.
type Document struct {
	// ID is the generated identifier (16 hex characters).
	ID string

	// FileName is the original source filename, without directories.
	FileName string

	// ContentType is the classification derived from the filename.
	ContentType DocumentType

	// Metadata is the mandatory admission metadata.
	Metadata DocumentMetadata

	// RawContent is the original byte content.
	RawContent []byte

	// ParsedText is the extracted text, when parsing was requested
	// and a parser exists for the content type.
	ParsedText string

	// Embedding is the vector representation, when computed.
	Embedding []float32

	// AISummary is a generated summary, when computed.
	AISummary string

	// Entities are mentions extracted from the document.
	Entities []Entity

	// RiskScore is an assessed risk in [0,1], when computed.
	RiskScore *float64

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time

	// UpdatedAt is when the document record last changed.
	UpdatedAt time.Time

	// Version starts at 1 and increments on every metadata update.
	Version int
}

// MetadataUpdate is a partial update to a document's mutable metadata.
// Nil fields retain their prior value.
type MetadataUpdate struct {
	Tags            *[]string
	BusinessContext *string
	RelatedDocIDs   *[]string
}

// IsEmpty reports whether the update changes nothing.
func (u MetadataUpdate) IsEmpty() bool {
	return u.Tags == nil && u.BusinessContext == nil && u.RelatedDocIDs == nil
}
