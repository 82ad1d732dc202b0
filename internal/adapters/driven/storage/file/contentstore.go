// Package file provides the file-backed storage adapters. Each
// document is persisted as two files under the base directory: the
// original bytes under documents/ and a JSON metadata record under
// metadata/. The index snapshot lives under index/.
//
// All writes go through a temp-file-and-rename so a crash mid-write
// never leaves a truncated record behind.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
	"github.com/futureready-labs/futureready-kb/internal/core/ports/driven"
	"github.com/futureready-labs/futureready-kb/internal/logger"
)

// Ensure ContentStore implements the interface.
var _ driven.ContentStore = (*ContentStore)(nil)

const (
	documentsDirName = "documents"
	metadataDirName  = "metadata"
)

// metadataFields is the persisted form of domain.DocumentMetadata.
type metadataFields struct {
	UploaderID      string         `json:"uploader_id"`
	UploadTime      time.Time      `json:"upload_time"`
	Department      string         `json:"department"`
	BusinessContext string         `json:"business_context"`
	Tags            []string       `json:"tags"`
	RelatedDocIDs   []string       `json:"related_doc_ids"`
	ExpiryDate      *time.Time     `json:"expiry_date,omitempty"`
	SourceURL       string         `json:"source_url,omitempty"`
	CustomFields    map[string]any `json:"custom_fields,omitempty"`
}

// entityRecord is the persisted form of domain.Entity.
type entityRecord struct {
	Type        string  `json:"type"`
	Value       string  `json:"value"`
	Confidence  float64 `json:"confidence"`
	SourceDocID string  `json:"source_doc_id"`
	Context     string  `json:"context,omitempty"`
}

// metadataRecord is the persisted form of a document record, minus the
// raw bytes which live in their own file at FilePath.
type metadataRecord struct {
	ID          string         `json:"id"`
	FileName    string         `json:"file_name"`
	FilePath    string         `json:"file_path"`
	ContentType string         `json:"content_type"`
	Metadata    metadataFields `json:"metadata"`
	ParsedText  string         `json:"parsed_text,omitempty"`
	Embedding   []float32      `json:"embedding,omitempty"`
	AISummary   string         `json:"ai_summary,omitempty"`
	Entities    []entityRecord `json:"entities,omitempty"`
	RiskScore   *float64       `json:"risk_score,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Version     int            `json:"version"`
}

// ContentStore persists document records on the local filesystem.
type ContentStore struct {
	baseDir      string
	documentsDir string
	metadataDir  string
}

// NewContentStore creates the storage directories under baseDir.
func NewContentStore(baseDir string) (*ContentStore, error) {
	s := &ContentStore{
		baseDir:      baseDir,
		documentsDir: filepath.Join(baseDir, documentsDirName),
		metadataDir:  filepath.Join(baseDir, metadataDirName),
	}
	for _, dir := range []string{s.documentsDir, s.metadataDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create storage directory %s: %w", dir, err)
		}
	}
	logger.Debug("Content store at %s", baseDir)
	return s, nil
}

// SaveDocument writes the raw bytes and the metadata record. The
// metadata record lands last so a record on disk always has its blob.
func (s *ContentStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	blobName := doc.ID + "_" + doc.FileName
	blobPath := filepath.Join(s.documentsDir, blobName)

	if err := writeFileAtomic(blobPath, doc.RawContent); err != nil {
		return fmt.Errorf("write content for %s: %w", doc.ID, err)
	}

	record := recordFromDocument(doc, filepath.Join(documentsDirName, blobName))
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata for %s: %w", doc.ID, err)
	}
	if err := writeFileAtomic(s.metadataPath(doc.ID), data); err != nil {
		return fmt.Errorf("write metadata for %s: %w", doc.ID, err)
	}
	return nil
}

// LoadDocument reads a full document record. An unknown ID returns
// (nil, nil); a metadata record whose blob is gone reports corruption.
func (s *ContentStore) LoadDocument(_ context.Context, id string) (*domain.Document, error) {
	record, err := s.readRecord(id)
	if err != nil || record == nil {
		return nil, err
	}

	raw, err := os.ReadFile(filepath.Join(s.baseDir, record.FilePath))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: document %s has metadata but no content file", domain.ErrStorage, id)
		}
		return nil, fmt.Errorf("%w: read content for %s: %v", domain.ErrStorage, id, err)
	}

	doc := record.toDocument()
	doc.RawContent = raw
	return doc, nil
}

// Exists reports whether a metadata record exists for the ID.
func (s *ContentStore) Exists(_ context.Context, id string) (bool, error) {
	_, err := os.Stat(s.metadataPath(id))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("%w: stat metadata for %s: %v", domain.ErrStorage, id, err)
}

// ListMetadata scans every metadata record, without raw content.
func (s *ContentStore) ListMetadata(_ context.Context) ([]domain.Document, error) {
	entries, err := os.ReadDir(s.metadataDir)
	if err != nil {
		return nil, fmt.Errorf("%w: scan metadata directory: %v", domain.ErrStorage, err)
	}

	var docs []domain.Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		record, err := s.readRecord(id)
		if err != nil {
			return nil, err
		}
		if record == nil {
			continue
		}
		docs = append(docs, *record.toDocument())
	}
	return docs, nil
}

func (s *ContentStore) metadataPath(id string) string {
	return filepath.Join(s.metadataDir, id+".json")
}

// readRecord loads and decodes one metadata record. A missing record
// returns (nil, nil); a malformed one reports corruption.
func (s *ContentStore) readRecord(id string) (*metadataRecord, error) {
	data, err := os.ReadFile(s.metadataPath(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read metadata for %s: %v", domain.ErrStorage, id, err)
	}

	var record metadataRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: metadata record for %s is corrupted: %v", domain.ErrStorage, id, err)
	}
	return &record, nil
}

func recordFromDocument(doc *domain.Document, blobPath string) metadataRecord {
	entities := make([]entityRecord, 0, len(doc.Entities))
	for _, e := range doc.Entities {
		entities = append(entities, entityRecord{
			Type:        string(e.Type),
			Value:       e.Value,
			Confidence:  e.Confidence,
			SourceDocID: e.SourceDocID,
			Context:     e.Context,
		})
	}
	if len(entities) == 0 {
		entities = nil
	}

	return metadataRecord{
		ID:          doc.ID,
		FileName:    doc.FileName,
		FilePath:    blobPath,
		ContentType: string(doc.ContentType),
		Metadata: metadataFields{
			UploaderID:      doc.Metadata.UploaderID,
			UploadTime:      doc.Metadata.UploadTime,
			Department:      doc.Metadata.Department,
			BusinessContext: doc.Metadata.BusinessContext,
			Tags:            doc.Metadata.Tags,
			RelatedDocIDs:   doc.Metadata.RelatedDocIDs,
			ExpiryDate:      doc.Metadata.ExpiryDate,
			SourceURL:       doc.Metadata.SourceURL,
			CustomFields:    doc.Metadata.CustomFields,
		},
		ParsedText: doc.ParsedText,
		Embedding:  doc.Embedding,
		AISummary:  doc.AISummary,
		Entities:   entities,
		RiskScore:  doc.RiskScore,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
		Version:    doc.Version,
	}
}

func (r *metadataRecord) toDocument() *domain.Document {
	var entities []domain.Entity
	for _, e := range r.Entities {
		entities = append(entities, domain.Entity{
			Type:        domain.EntityType(e.Type),
			Value:       e.Value,
			Confidence:  e.Confidence,
			SourceDocID: e.SourceDocID,
			Context:     e.Context,
		})
	}

	return &domain.Document{
		ID:          r.ID,
		FileName:    r.FileName,
		ContentType: domain.DocumentType(r.ContentType),
		Metadata: domain.DocumentMetadata{
			UploaderID:      r.Metadata.UploaderID,
			UploadTime:      r.Metadata.UploadTime,
			Department:      r.Metadata.Department,
			BusinessContext: r.Metadata.BusinessContext,
			Tags:            r.Metadata.Tags,
			RelatedDocIDs:   r.Metadata.RelatedDocIDs,
			ExpiryDate:      r.Metadata.ExpiryDate,
			SourceURL:       r.Metadata.SourceURL,
			CustomFields:    r.Metadata.CustomFields,
		},
		ParsedText: r.ParsedText,
		Embedding:  r.Embedding,
		AISummary:  r.AISummary,
		Entities:   entities,
		RiskScore:  r.RiskScore,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		Version:    r.Version,
	}
}

// writeFileAtomic writes data to a sibling temp file and renames it
// into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
