package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
	"github.com/futureready-labs/futureready-kb/internal/core/ports/driven"
	"github.com/futureready-labs/futureready-kb/internal/core/ports/driving"
	"github.com/futureready-labs/futureready-kb/internal/logger"
)

// Ensure KnowledgeBase implements the interface.
var _ driving.KnowledgeBaseService = (*KnowledgeBase)(nil)

// idHexLen is the length of a generated document identifier.
const idHexLen = 16

// maxIDRetries bounds identifier regeneration when a freshly generated
// ID collides with an existing record.
const maxIDRetries = 5

// Config holds store-level settings for the knowledge base.
type Config struct {
	// Department is the fallback department applied when an ingest
	// request omits one.
	Department string
}

// KnowledgeBase orchestrates document admission, retrieval and the
// search pipeline over a content store and its derived index.
//
// Mutations take a single writer lock: every index change is a
// read-modify-persist of the full snapshot and must not interleave.
// Reads share a read lock.
type KnowledgeBase struct {
	mu      sync.RWMutex
	content driven.ContentStore
	index   driven.IndexStore
	parsers driven.ParserRegistry
	cfg     Config

	// now is injectable for tests.
	now func() time.Time
}

// NewKnowledgeBase creates a knowledge base service.
// The parsers registry is optional (can be nil); without it ingested
// documents carry no parsed text.
func NewKnowledgeBase(
	content driven.ContentStore,
	index driven.IndexStore,
	parsers driven.ParserRegistry,
	cfg Config,
) *KnowledgeBase {
	return &KnowledgeBase{
		content: content,
		index:   index,
		parsers: parsers,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Ingest admits a new document into the store.
func (kb *KnowledgeBase) Ingest(ctx context.Context, req driving.IngestRequest) (*domain.Document, error) {
	logger.Section("Ingest")
	logger.Debug("File: %s", req.FilePath)

	if _, err := os.Stat(req.FilePath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: file %s", domain.ErrNotFound, req.FilePath)
		}
		return nil, fmt.Errorf("%w: stat %s: %v", domain.ErrStorage, req.FilePath, err)
	}

	department := req.Department
	if department == "" {
		department = kb.cfg.Department
	}

	meta := domain.DocumentMetadata{
		UploaderID:      req.Uploader,
		UploadTime:      kb.now(),
		Department:      department,
		BusinessContext: req.BusinessContext,
		Tags:            req.Tags,
		RelatedDocIDs:   req.RelatedDocs,
		ExpiryDate:      req.ExpiryDate,
		SourceURL:       req.SourceURL,
	}

	// Validation must fail before anything touches disk.
	if err := meta.Validate(); err != nil {
		logger.Warn("Metadata rejected: %v", err)
		return nil, err
	}

	fileName := filepath.Base(req.FilePath)

	id, err := kb.generateID(ctx, fileName)
	if err != nil {
		return nil, err
	}
	logger.Debug("Document ID: %s", id)

	contentType := domain.ClassifyFilename(fileName)
	logger.Debug("Content type: %s", contentType)

	raw, err := os.ReadFile(req.FilePath)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrStorage, req.FilePath, err)
	}

	var parsedText string
	if req.ParseContent && kb.parsers != nil {
		if parser, ok := kb.parsers.ParserFor(contentType); ok {
			parsedText, err = parser.Parse(ctx, raw)
			if err != nil {
				return nil, fmt.Errorf("parse %s content: %w", contentType, err)
			}
			logger.Debug("Parsed %d characters", len(parsedText))
		} else {
			logger.Debug("No parser for %s, storing without text", contentType)
		}
	}

	now := kb.now()
	doc := &domain.Document{
		ID:          id,
		FileName:    fileName,
		ContentType: contentType,
		Metadata:    meta,
		RawContent:  raw,
		ParsedText:  parsedText,
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     1,
	}

	kb.mu.Lock()
	defer kb.mu.Unlock()

	if err := kb.content.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document %s: %w", id, err)
	}
	if err := kb.index.Upsert(ctx, id, domain.EntryFor(doc)); err != nil {
		return nil, fmt.Errorf("index document %s: %w", id, err)
	}

	logger.Info("Ingested %s (%s, department=%s)", id, fileName, department)
	return doc, nil
}

// Search answers a query with ranked results.
func (kb *KnowledgeBase) Search(ctx context.Context, query domain.SearchQuery) ([]domain.SearchResult, error) {
	logger.Section("Search")
	logger.Debug("Query: %q department=%q tags=%v", query.Query, query.Department, query.Tags)

	limit := query.Limit
	if limit < 0 {
		limit = 0
	}

	kb.mu.RLock()
	defer kb.mu.RUnlock()

	entries, err := kb.index.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}
	logger.Debug("Index entries: %d", len(entries))

	results := []domain.SearchResult{}
	for _, entry := range entries {
		if !matchesFilters(entry.IndexEntry, query) {
			continue
		}

		doc, err := kb.content.LoadDocument(ctx, entry.ID)
		if err != nil {
			return nil, fmt.Errorf("load document %s: %w", entry.ID, err)
		}
		if doc == nil {
			// The index invariant guarantees a backing record.
			return nil, fmt.Errorf("%w: indexed document %s has no record", domain.ErrStorage, entry.ID)
		}

		score := relevanceScore(query.Query, doc)
		if score > 0 || query.Query == "" {
			results = append(results, domain.SearchResult{
				Document:   *doc,
				Score:      score,
				Highlights: extractHighlights(query.Query, doc.ParsedText),
			})
		}
	}

	// Stable sort keeps encounter order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	logger.Info("Results: %d", len(results))
	return results, nil
}

// GetDocument loads a document by ID; an unknown ID returns (nil, nil).
func (kb *KnowledgeBase) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	return kb.content.LoadDocument(ctx, id)
}

// UpdateMetadata applies a partial update to a document's mutable
// metadata fields. Each call increments the version by exactly one and
// moves the updated time strictly forward.
func (kb *KnowledgeBase) UpdateMetadata(ctx context.Context, id string, update domain.MetadataUpdate) (*domain.Document, error) {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	doc, err := kb.content.LoadDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document %s", domain.ErrNotFound, id)
	}

	if update.Tags != nil {
		doc.Metadata.Tags = *update.Tags
	}
	if update.BusinessContext != nil {
		doc.Metadata.BusinessContext = *update.BusinessContext
	}
	if update.RelatedDocIDs != nil {
		doc.Metadata.RelatedDocIDs = *update.RelatedDocIDs
	}

	// updated_at must move strictly forward even on coarse clocks.
	now := kb.now()
	if !now.After(doc.UpdatedAt) {
		now = doc.UpdatedAt.Add(time.Nanosecond)
	}
	doc.UpdatedAt = now
	doc.Version++

	if err := kb.content.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document %s: %w", id, err)
	}
	if err := kb.index.Upsert(ctx, id, domain.EntryFor(doc)); err != nil {
		return nil, fmt.Errorf("index document %s: %w", id, err)
	}

	logger.Info("Updated %s to version %d", id, doc.Version)
	return doc, nil
}

// RebuildIndex re-derives the full index from persisted document
// records, for recovery after a corrupted or lost snapshot.
func (kb *KnowledgeBase) RebuildIndex(ctx context.Context) (int, error) {
	logger.Section("Rebuild Index")

	kb.mu.Lock()
	defer kb.mu.Unlock()

	docs, err := kb.content.ListMetadata(ctx)
	if err != nil {
		return 0, fmt.Errorf("scan documents: %w", err)
	}

	entries := make(map[string]domain.IndexEntry, len(docs))
	for i := range docs {
		entries[docs[i].ID] = domain.EntryFor(&docs[i])
	}

	if err := kb.index.Replace(ctx, entries); err != nil {
		return 0, fmt.Errorf("replace index: %w", err)
	}

	logger.Info("Rebuilt index with %d entries", len(entries))
	return len(entries), nil
}

// generateID derives a document identifier from the filename and the
// current instant. Collisions are not assumed acceptable: the ID is
// regenerated with a fresh timestamp while a record already exists.
func (kb *KnowledgeBase) generateID(ctx context.Context, fileName string) (string, error) {
	for attempt := 0; attempt < maxIDRetries; attempt++ {
		sum := sha256.Sum256([]byte(fileName + kb.now().Format(time.RFC3339Nano)))
		id := hex.EncodeToString(sum[:])[:idHexLen]

		exists, err := kb.content.Exists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("check identifier %s: %w", id, err)
		}
		if !exists {
			return id, nil
		}
		logger.Warn("Identifier collision on %s, regenerating", id)
	}
	return "", fmt.Errorf("%w: could not generate a unique identifier for %s", domain.ErrStorage, fileName)
}

// matchesFilters applies the query filters to an index entry,
// short-circuiting on the first failure. Filter order: department,
// tags, date range, as-of.
func matchesFilters(entry domain.IndexEntry, query domain.SearchQuery) bool {
	if query.Department != "" && entry.Department != query.Department {
		return false
	}

	if len(query.Tags) > 0 && !anyTagMatch(query.Tags, entry.Tags) {
		return false
	}

	if query.DateRange != nil && !query.DateRange.Contains(entry.UploadTime) {
		return false
	}

	// Temporal query: exclude documents uploaded strictly after the
	// as-of instant.
	if query.AsOf != nil && entry.UploadTime.After(*query.AsOf) {
		return false
	}

	return true
}

// anyTagMatch reports whether the tag sets intersect.
func anyTagMatch(queryTags, docTags []string) bool {
	set := make(map[string]struct{}, len(docTags))
	for _, t := range docTags {
		set[t] = struct{}{}
	}
	for _, t := range queryTags {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

// relevanceScore computes the additive relevance heuristic:
// +0.5 for a business context match, +0.3 for a tag match, +0.2 for a
// parsed text match, capped at 1.0. An empty query scores 1.0.
func relevanceScore(query string, doc *domain.Document) float64 {
	if query == "" {
		return 1.0
	}

	q := strings.ToLower(query)
	score := 0.0

	if strings.Contains(strings.ToLower(doc.Metadata.BusinessContext), q) {
		score += 0.5
	}

	for _, tag := range doc.Metadata.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			score += 0.3
			break
		}
	}

	if doc.ParsedText != "" && strings.Contains(strings.ToLower(doc.ParsedText), q) {
		score += 0.2
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// sentenceTerminator separates sentences for highlight extraction.
const sentenceTerminator = "。"

// maxHighlightSentences bounds how many sentences are scanned.
const maxHighlightSentences = 10

// extractHighlights collects sentences of the parsed text containing
// the query, re-appending the terminator to each snippet.
func extractHighlights(query, text string) []string {
	if query == "" || text == "" {
		return nil
	}

	q := strings.ToLower(query)
	sentences := strings.Split(text, sentenceTerminator)
	if len(sentences) > maxHighlightSentences {
		sentences = sentences[:maxHighlightSentences]
	}

	var highlights []string
	for _, sentence := range sentences {
		if strings.Contains(strings.ToLower(sentence), q) {
			highlights = append(highlights, strings.TrimSpace(sentence)+sentenceTerminator)
		}
	}
	return highlights
}
