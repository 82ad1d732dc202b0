package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
	"github.com/futureready-labs/futureready-kb/internal/core/ports/driven"
	"github.com/futureready-labs/futureready-kb/internal/logger"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

const (
	indexDirName  = "index"
	indexFileName = "index.json"
)

// indexEntryRecord is the persisted form of one index entry.
type indexEntryRecord struct {
	FilePath        string    `json:"file_path"`
	Department      string    `json:"department"`
	Tags            []string  `json:"tags"`
	UploadTime      time.Time `json:"upload_time"`
	BusinessContext string    `json:"business_context"`
}

// IndexStore persists the index as a single JSON snapshot, loaded once
// at construction and rewritten in full on every change.
type IndexStore struct {
	mu      sync.RWMutex
	path    string
	entries map[string]domain.IndexEntry
}

// NewIndexStore loads the snapshot under baseDir, creating an empty
// one when none exists yet.
func NewIndexStore(baseDir string) (*IndexStore, error) {
	dir := filepath.Join(baseDir, indexDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create index directory %s: %w", dir, err)
	}

	s := &IndexStore{
		path:    filepath.Join(dir, indexFileName),
		entries: make(map[string]domain.IndexEntry),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	logger.Debug("Index snapshot at %s (%d entries)", s.path, len(s.entries))
	return s, nil
}

// Entries returns all entries in canonical encounter order.
func (s *IndexStore) Entries(_ context.Context) ([]domain.IndexedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.IndexedDocument, 0, len(s.entries))
	for id, entry := range s.entries {
		out = append(out, domain.IndexedDocument{ID: id, IndexEntry: entry})
	}
	domain.SortByUploadTime(out)
	return out, nil
}

// Upsert inserts or replaces one entry and persists the snapshot.
func (s *IndexStore) Upsert(_ context.Context, id string, entry domain.IndexEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = entry
	return s.persist()
}

// Replace swaps the entire mapping and persists the snapshot.
func (s *IndexStore) Replace(_ context.Context, entries map[string]domain.IndexEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]domain.IndexEntry, len(entries))
	for id, entry := range entries {
		s.entries[id] = entry
	}
	return s.persist()
}

func (s *IndexStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: read index snapshot: %v", domain.ErrStorage, err)
	}

	records := make(map[string]indexEntryRecord)
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("%w: index snapshot is corrupted: %v", domain.ErrStorage, err)
	}

	for id, r := range records {
		s.entries[id] = domain.IndexEntry{
			FilePath:        r.FilePath,
			Department:      r.Department,
			Tags:            r.Tags,
			UploadTime:      r.UploadTime,
			BusinessContext: r.BusinessContext,
		}
	}
	return nil
}

// persist writes the full snapshot atomically. Callers hold the lock.
func (s *IndexStore) persist() error {
	records := make(map[string]indexEntryRecord, len(s.entries))
	for id, entry := range s.entries {
		records[id] = indexEntryRecord{
			FilePath:        entry.FilePath,
			Department:      entry.Department,
			Tags:            entry.Tags,
			UploadTime:      entry.UploadTime,
			BusinessContext: entry.BusinessContext,
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode index snapshot: %w", err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("write index snapshot: %w", err)
	}
	return nil
}
