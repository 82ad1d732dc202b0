package domain

import (
	"sort"
	"time"
)

// IndexEntry is the denormalised projection of a document's searchable
// attributes, used for filtering without loading full records.
//
// The index is a derived cache: document records are the source of
// truth, and the full mapping must be reconstructible by re-scanning
// all persisted metadata records.
type IndexEntry struct {
	// FilePath is the original source filename.
	FilePath string

	// Department owning the document.
	Department string

	// Tags labelling the document.
	Tags []string

	// UploadTime is the document's immutable insertion instant.
	UploadTime time.Time

	// BusinessContext is the document's admission justification.
	BusinessContext string
}

// IndexedDocument pairs an index entry with its document identifier.
type IndexedDocument struct {
	ID string
	IndexEntry
}

// SortByUploadTime orders entries ascending by upload time, breaking
// ties by identifier. This is the canonical encounter order for the
// query engine: upload time acts as the insertion clock, and equal
// scores keep this order under the engine's stable sort.
func SortByUploadTime(entries []IndexedDocument) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].UploadTime.Equal(entries[j].UploadTime) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].UploadTime.Before(entries[j].UploadTime)
	})
}

// EntryFor derives the index entry for a document.
func EntryFor(doc *Document) IndexEntry {
	return IndexEntry{
		FilePath:        doc.FileName,
		Department:      doc.Metadata.Department,
		Tags:            doc.Metadata.Tags,
		UploadTime:      doc.Metadata.UploadTime,
		BusinessContext: doc.Metadata.BusinessContext,
	}
}
