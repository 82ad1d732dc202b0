package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSortByUploadTime(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []IndexedDocument{
		{ID: "c", IndexEntry: IndexEntry{UploadTime: base.Add(2 * time.Hour)}},
		{ID: "b", IndexEntry: IndexEntry{UploadTime: base}},
		{ID: "a", IndexEntry: IndexEntry{UploadTime: base}},
	}

	SortByUploadTime(entries)

	// Equal upload times fall back to ID order.
	assert.Equal(t, "a", entries[0].ID)
	assert.Equal(t, "b", entries[1].ID)
	assert.Equal(t, "c", entries[2].ID)
}

func TestEntryFor(t *testing.T) {
	uploaded := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	doc := &Document{
		ID:       "abc123",
		FileName: "contract.pdf",
		Metadata: DocumentMetadata{
			Department:      "legal",
			Tags:            []string{"contract", "vendor"},
			UploadTime:      uploaded,
			BusinessContext: "vendor contract for the 2026 renewal cycle",
		},
	}

	entry := EntryFor(doc)
	assert.Equal(t, "contract.pdf", entry.FilePath)
	assert.Equal(t, "legal", entry.Department)
	assert.Equal(t, []string{"contract", "vendor"}, entry.Tags)
	assert.Equal(t, uploaded, entry.UploadTime)
	assert.Equal(t, "vendor contract for the 2026 renewal cycle", entry.BusinessContext)
}
