package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
)

func sampleEntry(uploaded time.Time) domain.IndexEntry {
	return domain.IndexEntry{
		FilePath:        "contract.txt",
		Department:      "legal",
		Tags:            []string{"contract"},
		UploadTime:      uploaded,
		BusinessContext: "key customer contract with joint liability",
	}
}

func TestIndexStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewIndexStore(dir)
	require.NoError(t, err)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.Upsert(context.Background(), "bbbbbbbbbbbbbbbb", sampleEntry(base.Add(time.Hour))))
	require.NoError(t, store.Upsert(context.Background(), "aaaaaaaaaaaaaaaa", sampleEntry(base)))

	entries, err := store.Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "aaaaaaaaaaaaaaaa", entries[0].ID, "entries come back in upload order")
	assert.Equal(t, "bbbbbbbbbbbbbbbb", entries[1].ID)
}

func TestIndexStoreSurvivesReload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewIndexStore(dir)
	require.NoError(t, err)

	uploaded := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.Upsert(context.Background(), "aaaaaaaaaaaaaaaa", sampleEntry(uploaded)))

	reopened, err := NewIndexStore(dir)
	require.NoError(t, err)
	entries, err := reopened.Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "aaaaaaaaaaaaaaaa", entries[0].ID)
	assert.Equal(t, "legal", entries[0].Department)
	assert.True(t, entries[0].UploadTime.Equal(uploaded))
}

func TestIndexStoreReplace(t *testing.T) {
	store, err := NewIndexStore(t.TempDir())
	require.NoError(t, err)

	uploaded := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.Upsert(context.Background(), "aaaaaaaaaaaaaaaa", sampleEntry(uploaded)))

	require.NoError(t, store.Replace(context.Background(), map[string]domain.IndexEntry{
		"cccccccccccccccc": sampleEntry(uploaded.Add(time.Minute)),
	}))

	entries, err := store.Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cccccccccccccccc", entries[0].ID)
}

func TestIndexStoreEmptySnapshot(t *testing.T) {
	store, err := NewIndexStore(t.TempDir())
	require.NoError(t, err)

	entries, err := store.Entries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestIndexStoreCorruptedSnapshot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "index"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index", "index.json"), []byte("{broken"), 0644))

	_, err := NewIndexStore(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
}
