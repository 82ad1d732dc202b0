package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
)

func sampleDocument() *domain.Document {
	uploaded := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	expiry := uploaded.AddDate(1, 0, 0)
	risk := 0.25
	return &domain.Document{
		ID:          "deadbeef00112233",
		FileName:    "contract.txt",
		ContentType: domain.TypeTXT,
		Metadata: domain.DocumentMetadata{
			UploaderID:      "legal@example.com",
			UploadTime:      uploaded,
			Department:      "legal",
			BusinessContext: "key customer contract with joint liability",
			Tags:            []string{"contract", "customer"},
			RelatedDocIDs:   []string{"feedcafe00000000"},
			ExpiryDate:      &expiry,
			SourceURL:       "https://example.com/contract",
		},
		RawContent: []byte("termination requires ninety days notice"),
		ParsedText: "termination requires ninety days notice",
		RiskScore:  &risk,
		CreatedAt:  uploaded,
		UpdatedAt:  uploaded,
		Version:    1,
	}
}

func TestContentStoreRoundTrip(t *testing.T) {
	store, err := NewContentStore(t.TempDir())
	require.NoError(t, err)

	doc := sampleDocument()
	require.NoError(t, store.SaveDocument(context.Background(), doc))

	loaded, err := store.LoadDocument(context.Background(), doc.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, doc, loaded)
}

func TestContentStoreLayout(t *testing.T) {
	dir := t.TempDir()
	store, err := NewContentStore(dir)
	require.NoError(t, err)

	doc := sampleDocument()
	require.NoError(t, store.SaveDocument(context.Background(), doc))

	blob := filepath.Join(dir, "documents", doc.ID+"_"+doc.FileName)
	raw, err := os.ReadFile(blob)
	require.NoError(t, err)
	assert.Equal(t, doc.RawContent, raw)

	meta, err := os.ReadFile(filepath.Join(dir, "metadata", doc.ID+".json"))
	require.NoError(t, err)
	assert.Contains(t, string(meta), `"uploader_id": "legal@example.com"`)
	assert.Contains(t, string(meta), `"business_context"`)
}

func TestContentStoreAbsent(t *testing.T) {
	store, err := NewContentStore(t.TempDir())
	require.NoError(t, err)

	doc, err := store.LoadDocument(context.Background(), "ffffffffffffffff")
	require.NoError(t, err)
	assert.Nil(t, doc)

	exists, err := store.Exists(context.Background(), "ffffffffffffffff")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestContentStoreExists(t *testing.T) {
	store, err := NewContentStore(t.TempDir())
	require.NoError(t, err)

	doc := sampleDocument()
	require.NoError(t, store.SaveDocument(context.Background(), doc))

	exists, err := store.Exists(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestContentStoreMissingBlob(t *testing.T) {
	dir := t.TempDir()
	store, err := NewContentStore(dir)
	require.NoError(t, err)

	doc := sampleDocument()
	require.NoError(t, store.SaveDocument(context.Background(), doc))
	require.NoError(t, os.Remove(filepath.Join(dir, "documents", doc.ID+"_"+doc.FileName)))

	_, err = store.LoadDocument(context.Background(), doc.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestContentStoreCorruptedRecord(t *testing.T) {
	dir := t.TempDir()
	store, err := NewContentStore(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "metadata", "deadbeef00112233.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err = store.LoadDocument(context.Background(), "deadbeef00112233")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestContentStoreListMetadata(t *testing.T) {
	store, err := NewContentStore(t.TempDir())
	require.NoError(t, err)

	first := sampleDocument()
	require.NoError(t, store.SaveDocument(context.Background(), first))

	second := sampleDocument()
	second.ID = "cafebabe44556677"
	second.FileName = "policy.txt"
	require.NoError(t, store.SaveDocument(context.Background(), second))

	docs, err := store.ListMetadata(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	for _, d := range docs {
		assert.Nil(t, d.RawContent, "listing omits raw content")
	}
}

func TestContentStoreUpdateOverwrites(t *testing.T) {
	store, err := NewContentStore(t.TempDir())
	require.NoError(t, err)

	doc := sampleDocument()
	require.NoError(t, store.SaveDocument(context.Background(), doc))

	doc.Metadata.Tags = []string{"renamed"}
	doc.Version = 2
	require.NoError(t, store.SaveDocument(context.Background(), doc))

	loaded, err := store.LoadDocument(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"renamed"}, loaded.Metadata.Tags)
	assert.Equal(t, 2, loaded.Version)
}

func TestContentStoreNoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	store, err := NewContentStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.SaveDocument(context.Background(), sampleDocument()))

	var leftovers []string
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.Contains(d.Name(), ".tmp-") {
			leftovers = append(leftovers, path)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}
