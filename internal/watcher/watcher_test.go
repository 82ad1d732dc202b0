package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
	"github.com/futureready-labs/futureready-kb/internal/core/ports/driving"
)

// recordingKB records ingest requests.
type recordingKB struct {
	mu       sync.Mutex
	requests []driving.IngestRequest
	notify   chan struct{}
}

func (m *recordingKB) Ingest(_ context.Context, req driving.IngestRequest) (*domain.Document, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.notify != nil {
		m.notify <- struct{}{}
	}
	return &domain.Document{ID: "deadbeef00112233", FileName: filepath.Base(req.FilePath)}, nil
}

func (m *recordingKB) Search(context.Context, domain.SearchQuery) ([]domain.SearchResult, error) {
	return nil, nil
}

func (m *recordingKB) GetDocument(context.Context, string) (*domain.Document, error) {
	return nil, nil
}

func (m *recordingKB) UpdateMetadata(context.Context, string, domain.MetadataUpdate) (*domain.Document, error) {
	return nil, nil
}

func (m *recordingKB) RebuildIndex(context.Context) (int, error) {
	return 0, nil
}

func TestShouldIngest(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"contract.txt", true},
		{"/drop/report.pdf", true},
		{"notes.md", true},
		{".hidden.txt", false},
		{"/drop/.DS_Store", false},
		{"draft.txt~", false},
		{"upload.tmp", false},
		{".contract.txt.swp", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, shouldIngest(tt.path))
		})
	}
}

func TestNewValidation(t *testing.T) {
	kb := &recordingKB{}

	_, err := New(kb, Config{Uploader: "ops@example.com"})
	assert.Error(t, err)

	_, err = New(kb, Config{Dir: t.TempDir()})
	assert.Error(t, err)

	_, err = New(kb, Config{Dir: t.TempDir(), Uploader: "ops@example.com"})
	assert.NoError(t, err)
}

func TestRunIngestsDroppedFile(t *testing.T) {
	dir := t.TempDir()
	kb := &recordingKB{notify: make(chan struct{}, 1)}

	w, err := New(kb, Config{
		Dir:             dir,
		Uploader:        "ops@example.com",
		Department:      "legal",
		BusinessContext: "automated intake from the legal drop directory",
		Tags:            []string{"inbox", "auto"},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runDone := make(chan error, 1)
	go func() { runDone <- w.Run(ctx) }()

	// Give the watcher a moment to register before dropping the file.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "contract.txt"), []byte("body"), 0644))

	select {
	case <-kb.notify:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for auto-ingest")
	}

	kb.mu.Lock()
	require.Len(t, kb.requests, 1)
	req := kb.requests[0]
	kb.mu.Unlock()

	assert.Equal(t, filepath.Join(dir, "contract.txt"), req.FilePath)
	assert.Equal(t, "ops@example.com", req.Uploader)
	assert.Equal(t, "legal", req.Department)
	assert.Equal(t, []string{"inbox", "auto"}, req.Tags)
	assert.True(t, req.ParseContent)

	cancel()
	select {
	case err := <-runDone:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}
