// Package watcher ingests new files dropped into a watched directory.
// It is the automation front door for the knowledge base: every file
// landing in the drop directory is admitted with a configured uploader
// and business context.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/futureready-labs/futureready-kb/internal/core/ports/driving"
	"github.com/futureready-labs/futureready-kb/internal/logger"
)

// settleDelay gives the writing process time to finish before the
// file is read. Editors and downloads often emit several write events
// for one file.
const settleDelay = 500 * time.Millisecond

// Config holds the watcher's ingestion defaults.
type Config struct {
	// Dir is the directory to watch.
	Dir string

	// Uploader is the email recorded on auto-ingested documents.
	Uploader string

	// Department applied to auto-ingested documents.
	Department string

	// BusinessContext recorded on auto-ingested documents.
	BusinessContext string

	// Tags applied to auto-ingested documents.
	Tags []string
}

// Watcher feeds files from a drop directory into the knowledge base.
type Watcher struct {
	kb  driving.KnowledgeBaseService
	cfg Config

	// pending holds files waiting out the settle delay.
	pending map[string]*time.Timer

	// done unblocks settle timers when Run exits.
	done chan struct{}
}

// New creates a watcher over the configured directory.
func New(kb driving.KnowledgeBaseService, cfg Config) (*Watcher, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("watcher: directory is required")
	}
	if cfg.Uploader == "" {
		return nil, fmt.Errorf("watcher: uploader is required")
	}
	return &Watcher{
		kb:      kb,
		cfg:     cfg,
		pending: make(map[string]*time.Timer),
	}, nil
}

// Run watches until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.cfg.Dir, err)
	}
	logger.Info("Watching %s", w.cfg.Dir)

	w.done = make(chan struct{})
	defer close(w.done)

	ingestCh := make(chan string)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event, ingestCh)

		case path := <-ingestCh:
			w.ingest(ctx, path)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

// handleEvent schedules an ingest for create and write events,
// resetting the settle timer on repeated writes to the same file.
func (w *Watcher) handleEvent(event fsnotify.Event, ingestCh chan<- string) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return
	}
	if !shouldIngest(event.Name) {
		return
	}

	if timer, ok := w.pending[event.Name]; ok {
		timer.Reset(settleDelay)
		return
	}

	path := event.Name
	w.pending[path] = time.AfterFunc(settleDelay, func() {
		select {
		case ingestCh <- path:
		case <-w.done:
		}
	})
}

// ingest admits one settled file.
func (w *Watcher) ingest(ctx context.Context, path string) {
	delete(w.pending, path)

	doc, err := w.kb.Ingest(ctx, driving.IngestRequest{
		FilePath:        path,
		Uploader:        w.cfg.Uploader,
		Department:      w.cfg.Department,
		BusinessContext: w.cfg.BusinessContext,
		Tags:            w.cfg.Tags,
		ParseContent:    true,
	})
	if err != nil {
		logger.Warn("Auto-ingest of %s failed: %v", path, err)
		return
	}
	logger.Info("Auto-ingested %s as %s", filepath.Base(path), doc.ID)
}

// shouldIngest filters out hidden files and editor temp files.
func shouldIngest(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	if strings.HasSuffix(name, "~") || strings.HasSuffix(name, ".tmp") || strings.HasSuffix(name, ".swp") {
		return false
	}
	return true
}
