// Package intake watches drop directories and feeds new files into the
// pipeline.
package intake

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/hyperjump/briefpipe/internal/models"
	"github.com/hyperjump/briefpipe/internal/pipeline"
	"github.com/hyperjump/briefpipe/internal/storage"
)

// debounce delays processing after the last write event so partially copied
// files are not read mid-transfer.
const debounce = 500 * time.Millisecond

// Watcher feeds files dropped into intake directories through the pipeline
// and into storage. Every file is treated as document type "other"; the
// operator reclassifies through the API when needed.
type Watcher struct {
	roots      []string
	extensions []string
	pipeline   *pipeline.Pipeline
	storage    storage.Storage
	logger     *zap.Logger

	watcher *fsnotify.Watcher
	mu      sync.Mutex
	timers  map[string]*time.Timer
	done    chan struct{}
	stopped sync.Once
}

// NewWatcher creates an intake watcher over roots. extensions filters which
// files are processed (empty means all).
func NewWatcher(roots, extensions []string, p *pipeline.Pipeline, store storage.Storage, logger *zap.Logger) *Watcher {
	return &Watcher{
		roots:      roots,
		extensions: extensions,
		pipeline:   p,
		storage:    store,
		logger:     logger,
		timers:     make(map[string]*time.Timer),
		done:       make(chan struct{}),
	}
}

// Start begins watching. It returns after the watcher goroutine is running.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = fw
	for _, root := range w.roots {
		if err := fw.Add(root); err != nil {
			w.logger.Warn("failed to watch intake directory", zap.String("dir", root), zap.Error(err))
			continue
		}
		w.logger.Info("watching intake directory", zap.String("dir", root))
	}
	go w.loop(ctx)
	return nil
}

// Stop stops watching.
func (w *Watcher) Stop() {
	w.stopped.Do(func() {
		close(w.done)
		if w.watcher != nil {
			_ = w.watcher.Close()
		}
	})
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !w.wantFile(event.Name) {
				continue
			}
			w.schedule(ctx, event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("intake watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) wantFile(path string) bool {
	if len(w.extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// schedule debounces per path, so a burst of writes yields one processing run.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		w.process(ctx, path)
	})
}

func (w *Watcher) process(ctx context.Context, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		w.logger.Warn("failed to read intake file", zap.String("path", path), zap.Error(err))
		return
	}
	doc := w.pipeline.ProcessDocument(ctx, pipeline.DocumentInput{
		FileName:     filepath.Base(path),
		DocumentType: models.TypeOther,
		Content:      content,
	})
	if err := w.storage.SaveDocument(ctx, doc); err != nil {
		w.logger.Error("failed to store intake document", zap.String("path", path), zap.Error(err))
		return
	}
	w.logger.Info("intake document processed",
		zap.String("file", doc.FileName),
		zap.String("status", string(doc.Status)),
		zap.Int("pages", doc.TotalPages))
}
