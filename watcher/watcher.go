// ABOUTME: This file implements the input-directory watcher for the list pipeline
// ABOUTME: A single stable-age policy decides when a detected file is safe to read
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alt-project/newsforge/config"
)

// pollInterval is how often pending detections are checked against the
// stability policy.
const pollInterval = 100 * time.Millisecond

var watchedExtensions = map[string]bool{
	".md":  true,
	".txt": true,
}

// Handler processes one stable input file. Detections are delivered
// sequentially; the watcher waits for the handler before delivering the next.
type Handler func(ctx context.Context, path string)

// Policy is the single debounce rule: a detected file is delivered once no
// write has been observed for StableAge and the file still exists.
type Policy struct {
	StableAge time.Duration
}

// Watcher observes the input directory for article-list drops.
type Watcher struct {
	dir     string
	policy  Policy
	handler Handler
	logger  *slog.Logger
}

// New creates a watcher from the loaded configuration.
func New(cfg *config.Config, handler Handler, logger *slog.Logger) *Watcher {
	return &Watcher{
		dir:     cfg.Pipeline.InputDir,
		policy:  Policy{StableAge: cfg.Pipeline.StableAge},
		handler: handler,
		logger:  logger,
	}
}

// Run watches until the context is cancelled. Files already present at
// startup are treated as fresh detections and delivered once stable.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	// lastWrite tracks the most recent write event per pending file.
	pending := make(map[string]time.Time)

	existing, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", w.dir, err)
	}
	now := time.Now()
	for _, entry := range existing {
		if entry.IsDir() || !w.watchable(entry.Name()) {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		pending[path] = now
		w.logger.Info("existing input file detected", "path", path)
	}

	w.logger.Info("watching input directory",
		"dir", w.dir,
		"stable_age", w.policy.StableAge)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopping", "dir", w.dir)
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !w.watchable(filepath.Base(event.Name)) {
				continue
			}
			if _, seen := pending[event.Name]; !seen {
				w.logger.Info("input file detected", "path", event.Name)
			}
			pending[event.Name] = time.Now()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "dir", w.dir, "error", err)

		case tick := <-ticker.C:
			for path, last := range pending {
				if tick.Sub(last) < w.policy.StableAge {
					continue
				}
				delete(pending, path)

				// The file may have been renamed or removed while settling.
				if _, err := os.Stat(path); err != nil {
					w.logger.Warn("input file vanished before processing", "path", path)
					continue
				}

				w.handler(ctx, path)
				w.logger.Info("ready for next input file", "dir", w.dir)
			}
		}
	}
}

func (w *Watcher) watchable(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	return watchedExtensions[strings.ToLower(filepath.Ext(name))]
}
