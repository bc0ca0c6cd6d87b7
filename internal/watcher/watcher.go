// Package watcher observes the data directory and reports artifact
// rewrites. Pipeline runs (and manual file drops) become visible in the
// logs without polling.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/animesense/animesense-server/internal/dataset"
)

// Event is one settled artifact rewrite.
type Event struct {
	Artifact string
	Path     string
	Size     int64
	ModTime  time.Time
}

// Watcher watches the data directory for artifact rewrites. Writes are
// debounced: a burst of CSV appends becomes one event once the file has
// settled.
type Watcher struct {
	dir     string
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	settle  time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer

	events chan Event
	done   chan struct{}
	once   sync.Once
}

// New creates a watcher over dir. Only the known artifact filenames are
// reported; anything else in the directory is ignored.
func New(dir string, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &Watcher{
		dir:     dir,
		watcher: fw,
		logger:  logger,
		settle:  200 * time.Millisecond,
		pending: make(map[string]*time.Timer),
		events:  make(chan Event, 16),
		done:    make(chan struct{}),
	}, nil
}

// artifactNames is the set of filenames worth reporting.
var artifactNames = map[string]bool{
	dataset.RawFile:           true,
	dataset.SentimentFile:     true,
	dataset.EmotionFile:       true,
	dataset.UnifiedFile:       true,
	dataset.GenresFile:        true,
	dataset.OpinionTrendsFile: true,
	dataset.EmotionTrendsFile: true,
	dataset.ReportFile:        true,
}

// Events returns the channel of settled artifact rewrites.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start blocks until the context is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Info("watching data directory", "dir", w.dir)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		}
	}
}

// Stop terminates the watch loop and releases the inotify handle.
func (w *Watcher) Stop() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) {
		return
	}
	name := filepath.Base(ev.Name)
	if !artifactNames[name] {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[name]; ok {
		timer.Reset(w.settle)
		return
	}
	w.pending[name] = time.AfterFunc(w.settle, func() {
		w.emit(name)
	})
}

func (w *Watcher) emit(name string) {
	w.mu.Lock()
	delete(w.pending, name)
	w.mu.Unlock()

	path := filepath.Join(w.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		// Rewritten and removed within the settle window.
		return
	}

	w.logger.Info("artifact updated",
		"artifact", name,
		"size", info.Size(),
		"mod_time", info.ModTime().Format(time.RFC3339),
	)

	select {
	case w.events <- Event{Artifact: name, Path: path, Size: info.Size(), ModTime: info.ModTime()}:
	case <-w.done:
	default:
		// Nobody is draining; logging above is the primary output.
	}
}
