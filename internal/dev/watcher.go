// Package dev provides the development-mode tooling: a template file
// watcher and the browser livereload hub.
package dev

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce coalesces rapid successive events (an editor writing
// then renaming a temp file) into a single callback.
const defaultDebounce = 100 * time.Millisecond

// defaultIgnore lists directory and file names that never trigger
// callbacks.
var defaultIgnore = []string{
	".git",
	"node_modules",
	"dist",
	"tmp",
	"*.tmp",
	"*.swp",
	"*~",
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Dir is the root directory to watch, recursively.
	Dir string

	// Extension restricts change events to files with this extension.
	// Empty watches every non-ignored file.
	Extension string

	// Debounce is the quiet period after the last event before the
	// callback fires. Zero falls back to defaultDebounce.
	Debounce time.Duration

	// Ignore are additional name patterns to skip, merged with the
	// built-in defaults.
	Ignore []string

	// OnChange receives the deduplicated set of changed paths after the
	// debounce window closes. A nil callback is a no-op.
	OnChange func(paths []string)

	// Logger receives watcher events. Defaults to slog.Default().
	Logger *slog.Logger
}

// Watcher monitors a directory tree and fires a debounced callback when
// matching files change. Run must be called exactly once.
type Watcher struct {
	cfg    WatcherConfig
	fsw    *fsnotify.Watcher
	ignore []string
	logger *slog.Logger

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
}

// NewWatcher creates a watcher and registers every non-ignored directory
// under cfg.Dir.
func NewWatcher(cfg WatcherConfig) (*Watcher, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		cfg:     cfg,
		fsw:     fsw,
		ignore:  append(append([]string{}, defaultIgnore...), cfg.Ignore...),
		logger:  logger,
		pending: make(map[string]struct{}),
	}

	if err := w.addDirectories(cfg.Dir); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// Run blocks until ctx is cancelled, processing filesystem events and
// dispatching debounced callbacks.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}

			// New directories extend the recursive watch.
			if evt.Has(fsnotify.Create) {
				if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
					w.maybeAddDir(evt.Name)
				}
			}

			if !w.wantsEvent(evt.Name) {
				continue
			}

			w.mu.Lock()
			w.pending[evt.Name] = struct{}{}
			if w.timer == nil {
				w.timer = time.AfterFunc(w.cfg.Debounce, w.fire)
			} else {
				w.timer.Reset(w.cfg.Debounce)
			}
			w.mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "err", err)
		}
	}
}

// fire drains the pending set and invokes the callback.
func (w *Watcher) fire() {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if w.cfg.OnChange != nil {
		w.cfg.OnChange(paths)
	}
}

// wantsEvent reports whether a changed path should reach the callback.
func (w *Watcher) wantsEvent(path string) bool {
	if w.isIgnored(path) {
		return false
	}
	if w.cfg.Extension != "" && !strings.HasSuffix(path, w.cfg.Extension) {
		return false
	}
	return true
}

// addDirectories walks dir and registers every non-ignored directory.
func (w *Watcher) addDirectories(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.isIgnored(path) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

// maybeAddDir registers a directory created after the initial walk.
func (w *Watcher) maybeAddDir(path string) {
	if w.isIgnored(path) {
		return
	}
	if err := w.fsw.Add(path); err == nil {
		w.logger.Debug("watching new directory", "path", path)
	}
}

// isIgnored checks the path's base name against the ignore patterns.
func (w *Watcher) isIgnored(path string) bool {
	name := filepath.Base(path)
	for _, pattern := range w.ignore {
		if name == pattern {
			return true
		}
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
