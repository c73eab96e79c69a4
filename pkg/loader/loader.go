// Package loader discovers RHTML template files, compiles them into
// routes, and publishes immutable snapshots.
//
// The route collection itself provides no concurrency safety, so the
// loader never mutates a published router: every load, reload, or removal
// builds a brand-new snapshot off the hot path, and Store swaps the
// current snapshot atomically. In-flight readers always see a fully
// sorted, consistent collection.
package loader

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/jeetkhinde/RHTML/pkg/router"
)

// DefaultExtension is the template file extension loaded when Config
// leaves Extension empty.
const DefaultExtension = ".rhtml"

// Template is one loaded template file.
type Template struct {
	// Path is the source file path, as handed to router.Compile.
	Path string

	// Content is the raw template source. The loader never interprets
	// it; parsing and rendering belong to the template engine.
	Content string
}

// Config configures a Loader.
type Config struct {
	// PagesDir is the root directory to walk for templates.
	PagesDir string

	// Extension selects template files (default ".rhtml").
	Extension string

	// Logger receives load/reload events. Defaults to slog.Default().
	Logger *slog.Logger
}

// Loader reads template files and builds route snapshots. All methods are
// safe for concurrent use; the loader serializes its own writers, and the
// snapshots it returns are immutable.
type Loader struct {
	pagesDir string
	ext      string
	logger   *slog.Logger

	mu    sync.Mutex
	files map[string]string // source path -> content
}

// New creates a loader for the given configuration.
func New(cfg Config) *Loader {
	ext := cfg.Extension
	if ext == "" {
		ext = DefaultExtension
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		pagesDir: cfg.PagesDir,
		ext:      ext,
		logger:   logger,
		files:    make(map[string]string),
	}
}

// LoadAll walks the pages directory, reads every template, and builds the
// first snapshot. A missing pages directory yields an empty snapshot, not
// an error, so a fresh project serves a bare 404 instead of refusing to
// start.
func (l *Loader) LoadAll() (*Snapshot, error) {
	files := make(map[string]string)

	err := filepath.WalkDir(l.pagesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == l.pagesDir {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, l.ext) {
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("read template %s: %w", path, readErr)
		}
		files[filepath.ToSlash(path)] = string(content)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", l.pagesDir, err)
	}

	l.mu.Lock()
	l.files = files
	l.mu.Unlock()

	snap, err := l.build()
	if err != nil {
		return nil, err
	}

	l.logger.Info("templates loaded", "dir", l.pagesDir, "count", snap.Count())
	return snap, nil
}

// Reload re-reads a single template file and builds a fresh snapshot. A
// file that disappeared between the change event and the read is treated
// as a removal.
func (l *Loader) Reload(path string) (*Snapshot, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l.Remove(path)
		}
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}

	l.mu.Lock()
	l.files[filepath.ToSlash(path)] = string(content)
	l.mu.Unlock()

	l.logger.Info("template reloaded", "path", path)
	return l.build()
}

// Remove drops a template from the set and builds a fresh snapshot.
func (l *Loader) Remove(path string) (*Snapshot, error) {
	l.mu.Lock()
	delete(l.files, filepath.ToSlash(path))
	l.mu.Unlock()

	l.logger.Info("template removed", "path", path)
	return l.build()
}

// build compiles the current file set into a validated, sorted snapshot.
func (l *Loader) build() (*Snapshot, error) {
	l.mu.Lock()
	files := make(map[string]string, len(l.files))
	for k, v := range l.files {
		files[k] = v
	}
	l.mu.Unlock()

	// Compile in path order so equal-priority routes get a deterministic
	// registration order regardless of map iteration.
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	routes := make([]*router.Route, 0, len(paths))
	templates := make(map[string]*Template, len(paths))
	for _, p := range paths {
		routes = append(routes, router.Compile(p, l.pagesDir))
		templates[p] = &Template{Path: p, Content: files[p]}
	}

	if err := router.Validate(routes); err != nil {
		return nil, fmt.Errorf("validate routes: %w", err)
	}

	rt := router.New()
	for _, r := range routes {
		rt.Add(r)
	}
	rt.Sort()

	return &Snapshot{router: rt, templates: templates}, nil
}
