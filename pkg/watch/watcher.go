// Package watch monitors a directory of SVG files and keeps their
// extracted translation indices current as files change on disk.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/fsnotify.v1"

	"github.com/coolbeans/svglate/pkg/extract"
)

// Watcher re-extracts translations when SVG files in a directory are
// created or modified, and drops results when files are removed.
type Watcher struct {
	dir  string
	opts extract.Options

	mu      sync.RWMutex
	results map[string]*extract.Result

	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	onChange func(event string, path string, result *extract.Result, err error)
}

// New creates a Watcher for the given directory. Start must be called
// before results are available.
func New(dir string, opts extract.Options) *Watcher {
	return &Watcher{
		dir:     dir,
		opts:    opts,
		results: make(map[string]*extract.Result),
	}
}

// SetOnChange sets a callback invoked after each file event is handled.
// event is one of "scan", "create", "modify", or "remove"; result and
// err report the extraction outcome (both nil for "remove").
func (w *Watcher) SetOnChange(fn func(event string, path string, result *extract.Result, err error)) {
	w.onChange = fn
}

// Start scans the directory once, then watches it for changes until
// Stop is called.
func (w *Watcher) Start() error {
	if err := w.Rescan(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	w.watcher = watcher
	w.stopChan = make(chan struct{})

	go w.watchLoop()

	if err := watcher.Add(w.dir); err != nil {
		w.watcher.Close()
		return fmt.Errorf("watching directory %s: %w", w.dir, err)
	}

	return nil
}

// Rescan extracts every SVG file currently in the directory, replacing
// all previously held results.
func (w *Watcher) Rescan() error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", w.dir, err)
	}

	w.mu.Lock()
	w.results = make(map[string]*extract.Result)
	w.mu.Unlock()

	for _, entry := range entries {
		if entry.IsDir() || !isSVG(entry.Name()) {
			continue
		}
		w.handleChange(filepath.Join(w.dir, entry.Name()), "scan")
	}

	return nil
}

// Result returns the latest extraction result for a path, if the file
// extracted successfully.
func (w *Watcher) Result(path string) (*extract.Result, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	result, ok := w.results[path]
	return result, ok
}

// Paths returns the watched paths with a current result, sorted.
func (w *Watcher) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	paths := make([]string, 0, len(w.results))
	for path := range w.results {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Stop stops watching. Held results remain readable.
func (w *Watcher) Stop() {
	if w.stopChan != nil {
		close(w.stopChan)
	}
	if w.watcher != nil {
		w.watcher.Close()
	}
}

// watchLoop handles file system events until stopped.
func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isSVG(event.Name) {
				continue
			}

			switch {
			case event.Op&fsnotify.Create == fsnotify.Create:
				w.handleChange(event.Name, "create")

			case event.Op&fsnotify.Write == fsnotify.Write:
				w.handleChange(event.Name, "modify")

			case event.Op&fsnotify.Remove == fsnotify.Remove:
				w.handleRemove(event.Name)

			case event.Op&fsnotify.Rename == fsnotify.Rename:
				w.handleRemove(event.Name)
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// handleChange extracts one file and records the outcome.
func (w *Watcher) handleChange(path string, event string) {
	result, err := extract.File(path, w.opts)

	w.mu.Lock()
	if err != nil {
		delete(w.results, path)
	} else {
		w.results[path] = result
	}
	w.mu.Unlock()

	if w.onChange != nil {
		w.onChange(event, path, result, err)
	}
}

// handleRemove drops a file's result.
func (w *Watcher) handleRemove(path string) {
	w.mu.Lock()
	delete(w.results, path)
	w.mu.Unlock()

	if w.onChange != nil {
		w.onChange("remove", path, nil, nil)
	}
}

// isSVG reports whether the path names an SVG file.
func isSVG(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".svg")
}
