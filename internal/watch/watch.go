// Package watch re-runs a check whenever Markdown files change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/mdrefcheck/internal/logging"
	"github.com/yaklabco/mdrefcheck/pkg/fsutil"
)

// DefaultDebounce is the quiet period after the last event before the
// handler runs.
const DefaultDebounce = 100 * time.Millisecond

// Handler receives the sorted set of files that changed during one
// debounce window. A returned error is logged and watching continues.
type Handler func(ctx context.Context, files []string) error

// Options configures a Watcher.
type Options struct {
	// Roots are the files and directories to watch. Directories are
	// watched recursively.
	Roots []string

	// Debounce overrides DefaultDebounce when positive.
	Debounce time.Duration

	// Accept reports whether a changed file should be passed to the
	// handler. Nil accepts every file.
	Accept func(path string) bool

	// SkipDir reports whether a directory should not be watched.
	SkipDir func(dir string) bool
}

// Watcher monitors a set of roots with fsnotify.
type Watcher struct {
	opts    Options
	handler Handler
	watcher *fsnotify.Watcher

	// files are individually named roots; dirs are directories watched
	// recursively. Events elsewhere are ignored.
	files   map[string]struct{}
	dirs    map[string]struct{}
	pending map[string]struct{}

	// seen skips saves that leave a file's content unchanged.
	seen *fsutil.FingerprintSet
}

// New creates a Watcher and registers every root. Close releases it.
func New(opts Options, handler Handler) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	w := &Watcher{
		opts:    opts,
		handler: handler,
		watcher: fw,
		files:   make(map[string]struct{}),
		dirs:    make(map[string]struct{}),
		pending: make(map[string]struct{}),
		seen:    fsutil.NewFingerprintSet(),
	}

	for _, root := range opts.Roots {
		if err := w.addRoot(root); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	return w, nil
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// WatchList returns the directories currently being watched.
func (w *Watcher) WatchList() []string {
	list := w.watcher.WatchList()
	sort.Strings(list)
	return list
}

// Run processes events until ctx is cancelled. It returns nil on
// cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	timer := time.NewTimer(w.opts.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(ctx, event) {
				timer.Reset(w.opts.Debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", logging.FieldError, err)

		case <-timer.C:
			files := w.drain()
			if len(files) == 0 {
				continue
			}
			logger.Debug("files changed", logging.FieldFiles, len(files))
			if err := w.handler(ctx, files); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				logger.Error("check failed", logging.FieldError, err)
			}
		}
	}
}

// handleEvent records a relevant change and reports whether the
// debounce timer should restart.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) bool {
	logging.FromContext(ctx).Debug("watch event",
		logging.FieldPath, event.Name,
		logging.FieldEvent, event.Op.String(),
	)

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !w.acceptDir(event.Name) {
				return false
			}
			if err := w.addTree(event.Name); err != nil {
				logging.FromContext(ctx).Warn("watch new directory", logging.FieldPath, event.Name, logging.FieldError, err)
			}
			return false
		}
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}

	return w.record(event.Name)
}

// record queues path if it is relevant.
func (w *Watcher) record(path string) bool {
	path = filepath.Clean(path)

	_, named := w.files[path]
	_, inTree := w.dirs[filepath.Dir(path)]
	if !named && !inTree {
		return false
	}
	if w.opts.Accept != nil && !w.opts.Accept(path) {
		return false
	}

	w.pending[path] = struct{}{}
	return true
}

// acceptDir reports whether a newly created directory joins the watch.
func (w *Watcher) acceptDir(dir string) bool {
	if _, inTree := w.dirs[filepath.Dir(filepath.Clean(dir))]; !inTree {
		return false
	}
	return w.opts.SkipDir == nil || !w.opts.SkipDir(dir)
}

// drain returns the queued files that still exist and whose content
// changed since they were last handed out, sorted.
func (w *Watcher) drain() []string {
	files := make([]string, 0, len(w.pending))
	for path := range w.pending {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if w.seen.Changed(path) {
			files = append(files, path)
		}
	}
	clear(w.pending)
	sort.Strings(files)
	return files
}

func (w *Watcher) addRoot(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("stat %s: %w", root, err)
	}

	if !info.IsDir() {
		// Editors replace files by renaming, so watch the directory.
		w.files[abs] = struct{}{}
		if err := w.watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
		}
		return nil
	}

	return w.addTree(abs)
}

// addTree watches dir and every subdirectory not rejected by SkipDir.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				return nil
			}
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != dir && w.opts.SkipDir != nil && w.opts.SkipDir(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		w.dirs[filepath.Clean(path)] = struct{}{}
		return nil
	})
}
