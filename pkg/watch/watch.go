// Package watch re-runs work when diagram definition files change.
//
// Parent directories are watched rather than the files themselves, since
// editors often save by writing a new file and renaming it over the old
// one. Bursts of events are collapsed: the callback fires once the files
// have been quiet for the configured period.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultQuiet is the quiet period used when none is given.
const DefaultQuiet = 200 * time.Millisecond

// Watcher watches a fixed set of files.
type Watcher struct {
	fsw    *fsnotify.Watcher
	files  map[string]bool
	quiet  time.Duration
	logger *log.Logger
}

// New creates a watcher for paths. A zero quiet period means DefaultQuiet.
func New(paths []string, quiet time.Duration, logger *log.Logger) (*Watcher, error) {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	if logger == nil {
		logger = log.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{fsw: fsw, files: make(map[string]bool), quiet: quiet, logger: logger}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	logger.Debug("watching files", "files", len(w.files), "dirs", len(dirs))
	return w, nil
}

// Run delivers batches of changed files to onChange until ctx is done.
// Paths are absolute and sorted. onChange runs on the Run goroutine, so
// batches never overlap. Run closes the watcher before returning.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, paths []string)) error {
	defer w.fsw.Close()

	timer := time.NewTimer(w.quiet)
	timer.Stop()
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("file changed", "path", ev.Name, "op", ev.Op.String())
			pending[filepath.Clean(ev.Name)] = true
			timer.Reset(w.quiet)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			slices.Sort(paths)
			clear(pending)
			onChange(ctx, paths)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// Close stops watching without running.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return w.files[filepath.Clean(ev.Name)]
}
