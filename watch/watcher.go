// Package watch reruns a callback when watched files change.
//
// Editors often save by writing a temp file and renaming it over the
// original, which drops the file from an fsnotify watch. The watcher
// therefore watches the parent directories and filters events by file name.
// Bursts of events are collapsed into one run by a debounce timer.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/adaptgen/errors"
	"github.com/teranos/adaptgen/logger"
)

// ChangeCallback is called once per debounced burst of changes with the
// files that changed, sorted and deduplicated.
type ChangeCallback func(changed []string)

// Watcher watches a fixed set of files for changes
type Watcher struct {
	files          map[string]bool
	watcher        *fsnotify.Watcher
	callback       ChangeCallback
	ignore         func(path string) bool
	debouncePeriod time.Duration

	mu            sync.Mutex
	pending       map[string]bool
	debounceTimer *time.Timer
	stopped       bool
	running       sync.WaitGroup
}

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce sets the quiet period before the callback runs
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debouncePeriod = d }
}

// WithIgnore drops events for paths the predicate accepts
func WithIgnore(ignore func(path string) bool) Option {
	return func(w *Watcher) { w.ignore = ignore }
}

// New creates a watcher for files. Nothing is delivered before Run.
func New(files []string, callback ChangeCallback, opts ...Option) (*Watcher, error) {
	if len(files) == 0 {
		return nil, errors.New("no files to watch")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		files:          make(map[string]bool, len(files)),
		watcher:        fw,
		callback:       callback,
		debouncePeriod: 500 * time.Millisecond,
		pending:        make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", f)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to watch directory %s", dir)
		}
	}
	return w, nil
}

// Run delivers changes until ctx is cancelled, then stops the watcher and
// waits for a callback that is already running.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.ComponentLogger("watch").Warnw("File watcher error", logger.FieldError, err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	path, err := filepath.Abs(event.Name)
	if err != nil || !w.files[path] {
		return
	}
	if w.ignore != nil && w.ignore(path) {
		logger.ComponentLogger("watch").Debugw("File watcher ignoring change", logger.FieldFile, path)
		return
	}

	logger.ComponentLogger("watch").Debugw("File watcher detected change",
		logger.FieldFile, path,
		"op", event.Op.String())
	w.schedule(path)
}

// schedule debounces rapid file changes
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[path] = true
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	if w.stopped || len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	changed := make([]string, 0, len(w.pending))
	for path := range w.pending {
		changed = append(changed, path)
	}
	w.pending = make(map[string]bool)
	w.running.Add(1)
	w.mu.Unlock()

	defer w.running.Done()
	sort.Strings(changed)
	w.callback(changed)
}

func (w *Watcher) stop() {
	w.mu.Lock()
	w.stopped = true
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mu.Unlock()

	if err := w.watcher.Close(); err != nil {
		logger.ComponentLogger("watch").Debugw("File watcher close failed", logger.FieldError, err)
	}
	w.running.Wait()
}
