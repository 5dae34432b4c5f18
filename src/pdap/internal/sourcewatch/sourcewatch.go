// Package sourcewatch reports on-disk changes to the source files a debug session has loaded.
package sourcewatch

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const _debounceTimeout = 50 * time.Millisecond

var errClosed = errors.New("source watcher is closed")

// Watcher tracks individual files. Editors commonly replace files by rename, so the parent
// directory is watched and events are filtered down to tracked paths.
type Watcher interface {
	// Watch starts tracking path. Tracking the same path again is a no-op.
	Watch(path string) error
	Close() error
}

type watcher struct {
	logger   *zap.SugaredLogger
	fsw      *fsnotify.Watcher
	onChange func(path string)

	mu     sync.Mutex
	files  map[string]struct{}
	dirs   map[string]struct{}
	timers map[string]*time.Timer
	closed bool

	closer chan struct{}
	done   chan struct{}
}

// New starts a Watcher that calls onChange, debounced per file, after a tracked file is written or recreated.
func New(logger *zap.SugaredLogger, onChange func(path string)) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fs watcher for sources: %w", err)
	}

	w := &watcher{
		logger:   logger,
		fsw:      fsw,
		onChange: onChange,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
		timers:   make(map[string]*time.Timer),
		closer:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.handleChanges()
	return w, nil
}

func (w *watcher) Watch(path string) error {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return errClosed
	}
	if _, ok := w.files[path]; ok {
		return nil
	}
	if _, ok := w.dirs[dir]; !ok {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watching %q: %w", dir, err)
		}
		w.dirs[dir] = struct{}{}
	}
	w.files[path] = struct{}{}
	return nil
}

func (w *watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for _, timer := range w.timers {
		timer.Stop()
	}
	w.timers = make(map[string]*time.Timer)
	w.mu.Unlock()

	close(w.closer)
	<-w.done
	return w.fsw.Close()
}

func (w *watcher) handleChanges() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			w.handleDebounce(filepath.Clean(event.Name))
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warnf("Failure in source change watcher: %v", err)
		case <-w.closer:
			return
		}
	}
}

func (w *watcher) handleDebounce(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, tracked := w.files[path]; !tracked || w.closed {
		return
	}

	if timer, exists := w.timers[path]; exists {
		timer.Stop()
	}
	w.timers[path] = time.AfterFunc(_debounceTimeout, func() {
		w.mu.Lock()
		delete(w.timers, path)
		closed := w.closed
		w.mu.Unlock()

		if !closed {
			w.logger.Debugw("source changed", "path", path)
			w.onChange(path)
		}
	})
}
