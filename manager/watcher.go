package manager

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// watcher wraps fsnotify and funnels relevant file events into a single
// eviction callback. Event delivery runs on its own goroutine until
// close.
type watcher struct {
	fs     *fsnotify.Watcher
	evict  func(path string)
	done   chan struct{}
}

func newWatcher(evict func(path string)) (*watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("manager: starting watcher: %w", err)
	}
	w := &watcher{fs: fs, evict: evict, done: make(chan struct{})}
	go w.run()
	return w, nil
}

func (w *watcher) add(path string) error {
	if err := w.fs.Add(path); err != nil {
		return fmt.Errorf("manager: watching %s: %w", path, err)
	}
	return nil
}

func (w *watcher) run() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
				w.evict(event.Name)
			}
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			// Watch errors are not fatal to the cache; stale entries are
			// still correct trees, just possibly outdated.
		case <-w.done:
			return
		}
	}
}

func (w *watcher) close() error {
	close(w.done)
	return w.fs.Close()
}
