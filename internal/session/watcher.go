package session

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/neurocron/neurocron/internal/log"
)

// Watcher observes the credential file so a logout performed in another
// terminal is noticed by a long-running process such as the dashboard.
type Watcher struct {
	fw      *fsnotify.Watcher
	path    string
	logger  *log.Logger
	removed chan struct{}
}

// NewWatcher starts watching the store's credential file. The watch is
// placed on the containing directory because saves replace the file via
// rename, which would silently detach a watch on the file itself.
func NewWatcher(store *Store, logger *log.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	w := &Watcher{
		fw:      fw,
		path:    store.Path(),
		logger:  logger.With("component", "session"),
		removed: make(chan struct{}, 1),
	}

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	go w.run()
	return w, nil
}

// Removed signals when the credential file disappears. The channel
// closes when the watcher is closed.
func (w *Watcher) Removed() <-chan struct{} {
	return w.removed
}

// Close stops the watcher and releases its channels.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

func (w *Watcher) run() {
	defer close(w.removed)

	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if event.Name != w.path {
				continue
			}
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				w.logger.Info("credential file removed externally")
				select {
				case w.removed <- struct{}{}:
				default:
				}
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("credential watch error", "error", err)
		}
	}
}
