package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"brightd/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file whenever it changes on disk and hands the
// validated result to a callback. Invalid edits are logged, passed to the
// error callback if one is set, and skipped.
type Watcher struct {
	path      string
	onReload  func(*Config)
	onError   func(error)
	fsWatcher *fsnotify.Watcher

	mutex    sync.Mutex
	running  bool
	stopChan chan struct{}
	done     chan struct{}
}

// NewWatcher creates a watcher for path. The parent directory is watched so
// that editors which replace the file atomically are handled.
func NewWatcher(path string, onReload func(*Config)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}
	return &Watcher{
		path:      filepath.Clean(path),
		onReload:  onReload,
		fsWatcher: fsWatcher,
	}, nil
}

// OnError sets a callback for rejected edits and watch failures. It must be
// called before Start.
func (w *Watcher) OnError(fn func(error)) {
	w.onError = fn
}

// Start begins processing file events in a goroutine.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})

	go w.loop(w.stopChan, w.done)
	log.LogWithFields(log.F("path", w.path)).Debug("Watching config file")
	return nil
}

func (w *Watcher) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("path", w.path)).WithError(err).Warn("Config watcher error")
			w.fail(err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadConfigFile(w.path)
	if err != nil {
		log.LogWithError(err).Warn("Ignoring invalid config change")
		w.fail(err)
		return
	}
	log.LogWithFields(log.F("path", w.path)).Info("Config reloaded")
	if w.onReload != nil {
		w.onReload(cfg)
	}
}

func (w *Watcher) fail(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}

// Stop ends event processing and releases the fsnotify watcher.
func (w *Watcher) Stop() error {
	w.mutex.Lock()
	if !w.running {
		w.mutex.Unlock()
		return w.fsWatcher.Close()
	}
	w.running = false
	close(w.stopChan)
	done := w.done
	w.mutex.Unlock()

	<-done
	return w.fsWatcher.Close()
}
