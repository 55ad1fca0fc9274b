package catalog

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is the quiet period before a change is reported.
const DefaultWatchDebounce = 250 * time.Millisecond

// WatchConfig configures a Watcher.
type WatchConfig struct {
	// Path is the catalog file to watch.
	Path string

	// Debounce coalesces bursts of writes into one notification.
	Debounce time.Duration

	// Logger receives watch errors. Nil disables logging.
	Logger *slog.Logger
}

// Watcher reports changes to a catalog file. Editors often replace files
// instead of writing in place, so the containing directory is watched.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	config    WatchConfig
	changes   chan struct{}
	done      chan struct{}
	stopOnce  sync.Once
	stopErr   error
}

// NewWatcher creates a watcher for config.Path.
func NewWatcher(config WatchConfig) (*Watcher, error) {
	if config.Debounce <= 0 {
		config.Debounce = DefaultWatchDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		fsWatcher: fsw,
		config:    config,
		changes:   make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching. The returned channel receives a value after each
// burst of changes; notifications are dropped while one is pending.
func (w *Watcher) Start() (<-chan struct{}, error) {
	dir := filepath.Dir(w.config.Path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}
	go w.loop()
	return w.changes, nil
}

// Stop terminates the watcher. Later calls return the first call's result.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.done)
		w.stopErr = w.fsWatcher.Close()
	})
	return w.stopErr
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.config.Debounce)
			} else {
				timer.Reset(w.config.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			if w.config.Logger != nil {
				w.config.Logger.Warn("catalog watch error", "path", w.config.Path, "error", err)
			}

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return filepath.Clean(event.Name) == filepath.Clean(w.config.Path)
}
