// Package watcher reports changes to the documents of a corpus.
package watcher

import (
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"wordfreq/internal/logging"
)

// Change is a debounced batch of modified document paths.
type Change struct {
	Paths []string
}

// Watcher watches the parent directories of a fixed file set and emits a
// Change once writes have been quiet for the debounce interval.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	files     map[string]bool
	debounce  time.Duration
	log       *slog.Logger

	changes chan Change
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// New creates a watcher for files. A non-positive debounce defaults to 200ms.
func New(files []string, debounce time.Duration, log *slog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		files:     make(map[string]bool, len(files)),
		debounce:  debounce,
		log:       logging.OrDefault(log),
		changes:   make(chan Change, 8),
		done:      make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fsWatcher.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsWatcher.Add(dir); err != nil {
			fsWatcher.Close()
			return nil, err
		}
	}
	return w, nil
}

// Changes returns the channel of debounced changes. It is closed by Close.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start begins the event loop.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.loop()
}

// Close stops watching and closes the Changes channel.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
		w.wg.Wait()
		close(w.changes)
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			path, err := filepath.Abs(ev.Name)
			if err != nil || !w.files[path] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("document changed", "path", path, "op", ev.Op.String())
			pending[path] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "error", err)

		case <-fire:
			fire = nil
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			pending = make(map[string]bool)
			sort.Strings(paths)
			select {
			case w.changes <- Change{Paths: paths}:
			case <-w.done:
				return
			}
		}
	}
}
