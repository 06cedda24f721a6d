package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fluxhq/flux/internal/log"
)

// Watcher watches config.toml for changes and re-reads only its
// LocalizationConfig fields, publishing updates on Changes. Thresholds,
// schedules, and storage paths are intentionally never live-reloaded: an
// actor mid-session must not observe its check-in percentages or distraction
// rules change out from under it.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	changes   chan LocalizationConfig
	done      chan struct{}
}

// NewWatcher creates a Watcher for the config file at path.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create watcher: %w", err)
	}
	return &Watcher{
		fsWatcher: fsw,
		path:      path,
		debounce:  200 * time.Millisecond,
		changes:   make(chan LocalizationConfig, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching the config file's directory and returns a channel
// that receives the latest LocalizationConfig each time config.toml is
// rewritten.
func (w *Watcher) Start() (<-chan LocalizationConfig, error) {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", dir, err)
	}
	go w.loop()
	return w.changes, nil
}

// Stop terminates the watcher.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer

	for {
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C
		}

		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC:
			cfg, _, err := Load(w.path)
			if err != nil {
				log.ErrorErr(log.CatConfig, "reload failed, keeping prior localization", err, "path", w.path)
				continue
			}
			select {
			case w.changes <- cfg.Localization:
			default:
				// drop stale update if the reader hasn't drained the last one
				<-w.changes
				w.changes <- cfg.Localization
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatConfig, "config watcher error", err)

		case <-w.done:
			return
		}
	}
}
