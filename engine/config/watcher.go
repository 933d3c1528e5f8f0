package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/flycam/engine/core"
)

// DefaultDebounce collapses the burst of events editors emit for one save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk. Valid configs
// are published on Updates, load failures on Errors. Both channels are
// buffered by one and drop stale values, so the render loop can drain them
// without blocking once per frame.
type Watcher struct {
	path     string
	debounce time.Duration

	fsnotify *fsnotify.Watcher
	updates  chan *Config
	errors   chan error
	done     chan struct{}

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewWatcher starts watching the directory holding path. The directory is
// watched rather than the file so atomic-rename saves are seen too.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		path:     abs,
		debounce: debounce,
		fsnotify: fsWatch,
		updates:  make(chan *Config, 1),
		errors:   make(chan error, 1),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.start()
	core.LogDebug("watching config file %s", abs)
	return w, nil
}

func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watch goroutine and closes both channels.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.wg.Wait()
		err = w.fsnotify.Close()
		close(w.updates)
		close(w.errors)
	})
	return err
}

func (w *Watcher) start() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
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

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())
			publish(w.errors, err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		// the file may be mid-rename; the next event retries
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		core.LogWarn("config reload rejected: %s", err)
		publish(w.errors, err)
		return
	}
	core.LogInfo("config reloaded from %s", w.path)
	publish(w.updates, cfg)
}

// publish replaces any unread value so the channel always holds the latest.
func publish[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
