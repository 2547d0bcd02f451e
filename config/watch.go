package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk
// Valid reloads arrive on Configs, load or watch failures on Errors
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	Configs chan *Config
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches the directory holding path so editor rename-saves are seen
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		path:    abs,
		Configs: make(chan *Config, 4),
		Errors:  make(chan error, 4),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher and closes both channels
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Configs)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	// Trailing debounce: reload once writes settle
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			cfg, err := Load(w.path)
			if err != nil {
				w.send(nil, err)
				continue
			}
			w.send(cfg, nil)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(nil, err)
		case <-w.closeCh:
			return
		}
	}
}

// send drops the value when the consumer lags
func (w *Watcher) send(cfg *Config, err error) {
	if err != nil {
		select {
		case w.Errors <- err:
		default:
		}
		return
	}
	select {
	case w.Configs <- cfg:
	default:
	}
}
