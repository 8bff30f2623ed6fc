package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce swallows the burst of events a single editor save produces.
const reloadDebounce = 100 * time.Millisecond

// Reload is one result of re-reading the watched file.
type Reload struct {
	Config Config
	Err    error
}

// Watcher re-reads a config file whenever it changes on disk.
// The directory is watched rather than the file so that editors which save
// by renaming a temp file are still seen.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	updates chan Reload
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching path. The path must name a file; embedded
// configurations have nothing to watch.
func Watch(path string) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("config: nothing to watch for the embedded default")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: cannot resolve %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: cannot create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("config: cannot watch %s: %w", path, err)
	}

	w := &Watcher{
		watcher: fw,
		path:    abs,
		updates: make(chan Reload, 4),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Updates delivers a Reload for every settled change. It is closed by Close.
func (w *Watcher) Updates() <-chan Reload {
	return w.updates
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.updates)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
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
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			cfg, err := LoadFile(w.path)
			w.send(Reload{Config: cfg, Err: err})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(Reload{Err: fmt.Errorf("config: watch %s: %w", w.path, err)})

		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) send(r Reload) {
	select {
	case w.updates <- r:
	case <-w.closeCh:
	}
}
