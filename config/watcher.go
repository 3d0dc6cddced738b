package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file whenever it changes on disk. The directory is watched
// rather than the file so that editors which save by renaming a temporary file are seen.
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	updates chan Config
	errs    chan error
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	logger  *slog.Logger
}

// WatcherBuilderOption is a functional option for configuring a Watcher.
type WatcherBuilderOption func(*Watcher)

// WithWatcherLogger sets the logger reload failures are written to.
//
// Parameters:
//   - logger: the destination logger
//
// Returns:
//   - WatcherBuilderOption: option function to apply
func WithWatcherLogger(logger *slog.Logger) WatcherBuilderOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher starts watching path.
//
// Parameters:
//   - path: the config file
//   - options: functional options to configure the watcher
//
// Returns:
//   - *Watcher: the running watcher; Close stops it
//   - error: error if the watch cannot be established
func NewWatcher(path string, options ...WatcherBuilderOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		fsw:     fsw,
		updates: make(chan Config, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
		logger:  slog.Default(),
	}
	for _, opt := range options {
		opt(w)
	}

	w.wg.Add(1)
	go w.watch()
	return w, nil
}

// Updates delivers each successfully reloaded config. Only the newest pending config is
// kept, so a slow reader never sees a stale one after a fresher one.
func (w *Watcher) Updates() <-chan Config {
	return w.updates
}

// Errors delivers reload and watch failures. Only the newest pending error is kept.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops the watcher. Closing twice is a no-op.
//
// Returns:
//   - error: error from releasing the underlying watch
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) watch() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				w.logger.Warn("config reload failed", "component", "Config", "path", w.path, "error", err)
				publish(w.errs, err)
				continue
			}
			w.logger.Info("config reloaded", "component", "Config", "path", w.path)
			publish(w.updates, cfg)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			publish(w.errs, err)
		}
	}
}

// publish replaces any pending value in the single-slot channel ch with v.
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
