package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"beziertui/internal/logging"
)

// DefaultDebounce is how long a Watcher waits after the last change before
// it reloads. Saves that truncate and then write emit several events; only
// the settled file is loaded.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads one config file when it changes. The parent directory is
// watched so editors that save by renaming a temp file are seen too.
type Watcher struct {
	Debounce time.Duration

	path string
	fw   *fsnotify.Watcher
}

// NewWatcher starts watching path. Changes made after it returns are seen by
// Run.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: watch: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watch: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", abs, err)
	}
	return &Watcher{Debounce: DefaultDebounce, path: abs, fw: fw}, nil
}

// Run calls fn with the result of Load once the file has been quiet for
// Debounce after a write or replace. It returns when ctx is done and closes
// the watcher.
func (w *Watcher) Run(ctx context.Context, fn func(Config, error)) error {
	defer w.fw.Close()
	timer := time.NewTimer(w.Debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			logging.Logger().Debug("config changed", "path", w.path, "op", ev.Op.String())
			timer.Reset(w.Debounce)
		case <-timer.C:
			fn(Load(w.path))
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			logging.Logger().Warn("config watch", "path", w.path, "err", err)
		}
	}
}

// Watch is NewWatcher followed by Run.
func Watch(ctx context.Context, path string, fn func(Config, error)) error {
	w, err := NewWatcher(path)
	if err != nil {
		return err
	}
	return w.Run(ctx, fn)
}
