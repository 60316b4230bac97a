package scene

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/logger"
)

// Watcher reloads a scene manifest whenever it changes on disk.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
}

// NewWatcher watches the directory containing path, so editors that replace
// the file instead of writing it in place are still seen.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	return &Watcher{path: filepath.Clean(path), watcher: fw}, nil
}

// Run blocks until ctx is cancelled, calling onLoad with every successfully
// reloaded tree. Failed reloads are logged and skipped so the caller keeps
// its current scene.
func (w *Watcher) Run(ctx context.Context, onLoad func(*Node)) error {
	log := logger.Named("scene")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			root, err := Load(w.path)
			if err != nil {
				log.Warn("scene reload failed", zap.String("path", w.path), zap.Error(err))
				continue
			}
			log.Info("scene reloaded", zap.String("path", w.path))
			onLoad(root)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("scene watcher error", zap.Error(err))
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
