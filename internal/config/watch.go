package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Live holds the active configuration and can follow changes to its file.
// It is safe for concurrent use.
type Live struct {
	mu   sync.RWMutex
	cfg  StarsConfig
	path string
}

// NewLive wraps cfg, loaded from path. An empty path means the embedded
// default, which never changes.
func NewLive(cfg StarsConfig, path string) *Live {
	return &Live{cfg: cfg, path: path}
}

// Current returns the latest valid configuration.
func (l *Live) Current() StarsConfig {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cfg
}

// Path returns the watched file, or "" for the embedded default.
func (l *Live) Path() string {
	return l.path
}

// Reload re-reads the file. On error the previous configuration is kept.
func (l *Live) Reload() error {
	if l.path == "" {
		return nil
	}
	cfg, err := LoadStarsFile(l.path)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.cfg = cfg
	l.mu.Unlock()
	return nil
}

// Watch reloads the configuration whenever its file is written or
// replaced, until ctx is cancelled. onChange, if set, is called after
// every reload attempt with its result.
//
// The parent directory is watched so editors that save by rename are seen.
func (l *Live) Watch(ctx context.Context, onChange func(StarsConfig, error)) error {
	if l.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: create watcher: %w", err)
	}
	target := filepath.Clean(l.path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close() //nolint:errcheck
		return fmt.Errorf("config: watch %s: %w", target, err)
	}

	go func() {
		defer watcher.Close() //nolint:errcheck
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				err := l.Reload()
				if onChange != nil {
					onChange(l.Current(), err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if onChange != nil {
					onChange(l.Current(), fmt.Errorf("config: watcher: %w", err))
				}
			}
		}
	}()
	return nil
}
