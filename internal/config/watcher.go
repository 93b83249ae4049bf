package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Live holds the configuration handed to newly created sessions. It is safe
// for concurrent use; sessions copy the value when they start.
type Live struct {
	cur atomic.Pointer[SnakeConfig]
}

// NewLive creates a Live holder seeded with cfg.
func NewLive(cfg SnakeConfig) *Live {
	l := &Live{}
	l.Set(cfg)
	return l
}

// Get returns a copy of the current configuration.
func (l *Live) Get() SnakeConfig {
	return *l.cur.Load()
}

// Set replaces the current configuration.
func (l *Live) Set(cfg SnakeConfig) {
	l.cur.Store(&cfg)
}

// Watch reloads path whenever it is written or recreated and stores the
// result in live. Invalid files are logged and the previous value is kept.
// Each adjust runs on the reloaded value before it is validated and stored.
// Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, live *Live, logger *log.Logger, adjust ...func(*SnakeConfig)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: cannot create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: cannot resolve %s: %w", path, err)
	}

	// Watch the directory: editors often replace the file instead of writing it.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("config: cannot watch %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(abs)
			if err == nil {
				for _, fn := range adjust {
					fn(&cfg)
				}
				err = cfg.Validate()
			}
			if err != nil {
				logger.Warn("Config reload failed", "path", abs, "error", err)
				continue
			}
			live.Set(cfg)
			logger.Info("Config reloaded", "path", abs,
				"grid", fmt.Sprintf("%dx%d", cfg.Grid.Width, cfg.Grid.Height),
				"base_interval_ms", cfg.Speed.BaseIntervalMS)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Config watcher error", "error", err)
		}
	}
}
