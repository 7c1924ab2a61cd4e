package configwatcher

import (
	"context"
	"path/filepath"
	"time"

	"quest_backend/internal/config"
	"quest_backend/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

type ConfigReloader func(cfg *config.Config)

// debounceDelay coalesces the burst of events a single save produces.
var debounceDelay = time.Second

// WatchConfig reloads config.yaml from dir after every change and hands the
// new config to reloader. Invalid files are logged and skipped. It blocks
// until ctx is done.
func WatchConfig(ctx context.Context, dir string, reloader ConfigReloader) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	// Editors often replace the file, so the directory is watched instead.
	if err := watcher.Add(absDir); err != nil {
		return err
	}
	target := filepath.Join(absDir, "config.yaml")

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				debounce = time.After(debounceDelay)
			}
		case <-debounce:
			debounce = nil
			newCfg, err := config.LoadConfig(absDir)
			if err != nil {
				logger.Log.Error("Failed to reload config", zap.Error(err))
				continue
			}
			logger.Log.Info("Config reloaded", zap.String("file", target))
			reloader(newCfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Log.Error("Config watcher error", zap.Error(err))
		}
	}
}
