package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	logx "newsbot/pkg/logx"
)

// Watch re-loads the config file on change (debounced against partial
// writes) and calls onReload with the fresh, validated config. Callers are
// expected to re-apply logging settings only; the scheduling surface is
// static at startup. Blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, log logx.Logger, onReload func(*Config)) error {
	if log.IsZero() {
		log = logx.Nop()
	}
	dir := filepath.Dir(path)
	file := filepath.Base(path)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}

	// debounce to avoid partial writes
	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	debounce := func() {
		timerMu.Lock()
		defer timerMu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(250*time.Millisecond, func() {
			cfg, err := Load(path)
			if err != nil {
				// A rejected reload keeps the running config.
				log.Warn("config reload rejected", logx.String("path", path), logx.Err(err))
				return
			}
			if cfg != nil {
				onReload(cfg)
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-w.Events:
			if ev.Name == filepath.Join(dir, file) {
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					debounce()
				}
			}
		case <-w.Errors:
			// keep watching
		}
	}
}
