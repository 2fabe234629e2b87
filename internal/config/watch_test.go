package config

import (
	"context"
	"os"
	"testing"
	"time"

	logx "newsbot/pkg/logx"
)

const watchValidConfig = `
telegram:
  token: "123:abc"
  destinations: [-1001]
`

func TestWatchSkipsBrokenReloadThenAppliesFixed(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "config.yaml", watchValidConfig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads := make(chan *Config, 4)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = Watch(ctx, path, logx.Nop(), func(cfg *Config) { reloads <- cfg })
	}()
	// Let the watcher attach before the first write.
	time.Sleep(100 * time.Millisecond)

	// An invalid intermediate state must not reach onReload; the running
	// config stays in effect.
	if err := os.WriteFile(path, []byte("telegram: [broken"), 0o644); err != nil {
		t.Fatalf("write broken config: %v", err)
	}
	select {
	case cfg := <-reloads:
		t.Fatalf("broken config must not be applied: %+v", cfg)
	case <-time.After(600 * time.Millisecond):
	}

	if err := os.WriteFile(path, []byte(watchValidConfig), 0o644); err != nil {
		t.Fatalf("write fixed config: %v", err)
	}
	select {
	case cfg := <-reloads:
		if cfg.Telegram.Token != "123:abc" {
			t.Fatalf("unexpected reloaded config: %+v", cfg.Telegram)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("fixed config never applied")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop on cancel")
	}
}
