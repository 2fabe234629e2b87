package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"BOT_TOKEN", "GROUP_IDS", "NEWS_API_KEY", "CRYPTO_INTERVAL", "SPORTS_INTERVAL"} {
		t.Setenv(k, "")
	}
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "config.yaml", `
telegram:
  token: "123:abc"
  destinations: [-1001, -1002]
logging:
  level: DEBUG
  console: true
news:
  sports_interval_minutes: 60
  api_key: sk
scheduler:
  tick: 30s
  dedup_capacity: 10
topics:
  - name: tech
    url: https://example.com/feed.xml
    schedule: 45m
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.Token != "123:abc" || len(cfg.Telegram.Destinations) != 2 {
		t.Fatalf("telegram section mangled: %+v", cfg.Telegram)
	}
	if cfg.News.CryptoIntervalMinutes != defaultIntervalMinutes {
		t.Fatalf("crypto interval default not applied: %d", cfg.News.CryptoIntervalMinutes)
	}
	if cfg.News.SportsIntervalMinutes != 60 {
		t.Fatalf("sports interval not read: %d", cfg.News.SportsIntervalMinutes)
	}
	if len(cfg.Topics) != 1 || cfg.Topics[0].Name != "tech" {
		t.Fatalf("extra topics not read: %+v", cfg.Topics)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "config.json", `{
		"telegram": {"token": "123:abc", "destinations": [-1], "typo_field": 1}
	}`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected unknown-field error")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "config.yaml", `
telegram:
  token: file-token
  destinations: [-1]
`)
	t.Setenv("BOT_TOKEN", "env-token")
	t.Setenv("GROUP_IDS", "-2001, -2002,,bogus")
	t.Setenv("CRYPTO_INTERVAL", "15")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.Token != "env-token" {
		t.Fatalf("BOT_TOKEN must win over the file, got %q", cfg.Telegram.Token)
	}
	if len(cfg.Telegram.Destinations) != 2 || cfg.Telegram.Destinations[0] != -2001 {
		t.Fatalf("GROUP_IDS not parsed: %+v", cfg.Telegram.Destinations)
	}
	if cfg.News.CryptoIntervalMinutes != 15 {
		t.Fatalf("CRYPTO_INTERVAL not applied: %d", cfg.News.CryptoIntervalMinutes)
	}
}

func TestLoadEnvOnlyDeployment(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("GROUP_IDS", "-1001")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load with env-only config: %v", err)
	}
	if cfg.Telegram.Token != "123:abc" || len(cfg.Telegram.Destinations) != 1 {
		t.Fatalf("env-only config not assembled: %+v", cfg.Telegram)
	}
}

func TestValidateMissingToken(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "config.yaml", `
telegram:
  destinations: [-1]
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected missing-token error")
	}
}

func TestValidateEmptyDestinations(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "config.yaml", `
telegram:
  token: "123:abc"
  destinations: []
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected empty-destinations error")
	}
}

func TestValidateDuplicateTopic(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "config.yaml", `
telegram:
  token: "123:abc"
  destinations: [-1]
topics:
  - {name: crypto, url: "https://x", schedule: 45m}
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("extra topic must not shadow a built-in")
	}
}
