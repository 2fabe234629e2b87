// Package config loads the bot configuration from a JSON or YAML file with
// environment-variable overrides for the secrets and intervals the bot has
// historically taken from the environment.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	yaml "go.yaml.in/yaml/v3"
)

// Load reads, decodes and validates the config file at path, then applies
// environment overrides. A missing file is acceptable when the environment
// alone provides a complete configuration.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		j, format, cerr := coerceToJSONBytes(path, data)
		if cerr != nil {
			return nil, fmt.Errorf("config %s: %w", path, cerr)
		}
		dec := json.NewDecoder(bytes.NewReader(j))
		dec.DisallowUnknownFields()
		if derr := dec.Decode(&cfg); derr != nil {
			return nil, fmt.Errorf("config %s (%s): %w", path, format, derr)
		}
	case os.IsNotExist(err):
		// env-only deployment
	default:
		return nil, err
	}

	// Optional .env beside the config file (never required).
	_ = godotenv.Load(filepath.Join(filepath.Dir(path), ".env"))

	applyEnv(&cfg)
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv layers the historical env-var surface over the file config.
// Non-empty env values win.
func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("BOT_TOKEN")); v != "" {
		cfg.Telegram.Token = v
	}
	if v := strings.TrimSpace(os.Getenv("NEWS_API_KEY")); v != "" {
		cfg.News.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("GROUP_IDS")); v != "" {
		if ids := parseGroupIDs(v); len(ids) > 0 {
			cfg.Telegram.Destinations = ids
		}
	}
	if n, ok := envInt("CRYPTO_INTERVAL"); ok {
		cfg.News.CryptoIntervalMinutes = n
	}
	if n, ok := envInt("SPORTS_INTERVAL"); ok {
		cfg.News.SportsIntervalMinutes = n
	}
}

// parseGroupIDs parses a comma-separated chat id list, skipping blanks and
// malformed entries.
func parseGroupIDs(raw string) []int64 {
	parts := strings.Split(raw, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}

func envInt(key string) (int, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// coerceToJSONBytes converts YAML config to JSON bytes so we can re-use the
// strict JSON decoder (DisallowUnknownFields) for both formats.
//
// Returns (jsonBytes, format, err) where format is "json" or "yaml".
func coerceToJSONBytes(path string, data []byte) ([]byte, string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return data, "json", nil
	}

	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, "yaml", fmt.Errorf("yaml unmarshal: %w", err)
	}

	v = normalizeYAML(v)

	j, err := json.Marshal(v)
	if err != nil {
		return nil, "yaml", fmt.Errorf("yaml->json marshal: %w", err)
	}
	return j, "yaml", nil
}

// normalizeYAML ensures all map keys are strings so the result can be
// JSON-marshaled.
func normalizeYAML(in any) any {
	switch x := in.(type) {
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[fmt.Sprint(k)] = normalizeYAML(v)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[k] = normalizeYAML(v)
		}
		return m
	case []any:
		for i := range x {
			x[i] = normalizeYAML(x[i])
		}
		return x
	default:
		return in
	}
}
