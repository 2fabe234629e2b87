package config

import (
	"fmt"
	"strings"
)

type Config struct {
	Telegram  TelegramConfig  `json:"telegram"`
	Logging   LoggingConfig   `json:"logging"`
	News      NewsConfig      `json:"news"`
	Scheduler SchedulerConfig `json:"scheduler"`

	// Topics declares extra RSS-backed topics on top of the built-in
	// crypto and sports ones.
	Topics []TopicConfig `json:"topics,omitempty"`
}

type TelegramConfig struct {
	Token string `json:"token"`

	// Destinations is the ordered broadcast target list (chat IDs).
	// Broadcast order follows this list.
	Destinations []int64 `json:"destinations"`
}

type LoggingConfig struct {
	Level   string      `json:"level"`
	Console bool        `json:"console"`
	File    LoggingFile `json:"file"`
}

type LoggingFile struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// NewsConfig covers the two built-in sources.
//
// Intervals are minutes, matching the historical deployment surface
// (CRYPTO_INTERVAL / SPORTS_INTERVAL env vars). URL fields exist for tests
// and proxies; leave them empty for the public endpoints.
type NewsConfig struct {
	CryptoIntervalMinutes int    `json:"crypto_interval_minutes,omitempty"`
	SportsIntervalMinutes int    `json:"sports_interval_minutes,omitempty"`
	CryptoURL             string `json:"crypto_url,omitempty"`
	SportsURL             string `json:"sports_url,omitempty"`

	// APIKey authenticates the sports source. Without it the sports topic
	// posts fallback content only.
	APIKey string `json:"api_key,omitempty"`
}

// SchedulerConfig tunes loop and pipeline knobs. All zero values fall back
// to defaults.
type SchedulerConfig struct {
	// Tick is a Go duration string (e.g. "30s").
	Tick string `json:"tick,omitempty"`

	DedupCapacity int `json:"dedup_capacity,omitempty"`

	// TruncateRunes is the description display budget.
	TruncateRunes int `json:"truncate_runes,omitempty"`

	// RatePerSec paces destination sends during one broadcast.
	RatePerSec int `json:"rate_per_sec,omitempty"`
}

// TopicConfig declares one extra RSS topic.
type TopicConfig struct {
	Name string `json:"name"`
	URL  string `json:"url"`

	// Schedule accepts a Go duration ("45m") or a cron expression.
	Schedule string `json:"schedule"`

	Header         string   `json:"header,omitempty"`
	FallbackText   string   `json:"fallback_text,omitempty"`
	FallbackImages []string `json:"fallback_images,omitempty"`
}

const defaultIntervalMinutes = 120

// Validate checks the startup invariants: a credential and a non-empty,
// well-formed destination list. Violations are configuration errors; the
// process must not enter the scheduling loop.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Telegram.Token) == "" {
		return fmt.Errorf("telegram.token is required (or set BOT_TOKEN)")
	}
	if len(c.Telegram.Destinations) == 0 {
		return fmt.Errorf("telegram.destinations must not be empty (or set GROUP_IDS)")
	}
	for i, id := range c.Telegram.Destinations {
		if id == 0 {
			return fmt.Errorf("telegram.destinations[%d]: chat id must be non-zero", i)
		}
	}
	seen := map[string]bool{"crypto": true, "sports": true}
	for i, tc := range c.Topics {
		name := strings.TrimSpace(tc.Name)
		if name == "" {
			return fmt.Errorf("topics[%d].name is required", i)
		}
		if seen[name] {
			return fmt.Errorf("topics[%d]: duplicate topic %q", i, name)
		}
		seen[name] = true
		if strings.TrimSpace(tc.URL) == "" {
			return fmt.Errorf("topics[%d] (%s): url is required", i, name)
		}
		if strings.TrimSpace(tc.Schedule) == "" {
			return fmt.Errorf("topics[%d] (%s): schedule is required", i, name)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.News.CryptoIntervalMinutes <= 0 {
		c.News.CryptoIntervalMinutes = defaultIntervalMinutes
	}
	if c.News.SportsIntervalMinutes <= 0 {
		c.News.SportsIntervalMinutes = defaultIntervalMinutes
	}
}
