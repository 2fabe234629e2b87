package app

import (
	"testing"

	"newsbot/internal/config"
)

func TestBuildTopicsOrderAndBindings(t *testing.T) {
	cfg := &config.Config{
		News: config.NewsConfig{CryptoIntervalMinutes: 120, SportsIntervalMinutes: 60},
		Topics: []config.TopicConfig{
			{Name: "tech", URL: "https://example.com/feed.xml", Schedule: "45m"},
		},
	}

	topics, err := buildTopics(cfg)
	if err != nil {
		t.Fatalf("buildTopics: %v", err)
	}
	if len(topics) != 3 {
		t.Fatalf("expected 3 topics, got %d", len(topics))
	}
	// Evaluation order is deterministic: built-ins first, then config order.
	for i, want := range []string{"crypto", "sports", "tech"} {
		if topics[i].Name != want {
			t.Fatalf("topic order broken: got %q at %d", topics[i].Name, i)
		}
	}
	if topics[0].Schedule.String() != "2h0m0s" {
		t.Fatalf("crypto interval not wired: %s", topics[0].Schedule.String())
	}
	if topics[1].Source.Name() != "newsapi" {
		t.Fatalf("sports source binding wrong: %s", topics[1].Source.Name())
	}
}

func TestBuildTopicsRejectsBadSchedule(t *testing.T) {
	cfg := &config.Config{
		News: config.NewsConfig{CryptoIntervalMinutes: 1, SportsIntervalMinutes: 1},
		Topics: []config.TopicConfig{
			{Name: "tech", URL: "https://x", Schedule: "not-a-schedule"},
		},
	}
	if _, err := buildTopics(cfg); err == nil {
		t.Fatalf("expected schedule parse error")
	}
}

func TestRSSProfileDefaults(t *testing.T) {
	p := rssProfile(config.TopicConfig{Name: "tech"})
	if p.Header != "📰 Tech News Update" {
		t.Fatalf("unexpected default header: %q", p.Header)
	}
	if p.FallbackText == "" {
		t.Fatalf("fallback text must never be empty")
	}
	if len(p.FallbackImages) != 0 {
		t.Fatalf("no pool configured means text-only fallback")
	}
}

func TestRSSProfileOverrides(t *testing.T) {
	p := rssProfile(config.TopicConfig{
		Name:           "tech",
		Header:         "🗞 Tech Wire",
		FallbackText:   "More soon.",
		FallbackImages: []string{"https://img/1.png"},
	})
	if p.Header != "🗞 Tech Wire" || p.FallbackText != "More soon." || len(p.FallbackImages) != 1 {
		t.Fatalf("overrides not applied: %+v", p)
	}
}
