// Package app assembles the bot: configuration, logging, delivery adapter,
// sources, dedup store, formatter, dispatcher and the scheduler loop.
package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"

	"newsbot/internal/broadcast"
	"newsbot/internal/config"
	"newsbot/internal/dedup"
	"newsbot/internal/feed"
	"newsbot/internal/format"
	"newsbot/internal/sched"
	kit "newsbot/internal/transport"
	"newsbot/internal/transport/telegram"
	logx "newsbot/pkg/logx"
)

type App struct {
	cfgPath string
	cfg     *config.Config

	logs *logx.Service
	log  logx.Logger

	adapter kit.Adapter
	loop    *sched.Loop

	wg sync.WaitGroup
}

// New loads configuration and constructs every component. Configuration
// errors (missing token, empty destinations) surface here, before any
// network activity.
func New(cfgPath string) (*App, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	logs, log := logx.New(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console || !cfg.Logging.File.Enabled,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	})
	log = log.With(logx.String("comp", "app"))

	adapter, err := telegram.New(telegram.Config{Token: cfg.Telegram.Token}, logs.Logger().With(logx.String("comp", "telegram")))
	if err != nil {
		logs.Close()
		return nil, err
	}

	tick, err := config.ParseDurationOrDefault("scheduler.tick", cfg.Scheduler.Tick, sched.DefaultTick)
	if err != nil {
		logs.Close()
		return nil, err
	}

	store := dedup.NewStore(cfg.Scheduler.DedupCapacity)
	render := format.NewRenderer(cfg.Scheduler.TruncateRunes)
	disp := broadcast.New(
		broadcast.Config{RatePerSec: cfg.Scheduler.RatePerSec},
		adapter,
		logs.Logger().With(logx.String("comp", "broadcast")),
	)

	dests := make([]kit.ChatTarget, 0, len(cfg.Telegram.Destinations))
	for _, id := range cfg.Telegram.Destinations {
		dests = append(dests, kit.ChatTarget{ChatID: id})
	}

	loop := sched.NewLoop(
		sched.Config{Tick: tick},
		store, render, disp, dests,
		logs.Logger().With(logx.String("comp", "sched")),
	)

	topics, err := buildTopics(cfg)
	if err != nil {
		logs.Close()
		return nil, err
	}
	loop.Register(topics...)

	return &App{
		cfgPath: cfgPath,
		cfg:     cfg,
		logs:    logs,
		log:     log,
		adapter: adapter,
		loop:    loop,
	}, nil
}

// buildTopics binds the built-in crypto and sports topics plus any extra RSS
// topics from config. Registration order is broadcast evaluation order.
func buildTopics(cfg *config.Config) ([]sched.Topic, error) {
	topics := []sched.Topic{
		{
			Name:     "crypto",
			Source:   feed.NewCoinGecko(cfg.News.CryptoURL),
			Profile:  format.CryptoProfile(),
			Schedule: sched.Interval(time.Duration(cfg.News.CryptoIntervalMinutes) * time.Minute),
		},
		{
			Name:     "sports",
			Source:   feed.NewNewsAPI(cfg.News.SportsURL, cfg.News.APIKey),
			Profile:  format.SportsProfile(),
			Schedule: sched.Interval(time.Duration(cfg.News.SportsIntervalMinutes) * time.Minute),
		},
	}

	for _, tc := range cfg.Topics {
		schedule, err := sched.ParseSchedule(tc.Schedule)
		if err != nil {
			return nil, fmt.Errorf("topics (%s): %w", tc.Name, err)
		}
		topics = append(topics, sched.Topic{
			Name:     tc.Name,
			Source:   feed.NewRSS(tc.Name, tc.URL),
			Profile:  rssProfile(tc),
			Schedule: schedule,
		})
	}
	return topics, nil
}

func rssProfile(tc config.TopicConfig) format.Profile {
	header := strings.TrimSpace(tc.Header)
	if header == "" {
		header = "📰 " + capitalize(tc.Name) + " News Update"
	}
	fallback := strings.TrimSpace(tc.FallbackText)
	if fallback == "" {
		fallback = "Fresh " + tc.Name + " headlines are on the way. Stay tuned!"
	}
	return format.Profile{
		Topic:          tc.Name,
		Header:         header,
		FallbackText:   fallback,
		FallbackImages: tc.FallbackImages,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// Start verifies connectivity (strict: a bot that cannot identify itself
// will fail every send, so this is treated like a configuration error) and
// launches the scheduler loop plus the config watcher.
func (a *App) Start(ctx context.Context) error {
	vctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	id, err := a.adapter.Verify(vctx)
	if err != nil {
		return fmt.Errorf("connectivity check failed: %w", err)
	}

	a.log.Info("bot started",
		logx.String("username", id.Username),
		logx.Int("destinations", len(a.cfg.Telegram.Destinations)),
		logx.Int("crypto_interval_min", a.cfg.News.CryptoIntervalMinutes),
		logx.Int("sports_interval_min", a.cfg.News.SportsIntervalMinutes),
		logx.Int("extra_topics", len(a.cfg.Topics)))

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		_ = a.loop.Run(ctx)
	}()

	// Config watch re-applies logging config only; everything else is
	// static at startup.
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		_ = config.Watch(ctx, a.cfgPath, a.log, func(cfg *config.Config) {
			a.logs.Apply(logx.Config{
				Level:   cfg.Logging.Level,
				Console: cfg.Logging.Console || !cfg.Logging.File.Enabled,
				File: logx.FileConfig{
					Enabled: cfg.Logging.File.Enabled,
					Path:    cfg.Logging.File.Path,
				},
			})
			a.log.Info("logging config reloaded", logx.String("level", cfg.Logging.Level))
		})
	}()

	// Best-effort: no-op outside systemd units.
	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)

	return nil
}

// Stop waits for the loop to finish its current destination and tears down.
// The caller cancels the context passed to Start first.
func (a *App) Stop(ctx context.Context) error {
	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		a.log.Warn("shutdown grace elapsed before loop exit")
	}

	_ = a.adapter.Stop(ctx)
	for _, st := range a.loop.Snapshot() {
		a.log.Debug("topic state at shutdown", logx.String("topic", st.Name), logx.Time("last_fired", st.LastFired))
	}
	a.log.Info("bot stopped")
	return a.logs.Close()
}
