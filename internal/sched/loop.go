// Package sched owns per-topic scheduling state and the tick loop that
// drives fetch, dedup, format and dispatch for every due topic.
package sched

import (
	"context"
	"fmt"
	"sync"
	"time"

	"newsbot/internal/broadcast"
	"newsbot/internal/dedup"
	"newsbot/internal/feed"
	"newsbot/internal/format"
	kit "newsbot/internal/transport"
	logx "newsbot/pkg/logx"
)

const (
	// DefaultTick is the loop evaluation period.
	DefaultTick = 30 * time.Second
	// DefaultPanicBackoff pauses the loop after a recovered topic panic so a
	// persistently-broken source can't spin the loop hot.
	DefaultPanicBackoff = 10 * time.Second
)

type Config struct {
	Tick         time.Duration
	PanicBackoff time.Duration
}

// Loop evaluates every topic on a fixed tick and runs due topics to
// completion, sequentially, in registration order. Topic state is mutated by
// the loop goroutine only.
type Loop struct {
	cfg    Config
	store  *dedup.Store
	render *format.Renderer
	disp   *broadcast.Dispatcher
	dests  []kit.ChatTarget
	log    logx.Logger

	now func() time.Time

	mu     sync.Mutex
	topics []*topicState
}

func NewLoop(cfg Config, store *dedup.Store, render *format.Renderer, disp *broadcast.Dispatcher, dests []kit.ChatTarget, log logx.Logger) *Loop {
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultTick
	}
	if cfg.PanicBackoff <= 0 {
		cfg.PanicBackoff = DefaultPanicBackoff
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Loop{
		cfg:    cfg,
		store:  store,
		render: render,
		disp:   disp,
		dests:  dests,
		log:    log,
		now:    time.Now,
	}
}

// Register adds topics in evaluation order. Not safe after Run has started.
func (l *Loop) Register(topics ...Topic) {
	for _, t := range topics {
		l.topics = append(l.topics, &topicState{topic: t})
	}
}

// Run drives the loop until ctx is cancelled. The first evaluation happens
// immediately, so every topic fires once at startup before settling into its
// own cadence.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info("scheduler loop started",
		logx.Duration("tick", l.cfg.Tick),
		logx.Int("topics", len(l.topics)),
		logx.Int("destinations", len(l.dests)))

	ticker := time.NewTicker(l.cfg.Tick)
	defer ticker.Stop()

	for {
		l.evaluate(ctx)

		select {
		case <-ctx.Done():
			l.log.Info("scheduler loop stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// evaluate runs every due topic to completion. A panic inside one topic is
// recovered and followed by a backoff pause; the loop itself never dies.
func (l *Loop) evaluate(ctx context.Context) {
	for _, st := range l.topics {
		if ctx.Err() != nil {
			return
		}
		if !st.topic.Schedule.Due(st.lastFired, l.now()) {
			continue
		}
		if err := l.runTopic(ctx, st); err != nil {
			l.log.Error("topic cycle panicked", logx.String("topic", st.topic.Name), logx.Err(err))
			l.pause(ctx, l.cfg.PanicBackoff)
		}
	}
}

// runTopic executes one full cycle: fetch -> dedup scan -> format ->
// dispatch. It returns an error only for a recovered panic; ordinary
// failures resolve to fallback content.
func (l *Loop) runTopic(ctx context.Context, st *topicState) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			l.log.Error("recovered panic", logx.String("topic", st.topic.Name), logx.Stack(logx.StackTrace(3, 16)))
		}
	}()

	topic := st.topic
	article := l.selectArticle(ctx, topic)

	msg := l.render.Render(topic.Profile, article)
	delivered := l.disp.Deliver(ctx, topic.Name, msg, l.dests)

	// lastFired advances even when zero destinations were reached: a down
	// platform waits out a full interval instead of hot-retrying.
	l.mu.Lock()
	st.lastFired = l.now()
	l.mu.Unlock()

	l.log.Info("topic cycle complete",
		logx.String("topic", topic.Name),
		logx.Bool("fresh", article != nil),
		logx.Int("delivered", delivered),
		logx.Int("destinations", len(l.dests)))
	return nil
}

// selectArticle scans candidates in source order and picks the first whose
// fingerprint hasn't been seen, recording it. Duplicates are skipped and not
// re-recorded. Errors, empty lists and all-duplicate lists all resolve to
// nil, which the formatter turns into fallback content.
func (l *Loop) selectArticle(ctx context.Context, topic Topic) *feed.Article {
	candidates, err := topic.Source.Candidates(ctx)
	if err != nil {
		l.log.Warn("fetch failed", logx.String("topic", topic.Name), logx.String("source", topic.Source.Name()), logx.Err(err))
		return nil
	}
	for i := range candidates {
		fp := candidates[i].Fingerprint()
		if l.store.IsDuplicate(topic.Name, fp) {
			continue
		}
		l.store.Record(topic.Name, fp)
		return &candidates[i]
	}
	if len(candidates) > 0 {
		l.log.Debug("all candidates already posted", logx.String("topic", topic.Name), logx.Int("candidates", len(candidates)))
	}
	return nil
}

// Snapshot returns per-topic scheduling state for diagnostics.
func (l *Loop) Snapshot() []TopicStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]TopicStatus, 0, len(l.topics))
	for _, st := range l.topics {
		out = append(out, TopicStatus{
			Name:      st.topic.Name,
			Schedule:  st.topic.Schedule.String(),
			LastFired: st.lastFired,
		})
	}
	return out
}

func (l *Loop) pause(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
