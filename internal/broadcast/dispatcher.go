// Package broadcast delivers one rendered message to every configured
// destination.
//
// Delivery semantics
//
// Destinations are visited sequentially in configured order. Each
// destination's failure is logged and isolated: it never aborts delivery to
// the remaining destinations. When the message carries an image, the
// image-with-caption send is attempted first and a text-only send is the
// per-destination fallback. Sends are paced by a rate limiter because
// exceeding platform limits gets the whole batch rejected, not just slowed.
package broadcast

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"newsbot/internal/format"
	kit "newsbot/internal/transport"
	logx "newsbot/pkg/logx"
)

type Config struct {
	// RatePerSec caps destination sends per second. Default 1.
	RatePerSec int
}

type Dispatcher struct {
	cfg     Config
	adapter kit.Adapter
	log     logx.Logger
	limiter *rate.Limiter
}

func New(cfg Config, adapter kit.Adapter, log logx.Logger) *Dispatcher {
	if log.IsZero() {
		log = logx.Nop()
	}
	rps := cfg.RatePerSec
	if rps <= 0 {
		rps = 1
	}
	return &Dispatcher{
		cfg:     cfg,
		adapter: adapter,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Deliver sends msg to every destination in order and returns how many
// destinations received it (image or text-fallback both count). A cancelled
// ctx stops between destinations; the in-flight send is never aborted.
func (d *Dispatcher) Deliver(ctx context.Context, topic string, msg format.Message, destinations []kit.ChatTarget) int {
	start := time.Now()
	delivered := 0

	opt := &kit.SendOptions{ParseMode: "HTML"}

	for _, dst := range destinations {
		if err := d.limiter.Wait(ctx); err != nil {
			d.log.Warn("broadcast interrupted", logx.String("topic", topic), logx.Int("delivered", delivered), logx.Err(err))
			return delivered
		}
		if d.sendOne(ctx, topic, dst, msg, opt) {
			delivered++
		}
	}

	fields := []logx.Field{
		logx.String("topic", topic),
		logx.Int("delivered", delivered),
		logx.Int("total", len(destinations)),
		logx.Duration("dur", time.Since(start)),
	}
	if delivered < len(destinations) {
		d.log.Warn("broadcast finished with failures", fields...)
	} else {
		d.log.Info("broadcast finished", fields...)
	}
	return delivered
}

func (d *Dispatcher) sendOne(ctx context.Context, topic string, dst kit.ChatTarget, msg format.Message, opt *kit.SendOptions) bool {
	if msg.ImageURL != "" {
		if _, err := d.adapter.SendPhoto(ctx, dst, msg.ImageURL, msg.Text, opt); err == nil {
			return true
		} else {
			d.log.Debug("photo send failed, falling back to text",
				logx.String("topic", topic), logx.Int64("chat_id", dst.ChatID), logx.Err(err))
		}
	}
	if _, err := d.adapter.SendText(ctx, dst, msg.Text, opt); err != nil {
		d.log.Warn("send failed",
			logx.String("topic", topic), logx.Int64("chat_id", dst.ChatID), logx.Int("thread_id", dst.ThreadID), logx.Err(err))
		return false
	}
	return true
}
