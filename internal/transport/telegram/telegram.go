// Package telegram implements the transport.Adapter delivery capability on
// top of telebot.
package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	kit "newsbot/internal/transport"
	logx "newsbot/pkg/logx"
)

type Config struct {
	Token string
	// URLTimeout bounds one Telegram API call.
	URLTimeout time.Duration
}

type Adapter struct {
	cfg Config
	log logx.Logger

	bot *tele.Bot
}

func New(cfg Config, log logx.Logger) (*Adapter, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("telegram token is empty")
	}
	timeout := cfg.URLTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	// Offline keeps the constructor network-free; identity is checked
	// explicitly via Verify() during startup.
	b, err := tele.NewBot(tele.Settings{
		Token:   cfg.Token,
		Offline: true,
		Client:  newHTTPClient(timeout),
	})
	if err != nil {
		return nil, err
	}
	return &Adapter{cfg: cfg, log: log, bot: b}, nil
}

func (a *Adapter) Verify(ctx context.Context) (kit.Identity, error) {
	if err := ctxErr(ctx); err != nil {
		return kit.Identity{}, err
	}
	data, err := a.bot.Raw("getMe", nil)
	if err != nil {
		return kit.Identity{}, err
	}
	var resp struct {
		Result struct {
			ID       int64  `json:"id"`
			Username string `json:"username"`
		} `json:"result"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return kit.Identity{}, err
	}
	id := kit.Identity{ID: resp.Result.ID, Username: resp.Result.Username}
	a.log.Debug("identity verified", logx.Int64("id", id.ID), logx.String("username", id.Username))
	return id, nil
}

func (a *Adapter) SendText(ctx context.Context, to kit.ChatTarget, text string, opt *kit.SendOptions) (kit.MessageRef, error) {
	if err := ctxErr(ctx); err != nil {
		return kit.MessageRef{}, err
	}
	chat := &tele.Chat{ID: to.ChatID}
	msg, err := a.bot.Send(chat, text, sendOptions(to, opt))
	if err != nil {
		return kit.MessageRef{}, err
	}
	return kit.MessageRef{ChatID: to.ChatID, ThreadID: to.ThreadID, MessageID: msg.ID}, nil
}

func (a *Adapter) SendPhoto(ctx context.Context, to kit.ChatTarget, photoURL, caption string, opt *kit.SendOptions) (kit.MessageRef, error) {
	if err := ctxErr(ctx); err != nil {
		return kit.MessageRef{}, err
	}
	chat := &tele.Chat{ID: to.ChatID}
	photo := &tele.Photo{File: tele.FromURL(photoURL), Caption: caption}
	msg, err := a.bot.Send(chat, photo, sendOptions(to, opt))
	if err != nil {
		return kit.MessageRef{}, err
	}
	return kit.MessageRef{ChatID: to.ChatID, ThreadID: to.ThreadID, MessageID: msg.ID}, nil
}

func (a *Adapter) Stop(ctx context.Context) error {
	// No long-poll loop to tear down; the adapter is outbound-only.
	return nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// ctxErr reports a cancelled ctx before the API call is started. telebot's
// Send doesn't take a context; the HTTP client timeout bounds the in-flight
// call instead.
func ctxErr(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func sendOptions(to kit.ChatTarget, opt *kit.SendOptions) *tele.SendOptions {
	if opt == nil {
		opt = &kit.SendOptions{}
	}
	return &tele.SendOptions{
		ParseMode:             opt.ParseMode,
		DisableWebPagePreview: opt.DisablePreview,
		ThreadID:              to.ThreadID,
	}
}
