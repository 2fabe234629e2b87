// Package format renders articles (or fallback content) into Telegram HTML
// messages.
package format

import (
	"math/rand"
	"time"

	"newsbot/internal/feed"
	"newsbot/pkg/tghtml"
)

// DefaultBudget is the display budget for descriptions, in runes.
const DefaultBudget = 280

// Profile carries the per-topic cosmetic surface: header line, fallback text
// and the fallback image pool.
type Profile struct {
	Topic          string
	Header         string
	FallbackText   string
	FallbackImages []string
}

// Message is rendered output ready for dispatch.
type Message struct {
	Text     string // HTML parse mode
	ImageURL string // empty means text-only
}

type Renderer struct {
	budget int
	now    func() time.Time
	pick   func(n int) int // uniform in [0,n)
}

func NewRenderer(budget int) *Renderer {
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &Renderer{
		budget: budget,
		now:    time.Now,
		pick:   rand.Intn,
	}
}

// Render produces the message for one cycle. A nil article yields the topic's
// fallback message with an optional pooled image.
func (r *Renderer) Render(p Profile, a *feed.Article) Message {
	if a == nil {
		return r.fallback(p)
	}

	parts := []tghtml.H{
		tghtml.Esc(p.Header),
		tghtml.B(a.Title),
	}
	if a.Description != "" {
		parts = append(parts, tghtml.Esc(tghtml.TruncRunes(a.Description, r.budget)))
	}
	if a.URL != "" {
		parts = append(parts, "📖 "+tghtml.Link("Read Full Article", a.URL))
	}
	parts = append(parts, r.footer())

	return Message{
		Text:     tghtml.JoinH("\n\n", parts...).String(),
		ImageURL: a.ImageURL,
	}
}

func (r *Renderer) fallback(p Profile) Message {
	text := tghtml.JoinH("\n\n",
		tghtml.Esc(p.Header),
		tghtml.Esc(p.FallbackText),
		r.footer(),
	).String()

	img := ""
	if n := len(p.FallbackImages); n > 0 {
		img = p.FallbackImages[r.pick(n)]
	}
	return Message{Text: text, ImageURL: img}
}

func (r *Renderer) footer() tghtml.H {
	return tghtml.Esc("⏰ " + r.now().UTC().Format("2006-01-02 15:04:05") + " UTC")
}
