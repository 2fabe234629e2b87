package transport

import "context"

// ChatTarget identifies one delivery destination (chat, with an optional
// forum topic thread).
type ChatTarget struct {
	ChatID   int64
	ThreadID int
}

type SendOptions struct {
	ParseMode      string
	DisablePreview bool
}

type MessageRef struct {
	ChatID    int64
	ThreadID  int
	MessageID int
}

// Identity describes the authenticated bot account, as reported by the
// platform during the connectivity check.
type Identity struct {
	ID       int64
	Username string
}

// Adapter is the outbound delivery capability.
//
// Implementations must honor ctx on every call and never block indefinitely.
type Adapter interface {
	// Verify confirms credentials/connectivity and returns the bot identity.
	Verify(ctx context.Context) (Identity, error)

	SendText(ctx context.Context, to ChatTarget, text string, opt *SendOptions) (MessageRef, error)

	// SendPhoto sends an image by URL with an optional caption.
	SendPhoto(ctx context.Context, to ChatTarget, photoURL, caption string, opt *SendOptions) (MessageRef, error)

	Stop(ctx context.Context) error
}
