package transport

import "context"

type ChatKind string

const (
	ChatPrivate ChatKind = "private"
	ChatGroup   ChatKind = "group"
	ChatChannel ChatKind = "channel"
)

type Update struct {
	Message *Message
}

type Message struct {
	ID           int
	ChatID       int64
	ChatKind     ChatKind
	FromID       int64
	FromUsername string
	Text         string
}

// IsPrivate reports whether the message came from a one-to-one chat.
func (m *Message) IsPrivate() bool { return m != nil && m.ChatKind == ChatPrivate }

type ChatTarget struct {
	ChatID int64
}

type SendOptions struct {
	ParseMode      string
	DisablePreview bool

	// ReplyKeyboard, when non-empty, attaches a one-time reply keyboard.
	// Each inner slice is one row of button labels.
	ReplyKeyboard [][]string
}

// Adapter is the messaging transport boundary. Exactly one implementation
// (Telegram) exists today; tests use in-memory fakes.
type Adapter interface {
	Start(ctx context.Context, out chan<- Update) error
	Stop(ctx context.Context) error

	SendText(ctx context.Context, to ChatTarget, text string, opt *SendOptions) error
}
