package rozklad

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"tryvohabot/internal/notifier"
	kit "tryvohabot/internal/transport"
	logx "tryvohabot/pkg/logx"
)

type captureSender struct {
	mu   sync.Mutex
	sent []notifier.Notification
}

func (c *captureSender) Notify(ctx context.Context, n notifier.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, n)
	return nil
}

func (c *captureSender) last(t *testing.T) notifier.Notification {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sent) == 0 {
		t.Fatal("no notification sent")
	}
	return c.sent[len(c.sent)-1]
}

func (c *captureSender) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

func newTestHandler(sender *captureSender) (*Handler, *Sessions, *Tracker) {
	usage := NewTracker(2)
	sessions := NewSessions()
	h := NewHandler(usage, sessions, sender, time.UTC, logx.Nop())
	h.now = func() time.Time { return time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC) }
	return h, sessions, usage
}

func privateMsg(chatID, fromID int64, text string) *kit.Message {
	return &kit.Message{ChatID: chatID, ChatKind: kit.ChatPrivate, FromID: fromID, Text: text}
}

func TestCommandOutsidePrivateChat(t *testing.T) {
	t.Parallel()
	sender := &captureSender{}
	h, sessions, usage := newTestHandler(sender)

	m := &kit.Message{ChatID: 10, ChatKind: kit.ChatGroup, FromID: 1, Text: "/rozklad"}
	if err := h.HandleCommand(context.Background(), m); err != nil {
		t.Fatalf("HandleCommand: %v", err)
	}

	if got := sender.last(t).Text; got != redirectText {
		t.Fatalf("reply = %q, want redirect notice", got)
	}
	if sessions.Armed(10) {
		t.Fatal("group invocation must not arm the chat")
	}
	// quota untouched: two private uses still available
	if !usage.Allow(1, h.now()) || !usage.Allow(1, h.now()) {
		t.Fatal("group invocation must not consume quota")
	}
}

func TestCommandPresentsMenuAndArms(t *testing.T) {
	t.Parallel()
	sender := &captureSender{}
	h, sessions, _ := newTestHandler(sender)

	if err := h.HandleCommand(context.Background(), privateMsg(10, 1, "/rozklad")); err != nil {
		t.Fatalf("HandleCommand: %v", err)
	}

	n := sender.last(t)
	if n.Text != chooseText {
		t.Fatalf("reply = %q, want menu prompt", n.Text)
	}
	if n.Options == nil || len(n.Options.ReplyKeyboard) != 2 {
		t.Fatalf("menu must carry a two-row reply keyboard: %+v", n.Options)
	}
	if n.Options.ReplyKeyboard[0][0] != DirectionOutbound || n.Options.ReplyKeyboard[1][0] != DirectionInbound {
		t.Fatalf("keyboard labels wrong: %v", n.Options.ReplyKeyboard)
	}
	if !sessions.Armed(10) {
		t.Fatal("chat must be armed after the menu")
	}
}

func TestCommandQuotaExceeded(t *testing.T) {
	t.Parallel()
	sender := &captureSender{}
	h, _, _ := newTestHandler(sender)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := h.HandleCommand(ctx, privateMsg(10, 1, "/rozklad")); err != nil {
			t.Fatalf("HandleCommand %d: %v", i, err)
		}
	}

	if sender.count() != 3 {
		t.Fatalf("replies = %d, want 3", sender.count())
	}
	if got := sender.last(t).Text; got != quotaText {
		t.Fatalf("third reply = %q, want quota notice", got)
	}
	// first two were menus
	sender.mu.Lock()
	defer sender.mu.Unlock()
	for i := 0; i < 2; i++ {
		if sender.sent[i].Text != chooseText {
			t.Fatalf("reply %d = %q, want menu", i, sender.sent[i].Text)
		}
	}
}

func TestTextMatchSendsGridOnce(t *testing.T) {
	t.Parallel()
	sender := &captureSender{}
	h, sessions, _ := newTestHandler(sender)
	ctx := context.Background()

	if err := h.HandleCommand(ctx, privateMsg(10, 1, "/rozklad")); err != nil {
		t.Fatalf("HandleCommand: %v", err)
	}
	if err := h.HandleText(ctx, privateMsg(10, 1, DirectionOutbound)); err != nil {
		t.Fatalf("HandleText: %v", err)
	}

	grid := sender.last(t).Text
	if !strings.Contains(grid, timeMarker) || len(strings.Split(grid, "\n")) != 7 {
		t.Fatalf("reply is not the departure grid: %q", grid)
	}
	if sessions.Armed(10) {
		t.Fatal("gate must close after the first free-text message")
	}

	// repeating the same text is ignored: the gate already closed
	before := sender.count()
	if err := h.HandleText(ctx, privateMsg(10, 1, DirectionOutbound)); err != nil {
		t.Fatalf("second HandleText: %v", err)
	}
	if sender.count() != before {
		t.Fatal("closed gate must not produce another reply")
	}
}

func TestTextMismatchRejectsAndCloses(t *testing.T) {
	t.Parallel()
	sender := &captureSender{}
	h, sessions, _ := newTestHandler(sender)
	ctx := context.Background()

	if err := h.HandleCommand(ctx, privateMsg(10, 1, "/rozklad")); err != nil {
		t.Fatalf("HandleCommand: %v", err)
	}
	if err := h.HandleText(ctx, privateMsg(10, 1, "кудись")); err != nil {
		t.Fatalf("HandleText: %v", err)
	}

	if got := sender.last(t).Text; got != rejectionText {
		t.Fatalf("reply = %q, want rejection notice", got)
	}
	if sessions.Armed(10) {
		t.Fatal("rejection must also close the gate")
	}
}

func TestUnarmedTextIsIgnored(t *testing.T) {
	t.Parallel()
	sender := &captureSender{}
	h, _, _ := newTestHandler(sender)

	if err := h.HandleText(context.Background(), privateMsg(10, 1, DirectionOutbound)); err != nil {
		t.Fatalf("HandleText: %v", err)
	}
	if sender.count() != 0 {
		t.Fatalf("unarmed free text produced %d replies, want 0", sender.count())
	}
}
