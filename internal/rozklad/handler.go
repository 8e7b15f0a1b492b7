package rozklad

import (
	"context"
	"time"

	"tryvohabot/internal/notifier"
	kit "tryvohabot/internal/transport"
	logx "tryvohabot/pkg/logx"
)

const (
	redirectText = "ℹ️ Команда /rozklad працює лише в особистих повідомленнях.\n" +
		"Напишіть боту у приватний чат, щоб переглянути розклад."
	quotaText = "⚠️ Ви вже двічі скористались командою /rozklad сьогодні.\n" +
		"Спробуйте, будь ласка, завтра."
	chooseText    = "🚌 Оберіть напрямок:"
	rejectionText = "❌ Напрямок не розпізнано.\n" +
		"Скористайтесь командою /rozklad ще раз і оберіть кнопку з клавіатури."
)

// Sender delivers handler replies. *notifier.Service implements it.
type Sender interface {
	Notify(ctx context.Context, n notifier.Notification) error
}

// Handler implements the two-step interactive flow:
// /rozklad → quota check → direction keyboard → one free-text choice.
type Handler struct {
	log      logx.Logger
	send     Sender
	usage    *Tracker
	sessions *Sessions
	loc      *time.Location

	// now is a test seam; defaults to time.Now.
	now func() time.Time
}

func NewHandler(usage *Tracker, sessions *Sessions, send Sender, loc *time.Location, log logx.Logger) *Handler {
	if log.IsZero() {
		log = logx.Nop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		log:      log,
		send:     send,
		usage:    usage,
		sessions: sessions,
		loc:      loc,
		now:      time.Now,
	}
}

// HandleCommand processes a /rozklad invocation.
// Outside a private chat it redirects without touching quota or sessions.
func (h *Handler) HandleCommand(ctx context.Context, m *kit.Message) error {
	if !m.IsPrivate() {
		return h.reply(ctx, m.ChatID, redirectText, nil)
	}

	if !h.usage.Allow(m.FromID, h.now().In(h.loc)) {
		h.log.Debug("quota exceeded", logx.Int64("user_id", m.FromID))
		return h.reply(ctx, m.ChatID, quotaText, nil)
	}

	keyboard := make([][]string, 0, 2)
	for _, label := range Labels() {
		keyboard = append(keyboard, []string{label})
	}
	if err := h.reply(ctx, m.ChatID, chooseText, &kit.SendOptions{ReplyKeyboard: keyboard}); err != nil {
		return err
	}
	h.sessions.Arm(m.ChatID)
	return nil
}

// HandleText processes free text. Chats that never saw the menu are ignored
// entirely; an armed chat is disarmed first, then answered once: grid on a
// recognized direction, rejection otherwise. The gate never re-arms.
func (h *Handler) HandleText(ctx context.Context, m *kit.Message) error {
	if !h.sessions.Disarm(m.ChatID) {
		return nil
	}

	grid, ok := Render(m.Text)
	if !ok {
		return h.reply(ctx, m.ChatID, rejectionText, nil)
	}
	return h.reply(ctx, m.ChatID, grid, nil)
}

func (h *Handler) reply(ctx context.Context, chatID int64, text string, opt *kit.SendOptions) error {
	return h.send.Notify(ctx, notifier.Notification{
		Target:  kit.ChatTarget{ChatID: chatID},
		Text:    text,
		Options: opt,
	})
}
