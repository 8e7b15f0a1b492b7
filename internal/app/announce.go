package app

import (
	"context"

	"tryvohabot/internal/notifier"
	kit "tryvohabot/internal/transport"
	logx "tryvohabot/pkg/logx"
)

const startupText = "🇺🇦 *Шановні мешканці Червонограда та Шептицького!*\n\n" +
	"Раді повідомити, що наш Telegram-бот працює для вас цілодобово та допомагає бути в курсі важливих подій.\n" +
	"━━━━━━━━━━━━━━━━━━━━━━\n" +
	"🔔 *Основний функціонал бота:*\n" +
	"• 🛑 Оповіщення про повітряну тривогу у Львівській області\n" +
	"• 🕯️ Щоденне нагадування о 09:00 — Всеукраїнська хвилина мовчання\n" +
	"• 🚌 Команда /rozklad — розклад автобусів (у приватних повідомленнях)\n" +
	"━━━━━━━━━━━━━━━━━━━━━━\n" +
	"💡 *Порада:*\n" +
	"Напишіть боту будь-яке повідомлення у особисті, щоб отримувати актуальну інформацію.\n" +
	"━━━━━━━━━━━━━━━━━━━━━━\n" +
	"З повагою,\n" +
	"*Ваш помічник з безпеки та транспорту 💙💛*"

// announceStartup pushes the one-time boot announcement to the destination
// chat. Best-effort: a failure is logged and the app keeps starting.
func (a *App) announceStartup(ctx context.Context) {
	err := a.notif.Notify(ctx, notifier.Notification{
		Target:  kit.ChatTarget{ChatID: a.cfg.Telegram.ChatID},
		Text:    startupText,
		Options: &kit.SendOptions{ParseMode: "Markdown"},
	})
	if err != nil {
		a.log.Warn("startup announcement not sent", logx.Err(err))
	}
}
