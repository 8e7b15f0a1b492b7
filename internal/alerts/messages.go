package alerts

// Outbound texts are Telegram Markdown.

const activatedText = "🚨 *Увага! Повітряна тривога у Львівській області!*\n\n" +
	"🔴 Залишайтесь у безпечному місці або негайно прямуйте до найближчого укриття.\n" +
	"❗ Дотримуйтесь правил безпеки, не ігноруйте сигнали тривоги.\n" +
	"📢 Інформацію про ситуацію уточнюйте в офіційних джерелах.\n\n" +
	"Разом вистоїмо. Слава Україні! 🇺🇦"

const clearedText = "✅ *Відбій повітряної тривоги у Львівській області!*\n\n" +
	"☀️ Наразі загроза з повітря відсутня. Ви можете повернутись до звичних справ.\n" +
	"🙏 Дякуємо всім за пильність, відповідальність та дотримання правил безпеки.\n\n" +
	"Разом до перемоги! 💙💛"

// MessageFor returns the edge-transition text for the new signal value.
func MessageFor(active bool) string {
	if active {
		return activatedText
	}
	return clearedText
}
