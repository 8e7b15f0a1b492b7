// Package remembrance composes the daily minute-of-silence message.
package remembrance

import (
	"fmt"
	"time"
)

var (
	invasionStart = time.Date(2022, time.February, 24, 0, 0, 0, 0, time.UTC)
	crimeaStart   = time.Date(2014, time.February, 20, 0, 0, 0, 0, time.UTC)
)

// DaysSince counts calendar days from start's date to now's date, inclusive
// of the first day (day one is the start date itself). The count is taken on
// civil dates, so DST shifts in the local zone never skew it.
func DaysSince(start, now time.Time) int {
	a := civil(start)
	b := civil(now)
	return int(b.Sub(a)/(24*time.Hour)) + 1
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Message renders the 09:00 commemoration text for the given local time.
func Message(now time.Time) string {
	return fmt.Sprintf(
		"🕯️ %s о 09:00 — Всеукраїнська хвилина мовчання.\n\n"+
			"У цей час вшановуємо памʼять усіх громадян України — військовослужбовців та цивільних, "+
			"які трагічно загинули внаслідок збройної агресії Російської Федерації проти України.\n\n"+
			"Світла памʼять полеглим. Честь і слава Героям! 🇺🇦\n\n"+
			"📅 Сьогодні — %d-й день від початку повномасштабного вторгнення.\n"+
			"📅 Минуло %d днів з моменту початку тимчасової окупації Автономної Республіки Крим.",
		now.Format("02.01.2006"),
		DaysSince(invasionStart, now),
		DaysSince(crimeaStart, now),
	)
}
