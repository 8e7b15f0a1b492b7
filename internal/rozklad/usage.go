package rozklad

import (
	"sync"
	"time"
)

type usageEntry struct {
	day   string // local calendar date, "2006-01-02"
	count int
}

// Tracker enforces the per-user per-calendar-day command quota.
// The window is calendar-date aligned, not a rolling 24h.
type Tracker struct {
	mu     sync.Mutex
	limit  int
	byUser map[int64]*usageEntry
}

func NewTracker(limit int) *Tracker {
	if limit <= 0 {
		limit = 2
	}
	return &Tracker{limit: limit, byUser: make(map[int64]*usageEntry)}
}

// Allow evaluates and commits one attempt atomically: a new date resets the
// counter to 1 and allows; at the limit it denies; otherwise it increments
// and allows. now must already be in the bot's configured timezone.
func (t *Tracker) Allow(userID int64, now time.Time) bool {
	today := now.Format(time.DateOnly)

	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.byUser[userID]
	if !ok || e.day != today {
		t.byUser[userID] = &usageEntry{day: today, count: 1}
		return true
	}
	if e.count >= t.limit {
		return false
	}
	e.count++
	return true
}

// Prune drops entries from past days so the map doesn't grow for the process
// lifetime. Wired as a daily sweep; returns the number of entries removed.
func (t *Tracker) Prune(now time.Time) int {
	today := now.Format(time.DateOnly)

	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for id, e := range t.byUser {
		if e.day != today {
			delete(t.byUser, id)
			removed++
		}
	}
	return removed
}
