package rozklad

import (
	"sync"
	"testing"
	"time"
)

var (
	day1 = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	day2 = time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)
)

func TestAllowDailyQuota(t *testing.T) {
	t.Parallel()
	tr := NewTracker(2)

	if !tr.Allow(1, day1) {
		t.Fatal("first attempt must pass")
	}
	if !tr.Allow(1, day1.Add(2*time.Hour)) {
		t.Fatal("second attempt must pass")
	}
	if tr.Allow(1, day1.Add(4*time.Hour)) {
		t.Fatal("third same-day attempt must be denied")
	}
	// other users are unaffected
	if !tr.Allow(2, day1) {
		t.Fatal("quota must be per-user")
	}
}

func TestAllowResetsOnNewCalendarDay(t *testing.T) {
	t.Parallel()
	tr := NewTracker(2)
	tr.Allow(1, day1)
	tr.Allow(1, day1)
	if tr.Allow(1, day1) {
		t.Fatal("limit reached")
	}

	if !tr.Allow(1, day2) {
		t.Fatal("new calendar day must reset the counter")
	}
	// reset to 1, so one more attempt remains
	if !tr.Allow(1, day2) {
		t.Fatal("second attempt after reset must pass")
	}
	if tr.Allow(1, day2) {
		t.Fatal("third attempt after reset must be denied")
	}
}

func TestAllowCalendarNotRolling(t *testing.T) {
	t.Parallel()
	tr := NewTracker(2)
	// 23:30 and 23:45 exhaust the quota...
	late := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)
	tr.Allow(1, late)
	tr.Allow(1, late.Add(15*time.Minute))
	// ...but 00:05 is a new calendar date, well inside a rolling 24h window.
	if !tr.Allow(1, late.Add(35*time.Minute)) {
		t.Fatal("quota window must align to calendar dates, not 24h")
	}
}

func TestAllowConcurrentAttempts(t *testing.T) {
	t.Parallel()
	tr := NewTracker(2)

	const attempts = 50
	var wg sync.WaitGroup
	results := make(chan bool, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- tr.Allow(1, day1)
		}()
	}
	wg.Wait()
	close(results)

	allowed := 0
	for ok := range results {
		if ok {
			allowed++
		}
	}
	if allowed != 2 {
		t.Fatalf("allowed = %d, want exactly 2", allowed)
	}
}

func TestPrune(t *testing.T) {
	t.Parallel()
	tr := NewTracker(2)
	tr.Allow(1, day1)
	tr.Allow(2, day1)
	tr.Allow(3, day2)

	if n := tr.Prune(day2); n != 2 {
		t.Fatalf("Prune removed %d, want 2", n)
	}
	// pruned users start fresh
	if !tr.Allow(1, day2) {
		t.Fatal("pruned user must be allowed again")
	}
}
