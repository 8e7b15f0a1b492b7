package remembrance

import (
	"strings"
	"testing"
	"time"
)

func TestDaysSince(t *testing.T) {
	t.Parallel()
	kyiv, err := time.LoadLocation("Europe/Kyiv")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	tests := []struct {
		name  string
		start time.Time
		now   time.Time
		want  int
	}{
		{
			name:  "first day counts as one",
			start: invasionStart,
			now:   time.Date(2022, 2, 24, 9, 0, 0, 0, kyiv),
			want:  1,
		},
		{
			name:  "next day is two",
			start: invasionStart,
			now:   time.Date(2022, 2, 25, 9, 0, 0, 0, kyiv),
			want:  2,
		},
		{
			name:  "one year later",
			start: invasionStart,
			now:   time.Date(2023, 2, 24, 9, 0, 0, 0, kyiv),
			want:  366,
		},
		{
			// DST starts the last Sunday of March; the civil-date count
			// must not lose a day to the shorter calendar day.
			name:  "across DST shift",
			start: invasionStart,
			now:   time.Date(2022, 3, 28, 9, 0, 0, 0, kyiv),
			want:  33,
		},
		{
			name:  "crimea count",
			start: crimeaStart,
			now:   time.Date(2014, 2, 21, 9, 0, 0, 0, kyiv),
			want:  2,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DaysSince(tt.start, tt.now); got != tt.want {
				t.Fatalf("DaysSince() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	t.Parallel()
	kyiv, err := time.LoadLocation("Europe/Kyiv")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	now := time.Date(2022, 2, 25, 9, 0, 0, 0, kyiv)

	msg := Message(now)
	if !strings.Contains(msg, "25.02.2022") {
		t.Fatalf("message missing formatted date: %q", msg)
	}
	if !strings.Contains(msg, "2-й день") {
		t.Fatalf("message missing invasion day count: %q", msg)
	}
	if !strings.Contains(msg, "хвилина мовчання") {
		t.Fatalf("message missing commemoration line: %q", msg)
	}
}
