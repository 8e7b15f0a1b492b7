// Package rozklad serves the /rozklad bus departure command: a per-user
// daily quota, a two-option direction keyboard and a single-shot free-text
// gate resolving to a formatted departure grid.
package rozklad

import "strings"

// The two fixed direction labels. Keyboard buttons echo these texts back,
// so free-text matching is exact (after trimming).
const (
	DirectionOutbound = "Червоноград → Львів"
	DirectionInbound  = "Львів → Червоноград"
)

const (
	timeMarker   = "🕒"
	colSeparator = " | "
	gridColumns  = 5
)

var departures = map[string][]string{
	DirectionOutbound: {
		"06:10", "06:35", "07:00", "07:25", "07:50",
		"08:15", "08:40", "09:05", "09:30", "09:55",
		"10:20", "10:45", "11:10", "11:35", "12:00",
		"12:25", "12:50", "13:15", "13:40", "14:05",
		"14:30", "14:55", "15:20", "15:45", "16:10",
		"16:35", "17:00", "17:25", "17:50", "18:15",
		"18:40", "19:05", "19:30", "19:55", "20:20",
	},
	DirectionInbound: {
		"06:40", "07:05", "07:30", "07:55", "08:20",
		"08:45", "09:10", "09:35", "10:00", "10:25",
		"10:50", "11:15", "11:40", "12:05", "12:30",
		"12:55", "13:20", "13:45", "14:10", "14:35",
		"15:00", "15:25", "15:50", "16:15", "16:40",
		"17:05", "17:30", "17:55", "18:20", "18:45",
		"19:10", "19:35", "20:00", "20:25", "20:50",
	},
}

// Labels returns the direction labels in presentation order.
func Labels() []string {
	return []string{DirectionOutbound, DirectionInbound}
}

// Render formats the departure list for a direction as a fixed-width grid:
// five marker-prefixed times per row, rows joined by newline. ok is false
// for an unknown label.
func Render(direction string) (string, bool) {
	times, ok := departures[strings.TrimSpace(direction)]
	if !ok {
		return "", false
	}

	var b strings.Builder
	for i, t := range times {
		if i > 0 {
			if i%gridColumns == 0 {
				b.WriteString("\n")
			} else {
				b.WriteString(colSeparator)
			}
		}
		b.WriteString(timeMarker)
		b.WriteString(t)
	}
	return b.String(), true
}
