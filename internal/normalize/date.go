package normalize

import (
	"strings"
	"time"
)

// Layouts tried in order. Go's non-padded layouts accept padded digits too, so
// "2/1/2006" parses both "5/3/2024" and "05/03/2024".
var dayFirstLayouts = []string{
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
	"2-1-2006",
	"2/1/06",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var monthFirstLayouts = []string{
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"1-2-2006",
	"1/2/06",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses a date cell under an explicit day-first or month-first
// policy and truncates any time-of-day component. The second return value is
// false when the cell cannot be placed on a calendar.
func ParseDate(raw string, dayFirst bool) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	layouts := monthFirstLayouts
	if dayFirst {
		layouts = dayFirstLayouts
	}

	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return Day(t), true
	}
	return time.Time{}, false
}

// Day truncates a timestamp to its UTC calendar date. All record dates pass
// through here so that range filtering compares dates, not instants.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
