package agenda

import (
	"fmt"
	"time"
)

const isoDateLayout = "2006-01-02"

// ParseLocalDate converts a YYYY-MM-DD string into midnight of that calendar
// day in the local timezone. A plain time.Parse of the layout yields a UTC
// instant, which shifts the day for any zone west of UTC when converted back
// with local accessors; rebuilding the value from its components avoids that.
// Every scheduled-date read in the codebase goes through this function.
func ParseLocalDate(iso string) (time.Time, error) {
	parsed, err := time.Parse(isoDateLayout, iso)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD: %w", iso, err)
	}
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.Local), nil
}

// FormatLocalDate is the inverse of ParseLocalDate: the calendar day of t,
// read with local accessors, as YYYY-MM-DD.
func FormatLocalDate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
