package utils

import (
	"fmt"
	"strings"
	"time"
)

// FormatDateTime renders t in the canonical xcal date-time lexical form:
// UTC, second precision, explicit Z designator.
func FormatDateTime(t time.Time) (string, error) {
	u := t.UTC()
	if y := u.Year(); y < 1 || y > 9999 {
		return "", fmt.Errorf("timestamp year %d outside the date-time lexical range", y)
	}
	return u.Format(time.RFC3339), nil
}

// FormatDuration renders d as a canonical ISO-8601 duration (PT0S, PT15M,
// P1DT2H3M4S). The xcal duration type has whole-second resolution and no
// negative form, so anything else is rejected.
func FormatDuration(d time.Duration) (string, error) {
	if d < 0 {
		return "", fmt.Errorf("duration %s is negative", d)
	}
	if d%time.Second != 0 {
		return "", fmt.Errorf("duration %s is not a whole number of seconds", d)
	}
	secs := int64(d / time.Second)
	days := secs / 86400
	secs %= 86400
	hours := secs / 3600
	secs %= 3600
	minutes := secs / 60
	seconds := secs % 60

	var b strings.Builder
	b.WriteString("P")
	if days > 0 {
		fmt.Fprintf(&b, "%dD", days)
	}
	if hours > 0 || minutes > 0 || seconds > 0 {
		b.WriteString("T")
		if hours > 0 {
			fmt.Fprintf(&b, "%dH", hours)
		}
		if minutes > 0 {
			fmt.Fprintf(&b, "%dM", minutes)
		}
		if seconds > 0 {
			fmt.Fprintf(&b, "%dS", seconds)
		}
	}
	if b.Len() == 1 {
		return "PT0S", nil
	}
	return b.String(), nil
}
