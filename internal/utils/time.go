package utils

import (
	"time"
)

const layoutDateTime = "2006-01-02 15:04"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM" in local timezone, or "-" for the zero time.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(time.Local).Format(layoutDateTime)
}
