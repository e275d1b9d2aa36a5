package utils

import "time"

// TruncateToDay drops the time component, keeping a calendar date in UTC.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date in UTC.
func Today() time.Time {
	return TruncateToDay(time.Now().UTC())
}
