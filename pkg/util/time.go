package util

import "time"

// ClockOnDate is the wall clock reading of clock, to the minute, on the
// calendar day of date and in its location.
func ClockOnDate(date time.Time, clock time.Time) time.Time {
	year, month, day := date.Date()

	return time.Date(year, month, day, clock.Hour(), clock.Minute(), 0, 0, date.Location())
}
