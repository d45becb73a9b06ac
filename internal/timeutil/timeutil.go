// Package timeutil derives local wall-clock views from stored UTC instants.
// Every function takes the display location explicitly; nothing here reads
// configuration or mutates state.
package timeutil

import (
	"fmt"
	"time"
)

// LocalDate formats the instant's calendar date in the given location as
// "YYYY-MM-DD".
func LocalDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// LocalClock formats the instant's wall-clock time in the given location as
// "HH:MM" with zero padding.
func LocalClock(t time.Time, loc *time.Location) string {
	local := t.In(loc)
	return fmt.Sprintf("%02d:%02d", local.Hour(), local.Minute())
}

// NumericalWeekday returns the weekday in the given location numbered with
// Monday as 0 through Sunday as 6.
func NumericalWeekday(t time.Time, loc *time.Location) int {
	// time.Weekday counts Sunday as 0; shift so Monday comes first.
	return (int(t.In(loc).Weekday()) + 6) % 7
}

// WeekdayName returns the English weekday name in the given location.
func WeekdayName(t time.Time, loc *time.Location) string {
	return t.In(loc).Weekday().String()
}
