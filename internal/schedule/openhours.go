package schedule

import "time"

// OpenHours is the cinema's daily operating window as configured wall-clock
// hours and minutes.  The closing time may be numerically before the opening
// time, which means the cinema closes after midnight (open 09:00, close 03:00
// closes at 03:00 the next calendar day).
type OpenHours struct {
	OpenHour    int
	OpenMinute  int
	CloseHour   int
	CloseMinute int
}

// Check validates that a showing starting at `when` and running for
// `duration` fits entirely inside the operating window, evaluated against
// the showing's local calendar date in `loc`.  It returns an *OutOfHoursError
// naming the violated bound, or nil when the showing fits.
func (h OpenHours) Check(when time.Time, duration time.Duration, loc *time.Location) error {
	local := when.In(loc)
	y, m, d := local.Date()
	opening := time.Date(y, m, d, h.OpenHour, h.OpenMinute, 0, 0, loc)
	closing := time.Date(y, m, d, h.CloseHour, h.CloseMinute, 0, 0, loc)

	if closing.Before(opening) {
		// The window crosses midnight: starts during [closing, opening) of the
		// local day are the only invalid ones.
		if !local.Before(closing) && local.Before(opening) {
			return &OutOfHoursError{When: local, Hours: h, Reason: "starts while the cinema is closed"}
		}
	} else {
		if local.Before(opening) {
			return &OutOfHoursError{When: local, Hours: h, Reason: "starts before opening"}
		}
		if !local.Before(closing) {
			return &OutOfHoursError{When: local, Hours: h, Reason: "starts at or after closing"}
		}
	}

	// The start is inside the window; now make sure the showing ends by the
	// closing instant.  When the closing wall-clock lands before the start it
	// belongs to the next calendar day.
	if closing.Before(local) {
		closing = closing.AddDate(0, 0, 1)
	}
	if closing.Before(local.Add(duration)) {
		return &OutOfHoursError{When: local, Hours: h, Reason: "ends after closing"}
	}
	return nil
}
