package schedule

import (
	"fmt"
	"time"

	"github.com/lborowski/cinema-tickets/internal/timeutil"
)

// ConflictError reports that a proposed showing overlaps an existing showing
// in the same hall.  It names the colliding showing so staff can see exactly
// what is in the way.
type ConflictError struct {
	Colliding Entry          // the showing already on the schedule
	Location  *time.Location // display timezone used to render the message
}

func (e *ConflictError) Error() string {
	when := e.Colliding.Showing.When
	return fmt.Sprintf("%s on %s (%s %s) collides with showing that is to be added",
		e.Colliding.MovieTitle,
		timeutil.WeekdayName(when, e.Location),
		timeutil.LocalDate(when, e.Location),
		timeutil.LocalClock(when, e.Location))
}

// OutOfHoursError reports that a proposed showing starts or ends outside the
// cinema's operating window.
type OutOfHoursError struct {
	When   time.Time // local start time of the rejected showing
	Hours  OpenHours
	Reason string
}

func (e *OutOfHoursError) Error() string {
	return fmt.Sprintf("showing at %02d:%02d %s (open %02d:%02d, close %02d:%02d)",
		e.When.Hour(), e.When.Minute(), e.Reason,
		e.Hours.OpenHour, e.Hours.OpenMinute, e.Hours.CloseHour, e.Hours.CloseMinute)
}
