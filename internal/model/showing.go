package model

import "time"

// Showing schedules one movie in one hall at one absolute instant.  The UUID
// is minted by the schedule engine on commit and never reused.  When is kept
// UTC-normalized; all local date/time/weekday views are derived against the
// configured display timezone, never stored.
type Showing struct {
	UUID       string    `json:"uuid"`
	When       time.Time `json:"when"`
	MovieID    int64     `json:"movie_id"`
	HallNumber int64     `json:"hall_number"`
}

// End returns the instant the showing finishes given the movie's duration.
func (s *Showing) End(movie *Movie) time.Time {
	return s.When.Add(movie.Duration())
}
