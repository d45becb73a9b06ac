// Package schedule implements the showing-scheduling core: it decides whether
// a proposed showing (movie + hall + start time) is admissible given the
// cinema's open hours and every other showing already scheduled in the same
// hall, and commits admissible showings to the store.
package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lborowski/cinema-tickets/internal/model"
)

// MovieCatalog resolves movie references.  Implementations return
// repository.ErrMovieNotFound (or a wrapped equivalent) for unknown IDs.
type MovieCatalog interface {
	GetByID(ctx context.Context, id int64) (*model.Movie, error)
}

// HallCatalog resolves hall references.
type HallCatalog interface {
	GetByNumber(ctx context.Context, number int64) (*model.Hall, error)
}

// Entry is a scheduled showing joined with the movie facts the collision
// check needs.  Stores return it so the engine never chases movie references
// one by one.
type Entry struct {
	Showing    model.Showing
	MovieTitle string
	Duration   time.Duration
}

// ShowingStore persists showings.  ListByHallBetween is the cheap ±1 day
// pre-filter around a proposed start; the engine's interval test on the
// returned entries is authoritative.
type ShowingStore interface {
	ListByHallBetween(ctx context.Context, hallNumber int64, from, to time.Time) ([]Entry, error)
	Create(ctx context.Context, s *model.Showing) error
}

// Engine validates and commits showings.  Proposals for the same hall are
// serialized through a per-hall critical section so the collision scan and
// the insert are atomic with respect to concurrent proposals; without it two
// staff members could commit overlapping showings simultaneously.
type Engine struct {
	movies   MovieCatalog
	halls    HallCatalog
	showings ShowingStore
	hours    OpenHours
	loc      *time.Location

	mu        sync.Mutex
	hallLocks map[int64]*sync.Mutex
}

// NewEngine constructs an Engine.  loc is the display timezone used both for
// the open-hours evaluation and for rendering rejection messages.
func NewEngine(movies MovieCatalog, halls HallCatalog, showings ShowingStore, hours OpenHours, loc *time.Location) *Engine {
	if movies == nil || halls == nil || showings == nil {
		panic("nil dependency passed to NewEngine")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{
		movies:    movies,
		halls:     halls,
		showings:  showings,
		hours:     hours,
		loc:       loc,
		hallLocks: make(map[int64]*sync.Mutex),
	}
}

// hallLock returns the mutex guarding one hall's schedule, creating it on
// first use.
func (e *Engine) hallLock(hallNumber int64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.hallLocks[hallNumber]
	if !ok {
		l = &sync.Mutex{}
		e.hallLocks[hallNumber] = l
	}
	return l
}

// ProposeShowing validates a proposed showing and commits it when admissible.
// The collision check runs first, then the open-hours check; either may
// reject.  On success the returned showing carries a freshly minted UUID and
// is immediately visible to subsequent collision checks.
//
// Rejections are typed: *ConflictError names the colliding showing,
// *OutOfHoursError states the violated bound, and catalog lookups pass
// through the store's not-found errors.
func (e *Engine) ProposeShowing(ctx context.Context, movieID, hallNumber int64, when time.Time) (*model.Showing, error) {
	movie, err := e.movies.GetByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	hall, err := e.halls.GetByNumber(ctx, hallNumber)
	if err != nil {
		return nil, err
	}

	lock := e.hallLock(hall.Number)
	lock.Lock()
	defer lock.Unlock()

	if err := e.checkCollisions(ctx, hall.Number, when, movie.Duration()); err != nil {
		return nil, err
	}
	if err := e.hours.Check(when, movie.Duration(), e.loc); err != nil {
		return nil, err
	}

	s := &model.Showing{
		UUID:       uuid.NewString(),
		When:       when.UTC(),
		MovieID:    movie.ID,
		HallNumber: hall.Number,
	}
	if err := e.showings.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// checkCollisions applies the historical three-clause overlap rule against
// every showing in the hall whose start falls within a day of the proposal.
// The ±1 day window is sufficient because a movie never runs longer than 600
// minutes.  The rule deliberately has only these three clauses; boundary
// touching (one showing ending exactly when another starts) is allowed.
func (e *Engine) checkCollisions(ctx context.Context, hallNumber int64, when time.Time, duration time.Duration) error {
	from := when.Add(-24 * time.Hour)
	to := when.Add(24 * time.Hour)
	candidates, err := e.showings.ListByHallBetween(ctx, hallNumber, from, to)
	if err != nil {
		return err
	}

	newStart := when
	newEnd := when.Add(duration)
	for _, existing := range candidates {
		existingStart := existing.Showing.When
		existingEnd := existingStart.Add(existing.Duration)

		if (existingStart.Before(newStart) && newStart.Before(existingEnd)) ||
			(existingStart.Before(newEnd) && newEnd.Before(existingEnd)) ||
			(newStart.Before(existingStart) && newEnd.After(existingEnd)) {
			return &ConflictError{Colliding: existing, Location: e.loc}
		}
	}
	return nil
}

// Hours exposes the configured operating window for read-model responses.
func (e *Engine) Hours() OpenHours {
	return e.hours
}

// Location exposes the display timezone the engine renders local views with.
func (e *Engine) Location() *time.Location {
	return e.loc
}
