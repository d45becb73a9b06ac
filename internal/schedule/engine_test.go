package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lborowski/cinema-tickets/internal/model"
)

// In-memory stand-ins for the repository layer.

type fakeMovies map[int64]*model.Movie

func (f fakeMovies) GetByID(_ context.Context, id int64) (*model.Movie, error) {
	m, ok := f[id]
	if !ok {
		return nil, errors.New("movie not found")
	}
	return m, nil
}

type fakeHalls map[int64]*model.Hall

func (f fakeHalls) GetByNumber(_ context.Context, number int64) (*model.Hall, error) {
	h, ok := f[number]
	if !ok {
		return nil, errors.New("hall not found")
	}
	return h, nil
}

type fakeShowings struct {
	entries []Entry
	titles  map[int64]string
	runtime map[int64]time.Duration
}

func (f *fakeShowings) ListByHallBetween(_ context.Context, hallNumber int64, from, to time.Time) ([]Entry, error) {
	var out []Entry
	for _, e := range f.entries {
		if e.Showing.HallNumber != hallNumber {
			continue
		}
		if e.Showing.When.Before(from) || e.Showing.When.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeShowings) Create(_ context.Context, s *model.Showing) error {
	f.entries = append(f.entries, Entry{
		Showing:    *s,
		MovieTitle: f.titles[s.MovieID],
		Duration:   f.runtime[s.MovieID],
	})
	return nil
}

func newTestEngine() (*Engine, *fakeShowings) {
	movies := fakeMovies{
		1: {ID: 1, Title: "Stalker", Director: "Tarkovsky", YearOfProduction: 1979, DurationInMinutes: 120},
		2: {ID: 2, Title: "Short Cut", Director: "Nobody", YearOfProduction: 2001, DurationInMinutes: 60},
		3: {ID: 3, Title: "Marathon", Director: "Nobody", YearOfProduction: 2010, DurationInMinutes: 300},
	}
	halls := fakeHalls{
		5: {Number: 5, Places: 100},
		6: {Number: 6, Places: 50},
	}
	store := &fakeShowings{
		titles:  map[int64]string{1: "Stalker", 2: "Short Cut", 3: "Marathon"},
		runtime: map[int64]time.Duration{1: 120 * time.Minute, 2: 60 * time.Minute, 3: 300 * time.Minute},
	}
	// Open around the clock so only the collision rule decides.
	hours := OpenHours{OpenHour: 0, CloseHour: 23, CloseMinute: 59}
	return NewEngine(movies, halls, store, hours, time.UTC), store
}

func TestProposeShowingCollisions(t *testing.T) {
	ctx := context.Background()
	eng, store := newTestEngine()

	// Seed showing A at 14:00 running until 16:00 in hall 5.
	if _, err := eng.ProposeShowing(ctx, 1, 5, at(14, 0)); err != nil {
		t.Fatalf("seed showing: %v", err)
	}

	cases := []struct {
		name     string
		movieID  int64
		hall     int64
		when     time.Time
		conflict bool
	}{
		{"starts inside the running showing", 2, 5, at(15, 0), true},
		{"ends inside the running showing", 2, 5, at(13, 30), true},
		{"fully encloses the running showing", 3, 5, at(13, 30), true},
		{"back to back after", 2, 5, at(16, 0), false},
		{"back to back before", 2, 5, at(13, 0), false},
		{"same slot different hall", 2, 6, at(14, 30), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := len(store.entries)
			_, err := eng.ProposeShowing(ctx, tc.movieID, tc.hall, tc.when)
			if tc.conflict {
				var ce *ConflictError
				if !errors.As(err, &ce) {
					t.Fatalf("want *ConflictError, got %v", err)
				}
				if len(store.entries) != before {
					t.Fatal("rejected showing must not be stored")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected rejection: %v", err)
			}
			if len(store.entries) != before+1 {
				t.Fatal("accepted showing must be stored")
			}
		})
	}
}

// The overlap rule is asymmetric on purpose: a new showing that starts at
// the same instant as an existing one and does not end strictly inside it
// slips past all three clauses.
func TestProposeShowingEqualStartAdmitted(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine()

	if _, err := eng.ProposeShowing(ctx, 1, 5, at(14, 0)); err != nil {
		t.Fatalf("seed showing: %v", err)
	}
	// Same start and same runtime: admitted.
	if _, err := eng.ProposeShowing(ctx, 1, 5, at(14, 0)); err != nil {
		t.Fatalf("equal-start proposal should be admitted, got %v", err)
	}
	// Same start but ending strictly inside: still a conflict.
	var ce *ConflictError
	if _, err := eng.ProposeShowing(ctx, 2, 5, at(14, 0)); !errors.As(err, &ce) {
		t.Fatalf("want *ConflictError, got %v", err)
	}
}

func TestProposeShowingStoresUTCAndMintsUUID(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine()

	warsaw, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	when := time.Date(2026, time.March, 14, 15, 0, 0, 0, warsaw)
	s, err := eng.ProposeShowing(ctx, 1, 5, when)
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	if s.UUID == "" {
		t.Fatal("expected a minted uuid")
	}
	if s.When.Location() != time.UTC {
		t.Fatalf("want UTC storage, got %v", s.When.Location())
	}
	if !s.When.Equal(when) {
		t.Fatalf("UTC conversion changed the instant: %v vs %v", s.When, when)
	}
}

func TestProposeShowingUnknownReferences(t *testing.T) {
	ctx := context.Background()
	eng, store := newTestEngine()

	if _, err := eng.ProposeShowing(ctx, 99, 5, at(14, 0)); err == nil {
		t.Fatal("expected error for unknown movie")
	}
	if _, err := eng.ProposeShowing(ctx, 1, 99, at(14, 0)); err == nil {
		t.Fatal("expected error for unknown hall")
	}
	if len(store.entries) != 0 {
		t.Fatal("nothing should be stored on lookup failure")
	}
}

func TestProposeShowingOutOfHours(t *testing.T) {
	ctx := context.Background()
	movies := fakeMovies{1: {ID: 1, Title: "Stalker", DurationInMinutes: 120, YearOfProduction: 1979}}
	halls := fakeHalls{5: {Number: 5, Places: 100}}
	store := &fakeShowings{titles: map[int64]string{1: "Stalker"}, runtime: map[int64]time.Duration{1: 120 * time.Minute}}
	eng := NewEngine(movies, halls, store, OpenHours{OpenHour: 9, CloseHour: 23}, time.UTC)

	_, err := eng.ProposeShowing(ctx, 1, 5, at(22, 30))
	var ohe *OutOfHoursError
	if !errors.As(err, &ohe) {
		t.Fatalf("want *OutOfHoursError, got %v", err)
	}
	if len(store.entries) != 0 {
		t.Fatal("rejected showing must not be stored")
	}
}
