package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lborowski/cinema-tickets/internal/model"
	"github.com/lborowski/cinema-tickets/internal/schedule"
)

// ShowingRepo manages persistence for showings.  Start instants are stored
// in the starts_at DATETIME column in UTC; parseTime=true on the connection
// maps them to time.Time.
type ShowingRepo struct {
	db *sql.DB
}

// NewShowingRepo constructs a ShowingRepo with the given DB handle.
func NewShowingRepo(db *sql.DB) *ShowingRepo {
	return &ShowingRepo{db: db}
}

// DB exposes the underlying sql.DB for cross-repository transactions.
func (r *ShowingRepo) DB() *sql.DB {
	return r.db
}

// entryColumns is the select list for showing rows joined with the movie
// facts the schedule engine and the read models need.
const entryColumns = `s.uuid, s.starts_at, s.movie_id, s.hall_number, m.title, m.duration_in_minutes`

// Create inserts a showing.  The engine mints the UUID before calling.
func (r *ShowingRepo) Create(ctx context.Context, s *model.Showing) error {
	const q = `INSERT INTO showings (uuid, starts_at, movie_id, hall_number) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, s.UUID, s.When.UTC(), s.MovieID, s.HallNumber)
	return err
}

// GetByUUID retrieves a showing by its UUID, returning ErrShowingNotFound
// when no row matches.
func (r *ShowingRepo) GetByUUID(ctx context.Context, showingUUID string) (*model.Showing, error) {
	const q = `SELECT uuid, starts_at, movie_id, hall_number FROM showings WHERE uuid = ?`
	var s model.Showing
	err := r.db.QueryRowContext(ctx, q, showingUUID).Scan(&s.UUID, &s.When, &s.MovieID, &s.HallNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowingNotFound
		}
		return nil, err
	}
	s.When = s.When.UTC()
	return &s, nil
}

// ListByHallBetween returns showings in the hall whose start falls inside
// [from, to], joined with the movie title and duration the collision check
// needs.  It implements schedule.ShowingStore.
func (r *ShowingRepo) ListByHallBetween(ctx context.Context, hallNumber int64, from, to time.Time) ([]schedule.Entry, error) {
	const q = `SELECT ` + entryColumns + `
	           FROM showings s
	           JOIN movies m ON m.id = s.movie_id
	           WHERE s.hall_number = ? AND s.starts_at >= ? AND s.starts_at <= ?
	           ORDER BY s.starts_at ASC`
	rows, err := r.db.QueryContext(ctx, q, hallNumber, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ListUpcoming returns showings starting inside [from, to] across all halls,
// ordered by start time.  The public schedule uses it for the rolling
// seven-day view.
func (r *ShowingRepo) ListUpcoming(ctx context.Context, from, to time.Time) ([]schedule.Entry, error) {
	const q = `SELECT ` + entryColumns + `
	           FROM showings s
	           JOIN movies m ON m.id = s.movie_id
	           WHERE s.starts_at >= ? AND s.starts_at <= ?
	           ORDER BY s.starts_at ASC`
	rows, err := r.db.QueryContext(ctx, q, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ListByMovie returns the movie's showings starting at or after from.
func (r *ShowingRepo) ListByMovie(ctx context.Context, movieID int64, from time.Time) ([]schedule.Entry, error) {
	const q = `SELECT ` + entryColumns + `
	           FROM showings s
	           JOIN movies m ON m.id = s.movie_id
	           WHERE s.movie_id = ? AND s.starts_at >= ?
	           ORDER BY s.starts_at ASC`
	rows, err := r.db.QueryContext(ctx, q, movieID, from.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]schedule.Entry, error) {
	var result []schedule.Entry
	for rows.Next() {
		var (
			e       schedule.Entry
			minutes int
		)
		if err := rows.Scan(&e.Showing.UUID, &e.Showing.When, &e.Showing.MovieID, &e.Showing.HallNumber, &e.MovieTitle, &minutes); err != nil {
			return nil, err
		}
		e.Showing.When = e.Showing.When.UTC()
		e.Duration = time.Duration(minutes) * time.Minute
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a showing and its dependent orders inside one transaction.
func (r *ShowingRepo) Delete(ctx context.Context, showingUUID string) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM showings WHERE uuid = ? LIMIT 1`, showingUUID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrShowingNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM orders WHERE showing_uuid = ?`, showingUUID); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM showings WHERE uuid = ?`, showingUUID)
	return err
}
