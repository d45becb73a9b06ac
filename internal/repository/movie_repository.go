package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lborowski/cinema-tickets/internal/model"
)

// movieColumns is the select list shared by every movie query.
const movieColumns = `id, slug, title, director, year_of_production, type, duration_in_minutes, description`

// MovieRepo manages persistence for movies.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// DB exposes the underlying sql.DB so callers can begin transactions
// spanning multiple repositories.
func (r *MovieRepo) DB() *sql.DB {
	return r.db
}

func scanMovie(row interface{ Scan(...any) error }) (*model.Movie, error) {
	var m model.Movie
	err := row.Scan(&m.ID, &m.Slug, &m.Title, &m.Director, &m.YearOfProduction, &m.Type, &m.DurationInMinutes, &m.Description)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a movie and assigns the generated ID back to the struct.
// The slug is recomputed from the title before the insert.  Duplicate slugs
// surface as ErrSlugExists.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	m.Reslug()
	const q = `INSERT INTO movies (slug, title, director, year_of_production, type, duration_in_minutes, description)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Slug, m.Title, m.Director, m.YearOfProduction, m.Type, m.DurationInMinutes, m.Description)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrSlugExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

// GetByID retrieves a movie by its ID, returning ErrMovieNotFound when no
// row matches.
func (r *MovieRepo) GetByID(ctx context.Context, id int64) (*model.Movie, error) {
	const q = `SELECT ` + movieColumns + ` FROM movies WHERE id = ?`
	m, err := scanMovie(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return m, nil
}

// GetBySlug retrieves a movie by its slug.
func (r *MovieRepo) GetBySlug(ctx context.Context, slug string) (*model.Movie, error) {
	const q = `SELECT ` + movieColumns + ` FROM movies WHERE slug = ?`
	m, err := scanMovie(r.db.QueryRowContext(ctx, q, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return m, nil
}

// List returns all movies ordered by title.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	const q = `SELECT ` + movieColumns + ` FROM movies ORDER BY title ASC`
	return r.queryMovies(ctx, q)
}

// Search returns movies whose title or director contains the query string,
// case-insensitively.  An empty query returns every movie.
func (r *MovieRepo) Search(ctx context.Context, query string) ([]model.Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.List(ctx)
	}
	const q = `SELECT ` + movieColumns + ` FROM movies
	           WHERE title LIKE ? OR director LIKE ?
	           ORDER BY title ASC`
	pattern := "%" + query + "%"
	return r.queryMovies(ctx, q, pattern, pattern)
}

func (r *MovieRepo) queryMovies(ctx context.Context, q string, args ...any) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update rewrites the movie's editable fields.  The slug is recomputed so a
// title edit always refreshes it.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	m.Reslug()
	const q = `UPDATE movies
	           SET slug = ?, title = ?, director = ?, year_of_production = ?, type = ?, duration_in_minutes = ?, description = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, m.Slug, m.Title, m.Director, m.YearOfProduction, m.Type, m.DurationInMinutes, m.Description, m.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrSlugExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either the movie is gone or the values were identical; distinguish
		// so callers get a proper not-found.
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM movies WHERE id = ? LIMIT 1`, m.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrMovieNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a movie together with its dependent showings and their
// orders inside one transaction.  The cascade is explicit rather than left
// to foreign-key semantics so it stays visible and testable.
func (r *MovieRepo) Delete(ctx context.Context, id int64) (err error) {
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
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM movies WHERE id = ? LIMIT 1`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMovieNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM orders WHERE showing_uuid IN (SELECT uuid FROM showings WHERE movie_id = ?)`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM showings WHERE movie_id = ?`, id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	return err
}

// isDuplicateKey reports whether the error is a MySQL duplicate-entry
// violation (error 1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
