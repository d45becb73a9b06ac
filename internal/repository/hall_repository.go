package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lborowski/cinema-tickets/internal/model"
)

// HallRepo manages persistence for halls.
type HallRepo struct {
	db *sql.DB
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo {
	return &HallRepo{db: db}
}

// Create inserts a hall and assigns the generated number back to the struct.
func (r *HallRepo) Create(ctx context.Context, h *model.Hall) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO halls (places) VALUES (?)`, h.Places)
	if err != nil {
		return err
	}
	number, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.Number = number
	return nil
}

// GetByNumber retrieves a hall, returning ErrHallNotFound when no row matches.
func (r *HallRepo) GetByNumber(ctx context.Context, number int64) (*model.Hall, error) {
	var h model.Hall
	err := r.db.QueryRowContext(ctx, `SELECT number, places FROM halls WHERE number = ?`, number).
		Scan(&h.Number, &h.Places)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	return &h, nil
}

// List returns all halls ordered by number.
func (r *HallRepo) List(ctx context.Context) ([]model.Hall, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT number, places FROM halls ORDER BY number ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Hall
	for rows.Next() {
		var h model.Hall
		if err := rows.Scan(&h.Number, &h.Places); err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a hall together with its dependent showings and their
// orders inside one transaction.
func (r *HallRepo) Delete(ctx context.Context, number int64) (err error) {
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
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM halls WHERE number = ? LIMIT 1`, number).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrHallNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM orders WHERE showing_uuid IN (SELECT uuid FROM showings WHERE hall_number = ?)`, number); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM showings WHERE hall_number = ?`, number); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM halls WHERE number = ?`, number)
	return err
}
