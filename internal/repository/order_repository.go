package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lborowski/cinema-tickets/internal/model"
)

// orderColumns is the select list shared by every order query.
const orderColumns = `uuid, date, tickets_amount, showing_uuid, client_id, cashier_id, accepted`

// OrderRepo manages persistence for orders.  The tri-state status lives in
// the accepted flag + nullable cashier_id column pair; model.Order derives
// the enum from them.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo constructs an OrderRepo with the given DB handle.
func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func scanOrder(row interface{ Scan(...any) error }) (*model.Order, error) {
	var (
		o         model.Order
		cashierID sql.NullInt64
	)
	err := row.Scan(&o.UUID, &o.Date, &o.TicketsAmount, &o.ShowingUUID, &o.ClientID, &cashierID, &o.Accepted)
	if err != nil {
		return nil, err
	}
	if cashierID.Valid {
		o.CashierID = &cashierID.Int64
	}
	return &o, nil
}

// Create inserts a pending order.  The ledger mints the UUID and creation
// date before calling; cashier_id starts NULL and accepted false.
func (r *OrderRepo) Create(ctx context.Context, o *model.Order) error {
	const q = `INSERT INTO orders (uuid, date, tickets_amount, showing_uuid, client_id, accepted)
	           VALUES (?, ?, ?, ?, ?, 0)`
	_, err := r.db.ExecContext(ctx, q, o.UUID, o.Date.UTC(), o.TicketsAmount, o.ShowingUUID, o.ClientID)
	return err
}

// GetByUUID retrieves an order, returning ErrOrderNotFound when no row
// matches.
func (r *OrderRepo) GetByUUID(ctx context.Context, orderUUID string) (*model.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE uuid = ?`
	o, err := scanOrder(r.db.QueryRowContext(ctx, q, orderUUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

// ActiveTickets sums tickets over every order for the showing that still
// holds seats, i.e. everything except rejected orders (finalized with
// accepted = 0).  Zero when no qualifying orders exist.
func (r *OrderRepo) ActiveTickets(ctx context.Context, showingUUID string) (int, error) {
	const q = `SELECT COALESCE(SUM(tickets_amount), 0)
	           FROM orders
	           WHERE showing_uuid = ? AND NOT (cashier_id IS NOT NULL AND accepted = 0)`
	var total int
	err := r.db.QueryRowContext(ctx, q, showingUUID).Scan(&total)
	return total, err
}

// Finalize performs the exactly-once state transition: it sets the cashier
// and decision only while cashier_id is still NULL.  The bool reports
// whether this call applied the transition; false with a nil error means the
// order was already finalized.  Unknown orders return ErrOrderNotFound.
func (r *OrderRepo) Finalize(ctx context.Context, orderUUID string, cashierID int64, accepted bool) (bool, error) {
	const q = `UPDATE orders SET cashier_id = ?, accepted = ? WHERE uuid = ? AND cashier_id IS NULL`
	res, err := r.db.ExecContext(ctx, q, cashierID, accepted, orderUUID)
	if err != nil {
		return false, err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return true, nil
	}
	// No row changed: either the order does not exist or it is already
	// finalized.  Distinguish so callers get a proper not-found.
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM orders WHERE uuid = ? LIMIT 1`, orderUUID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrOrderNotFound
		}
		return false, err
	}
	return false, nil
}

// ListByClient returns the client's orders, newest first.
func (r *OrderRepo) ListByClient(ctx context.Context, clientID int64) ([]model.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE client_id = ? ORDER BY date DESC, uuid ASC`
	return r.queryOrders(ctx, q, clientID)
}

// ListPending returns every order awaiting a cashier decision, oldest first
// so the queue drains fairly.
func (r *OrderRepo) ListPending(ctx context.Context) ([]model.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE cashier_id IS NULL ORDER BY date ASC, uuid ASC`
	return r.queryOrders(ctx, q)
}

// ListByShowing returns all orders placed against the showing.
func (r *OrderRepo) ListByShowing(ctx context.Context, showingUUID string) ([]model.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE showing_uuid = ? ORDER BY date ASC, uuid ASC`
	return r.queryOrders(ctx, q, showingUUID)
}

func (r *OrderRepo) queryOrders(ctx context.Context, q string, args ...any) ([]model.Order, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
