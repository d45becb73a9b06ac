// Package booking implements the booking ledger: seat-availability accounting
// for showings and the order lifecycle (place, then accept or reject exactly
// once).
package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lborowski/cinema-tickets/internal/model"
)

// ErrNotCashier rejects a finalize attempt by a caller without the cashier
// role.  Handlers translate it into a 403 response.
var ErrNotCashier = errors.New("only a cashier can finalize an order")

// CapacityError reports that an order asks for more tickets than the showing
// has free.
type CapacityError struct {
	ShowingUUID string
	Requested   int
	Free        int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("showing %s: requested %d tickets but only %d free", e.ShowingUUID, e.Requested, e.Free)
}

// OrderStore persists orders.  ActiveTickets sums tickets over every order
// for the showing that is not rejected (pending and accepted both hold
// seats).  Finalize performs a compare-and-set on the cashier column and
// reports whether the update applied, so two simultaneous finalizations can
// never both succeed.
type OrderStore interface {
	Create(ctx context.Context, o *model.Order) error
	GetByUUID(ctx context.Context, orderUUID string) (*model.Order, error)
	ActiveTickets(ctx context.Context, showingUUID string) (int, error)
	Finalize(ctx context.Context, orderUUID string, cashierID int64, accepted bool) (bool, error)
}

// ShowingDirectory resolves a showing and the hall it plays in.
type ShowingDirectory interface {
	GetByUUID(ctx context.Context, showingUUID string) (*model.Showing, error)
}

// HallDirectory resolves hall capacity.
type HallDirectory interface {
	GetByNumber(ctx context.Context, number int64) (*model.Hall, error)
}

// Ledger derives free/taken seats for showings and guards the capacity
// invariant when orders are placed.  Placements against the same showing are
// serialized through a per-showing critical section so the availability check
// and the insert are atomic; without it concurrent bookings could oversell.
type Ledger struct {
	orders   OrderStore
	showings ShowingDirectory
	halls    HallDirectory

	mu           sync.Mutex
	showingLocks map[string]*sync.Mutex
}

// NewLedger constructs a Ledger over the given stores.
func NewLedger(orders OrderStore, showings ShowingDirectory, halls HallDirectory) *Ledger {
	if orders == nil || showings == nil || halls == nil {
		panic("nil dependency passed to NewLedger")
	}
	return &Ledger{
		orders:       orders,
		showings:     showings,
		halls:        halls,
		showingLocks: make(map[string]*sync.Mutex),
	}
}

func (l *Ledger) showingLock(showingUUID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.showingLocks[showingUUID]
	if !ok {
		lock = &sync.Mutex{}
		l.showingLocks[showingUUID] = lock
	}
	return lock
}

// TakenSeats returns the number of seats held by pending and accepted orders
// for the showing.  A showing with no qualifying orders has zero taken seats.
func (l *Ledger) TakenSeats(ctx context.Context, showingUUID string) (int, error) {
	return l.orders.ActiveTickets(ctx, showingUUID)
}

// FreeSeats returns the hall capacity minus the taken seats.
func (l *Ledger) FreeSeats(ctx context.Context, showingUUID string) (int, error) {
	showing, err := l.showings.GetByUUID(ctx, showingUUID)
	if err != nil {
		return 0, err
	}
	hall, err := l.halls.GetByNumber(ctx, showing.HallNumber)
	if err != nil {
		return 0, err
	}
	taken, err := l.TakenSeats(ctx, showingUUID)
	if err != nil {
		return 0, err
	}
	return hall.Places - taken, nil
}

// PlaceOrder creates a pending order for the client when the showing still
// has enough free seats.  It rejects ticket counts below 1 with a
// *model.ValidationError and over-capacity requests with a *CapacityError.
func (l *Ledger) PlaceOrder(ctx context.Context, showingUUID string, clientID int64, tickets int) (*model.Order, error) {
	o := &model.Order{
		UUID:          uuid.NewString(),
		Date:          time.Now().UTC(),
		TicketsAmount: tickets,
		ShowingUUID:   showingUUID,
		ClientID:      clientID,
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	lock := l.showingLock(showingUUID)
	lock.Lock()
	defer lock.Unlock()

	free, err := l.FreeSeats(ctx, showingUUID)
	if err != nil {
		return nil, err
	}
	if tickets > free {
		return nil, &CapacityError{ShowingUUID: showingUUID, Requested: tickets, Free: free}
	}
	if err := l.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// FinalizeOrder records the cashier's decision exactly once.  A second call
// on an already finalized order is a silent no-op that returns the order in
// its terminal state, so duplicate submissions are harmless.  Callers without
// the cashier role get ErrNotCashier.
func (l *Ledger) FinalizeOrder(ctx context.Context, actor *model.User, orderUUID string, accept bool) (*model.Order, error) {
	if actor == nil || !actor.IsCashier() {
		return nil, ErrNotCashier
	}
	// The conditional update only applies while the cashier column is still
	// NULL; losing the race simply means someone else finalized first.
	if _, err := l.orders.Finalize(ctx, orderUUID, actor.ID, accept); err != nil {
		return nil, err
	}
	return l.orders.GetByUUID(ctx, orderUUID)
}
