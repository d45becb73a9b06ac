package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/lborowski/cinema-tickets/internal/model"
)

// memOrders is an in-memory OrderStore with the same compare-and-set
// semantics as the SQL implementation.
type memOrders struct {
	mu     sync.Mutex
	orders map[string]*model.Order
}

func newMemOrders() *memOrders {
	return &memOrders{orders: make(map[string]*model.Order)}
}

func (s *memOrders) Create(_ context.Context, o *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *o
	s.orders[o.UUID] = &cp
	return nil
}

func (s *memOrders) GetByUUID(_ context.Context, orderUUID string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderUUID]
	if !ok {
		return nil, errors.New("order not found")
	}
	cp := *o
	return &cp, nil
}

func (s *memOrders) ActiveTickets(_ context.Context, showingUUID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, o := range s.orders {
		if o.ShowingUUID == showingUUID && o.CountsTowardCapacity() {
			total += o.TicketsAmount
		}
	}
	return total, nil
}

func (s *memOrders) Finalize(_ context.Context, orderUUID string, cashierID int64, accepted bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderUUID]
	if !ok {
		return false, errors.New("order not found")
	}
	if o.CashierID != nil {
		return false, nil
	}
	o.CashierID = &cashierID
	o.Accepted = accepted
	return true, nil
}

type memShowings map[string]*model.Showing

func (m memShowings) GetByUUID(_ context.Context, showingUUID string) (*model.Showing, error) {
	s, ok := m[showingUUID]
	if !ok {
		return nil, errors.New("showing not found")
	}
	return s, nil
}

type memHalls map[int64]*model.Hall

func (m memHalls) GetByNumber(_ context.Context, number int64) (*model.Hall, error) {
	h, ok := m[number]
	if !ok {
		return nil, errors.New("hall not found")
	}
	return h, nil
}

const showing = "11111111-2222-3333-4444-555555555555"

func newTestLedger(places int) (*Ledger, *memOrders) {
	orders := newMemOrders()
	showings := memShowings{showing: {UUID: showing, HallNumber: 1, MovieID: 1}}
	halls := memHalls{1: {Number: 1, Places: places}}
	return NewLedger(orders, showings, halls), orders
}

func TestPlaceOrderCapacity(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(100)

	if _, err := ledger.PlaceOrder(ctx, showing, 10, 50); err != nil {
		t.Fatalf("first order: %v", err)
	}
	free, err := ledger.FreeSeats(ctx, showing)
	if err != nil {
		t.Fatalf("free seats: %v", err)
	}
	if free != 50 {
		t.Fatalf("want 50 free, got %d", free)
	}

	// 60 does not fit in the remaining 50.
	_, err = ledger.PlaceOrder(ctx, showing, 11, 60)
	var ce *CapacityError
	if !errors.As(err, &ce) {
		t.Fatalf("want *CapacityError, got %v", err)
	}
	if ce.Requested != 60 || ce.Free != 50 {
		t.Fatalf("capacity error mismatch: %+v", ce)
	}

	// Exactly the remaining 50 fits, leaving zero.
	if _, err := ledger.PlaceOrder(ctx, showing, 12, 50); err != nil {
		t.Fatalf("boundary order: %v", err)
	}
	free, err = ledger.FreeSeats(ctx, showing)
	if err != nil {
		t.Fatalf("free seats: %v", err)
	}
	if free != 0 {
		t.Fatalf("want 0 free, got %d", free)
	}
	if _, err := ledger.PlaceOrder(ctx, showing, 13, 1); err == nil {
		t.Fatal("sold-out showing must reject further orders")
	}
}

func TestPlaceOrderValidatesTickets(t *testing.T) {
	ctx := context.Background()
	ledger, orders := newTestLedger(100)

	for _, tickets := range []int{0, -3} {
		_, err := ledger.PlaceOrder(ctx, showing, 10, tickets)
		var ve *model.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("tickets=%d: want *model.ValidationError, got %v", tickets, err)
		}
	}
	if len(orders.orders) != 0 {
		t.Fatal("invalid orders must not be stored")
	}
}

func TestRejectedOrdersFreeTheirSeats(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(100)
	cashier := &model.User{ID: 7, Role: model.RoleCashier}

	o, err := ledger.PlaceOrder(ctx, showing, 10, 80)
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	// While pending the seats are held.
	if _, err := ledger.PlaceOrder(ctx, showing, 11, 30); err == nil {
		t.Fatal("pending order must hold its seats")
	}

	if _, err := ledger.FinalizeOrder(ctx, cashier, o.UUID, false); err != nil {
		t.Fatalf("reject: %v", err)
	}
	free, err := ledger.FreeSeats(ctx, showing)
	if err != nil {
		t.Fatalf("free seats: %v", err)
	}
	if free != 100 {
		t.Fatalf("rejection must release seats, want 100 free, got %d", free)
	}
}

func TestFinalizeOrderExactlyOnce(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(100)
	first := &model.User{ID: 7, Role: model.RoleCashier}
	second := &model.User{ID: 8, Role: model.RoleStaff}

	o, err := ledger.PlaceOrder(ctx, showing, 10, 5)
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	got, err := ledger.FinalizeOrder(ctx, first, o.UUID, true)
	if err != nil {
		t.Fatalf("first finalize: %v", err)
	}
	if got.Status() != model.OrderAccepted {
		t.Fatalf("want accepted, got %s", got.Status())
	}
	if got.CashierID == nil || *got.CashierID != first.ID {
		t.Fatalf("want cashier %d recorded, got %v", first.ID, got.CashierID)
	}

	// A second decision, even the opposite one by someone else, is a silent
	// no-op returning the terminal state.
	got, err = ledger.FinalizeOrder(ctx, second, o.UUID, false)
	if err != nil {
		t.Fatalf("second finalize: %v", err)
	}
	if got.Status() != model.OrderAccepted {
		t.Fatalf("terminal state must stand, got %s", got.Status())
	}
	if *got.CashierID != first.ID {
		t.Fatalf("original cashier must stand, got %d", *got.CashierID)
	}
}

func TestFinalizeOrderRequiresCashierRole(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(100)

	o, err := ledger.PlaceOrder(ctx, showing, 10, 5)
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	client := &model.User{ID: 9, Role: model.RoleClient}
	if _, err := ledger.FinalizeOrder(ctx, client, o.UUID, true); !errors.Is(err, ErrNotCashier) {
		t.Fatalf("want ErrNotCashier, got %v", err)
	}
	if _, err := ledger.FinalizeOrder(ctx, nil, o.UUID, true); !errors.Is(err, ErrNotCashier) {
		t.Fatalf("nil actor: want ErrNotCashier, got %v", err)
	}

	staff := &model.User{ID: 10, Role: model.RoleStaff}
	if _, err := ledger.FinalizeOrder(ctx, staff, o.UUID, true); err != nil {
		t.Fatalf("staff can finalize, got %v", err)
	}
}

func TestConcurrentPlacementNeverOversells(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(50)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(client int64) {
			defer wg.Done()
			ledger.PlaceOrder(ctx, showing, client, 5)
		}(int64(i))
	}
	wg.Wait()

	taken, err := ledger.TakenSeats(ctx, showing)
	if err != nil {
		t.Fatalf("taken seats: %v", err)
	}
	if taken > 50 {
		t.Fatalf("oversold: %d seats taken of 50", taken)
	}
	if taken != 50 {
		t.Fatalf("want the hall exactly filled, got %d", taken)
	}
}
