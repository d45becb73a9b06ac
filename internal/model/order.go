package model

import "time"

// OrderStatus is the tri-state acceptance outcome of an order.
type OrderStatus string

const (
	OrderPending  OrderStatus = "pending"
	OrderAccepted OrderStatus = "accepted"
	OrderRejected OrderStatus = "rejected"
)

// Order is a client's ticket reservation against a showing.  The storage
// layer keeps the two legacy columns (accepted flag + nullable cashier
// reference); Status derives the enum from them so callers never have to
// reason about the flag pair.
//
// Once CashierID is set the order is finalized and both CashierID and
// Accepted are immutable.
type Order struct {
	UUID          string    `json:"uuid"`
	Date          time.Time `json:"date"`
	TicketsAmount int       `json:"tickets_amount"`
	ShowingUUID   string    `json:"showing_uuid"`
	ClientID      int64     `json:"client_id"`
	CashierID     *int64    `json:"cashier_id,omitempty"`
	Accepted      bool      `json:"accepted"`
}

// Status derives the tri-state outcome: pending until a cashier finalizes,
// then accepted or rejected depending on the flag.
func (o *Order) Status() OrderStatus {
	if o.CashierID == nil {
		return OrderPending
	}
	if o.Accepted {
		return OrderAccepted
	}
	return OrderRejected
}

// Finalized reports whether a cashier has already accepted or rejected the order.
func (o *Order) Finalized() bool {
	return o.CashierID != nil
}

// CountsTowardCapacity reports whether the order's tickets occupy seats.
// Pending and accepted orders hold seats; rejected orders release them.
func (o *Order) CountsTowardCapacity() bool {
	return o.Status() != OrderRejected
}

// StatusString renders the status the way order listings display it.
func (o *Order) StatusString() string {
	switch o.Status() {
	case OrderAccepted:
		return "accepted"
	case OrderRejected:
		return "rejected"
	default:
		return "not accepted"
	}
}

// Validate checks the ticket count lower bound.
func (o *Order) Validate() error {
	if o.TicketsAmount < 1 {
		return &ValidationError{Entity: "order", Field: "tickets_amount", Reason: "must be at least 1"}
	}
	return nil
}
