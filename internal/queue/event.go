// Package queue defines the order audit events exchanged over RabbitMQ and
// the background consumer that records them.
package queue

// Event kinds carried in OrderEvent.Kind.
const (
	KindOrderPlaced   = "order.placed"
	KindOrderAccepted = "order.accepted"
	KindOrderRejected = "order.rejected"
)

// OrderEvent is published after an order is placed or finalized.  It carries
// enough context for downstream consumers to log or notify without querying
// the primary database.
type OrderEvent struct {
	Kind          string `json:"kind"`
	OrderUUID     string `json:"order_uuid"`
	ShowingUUID   string `json:"showing_uuid"`
	MovieTitle    string `json:"movie_title,omitempty"`
	ClientID      int64  `json:"client_id"`
	CashierID     int64  `json:"cashier_id,omitempty"`
	TicketsAmount int    `json:"tickets_amount"`
	OccurredAt    string `json:"occurred_at"`
}
