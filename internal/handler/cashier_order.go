package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lborowski/cinema-tickets/internal/booking"
	"github.com/lborowski/cinema-tickets/internal/model"
	"github.com/lborowski/cinema-tickets/internal/queue"
	"github.com/lborowski/cinema-tickets/internal/repository"
)

// CashierHandler covers the cashier desk: the pending queue and the
// accept/reject decisions.
type CashierHandler struct {
	Ledger *booking.Ledger
	Orders *repository.OrderRepo
	Users  *repository.UserRepo
}

func NewCashierHandler(ledger *booking.Ledger, orders *repository.OrderRepo, users *repository.UserRepo) *CashierHandler {
	if ledger == nil || orders == nil || users == nil {
		panic("nil dependency passed to NewCashierHandler")
	}
	return &CashierHandler{Ledger: ledger, Orders: orders, Users: users}
}

// ListPendingOrders handles GET /v1/cashier/orders, oldest first.
func (h *CashierHandler) ListPendingOrders(c echo.Context) error {
	orders, err := h.Orders.ListPending(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	items := make([]orderView, 0, len(orders))
	for _, o := range orders {
		items = append(items, viewFromOrder(o))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// AcceptOrder handles POST /v1/cashier/orders/:uuid/accept.
func (h *CashierHandler) AcceptOrder(c echo.Context) error {
	return h.finalize(c, true)
}

// RejectOrder handles POST /v1/cashier/orders/:uuid/reject.
func (h *CashierHandler) RejectOrder(c echo.Context) error {
	return h.finalize(c, false)
}

func (h *CashierHandler) finalize(c echo.Context, accept bool) error {
	actorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orderUUID := strings.TrimSpace(c.Param("uuid"))
	if orderUUID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order uuid"})
	}

	ctx := c.Request().Context()
	actor, err := h.Users.GetByID(ctx, actorID)
	if err != nil {
		return jsonError(c, err)
	}
	order, err := h.Ledger.FinalizeOrder(ctx, actor, orderUUID, accept)
	if err != nil {
		return jsonError(c, err)
	}

	go func(ev queue.OrderEvent) {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := queue.PublishOrderEvent(pubCtx, ev); err != nil {
			log.Printf("order event publish failed: %v", err)
		}
	}(finalizedEvent(order, actorID))

	return c.JSON(http.StatusOK, viewFromOrder(*order))
}

func finalizedEvent(o *model.Order, cashierID int64) queue.OrderEvent {
	kind := queue.KindOrderRejected
	if o.Status() == model.OrderAccepted {
		kind = queue.KindOrderAccepted
	}
	return queue.OrderEvent{
		Kind:          kind,
		OrderUUID:     o.UUID,
		ShowingUUID:   o.ShowingUUID,
		ClientID:      o.ClientID,
		CashierID:     cashierID,
		TicketsAmount: o.TicketsAmount,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
}
