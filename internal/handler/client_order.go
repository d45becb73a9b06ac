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

// ClientHandler serves the booking surface: placing orders against showings
// and listing the caller's own orders.
type ClientHandler struct {
	Ledger   *booking.Ledger
	Orders   *repository.OrderRepo
	Showings *repository.ShowingRepo
	Movies   *repository.MovieRepo
}

// NewClientHandler constructs a ClientHandler and panics if any dependency is nil.
func NewClientHandler(ledger *booking.Ledger, orders *repository.OrderRepo, showings *repository.ShowingRepo, movies *repository.MovieRepo) *ClientHandler {
	if ledger == nil || orders == nil || showings == nil || movies == nil {
		panic("nil dependency passed to NewClientHandler")
	}
	return &ClientHandler{Ledger: ledger, Orders: orders, Showings: showings, Movies: movies}
}

// orderView is the JSON shape of an order including its derived status.
type orderView struct {
	UUID          string `json:"uuid"`
	Date          string `json:"date"`
	TicketsAmount int    `json:"tickets_amount"`
	ShowingUUID   string `json:"showing_uuid"`
	Status        string `json:"status"`
}

func viewFromOrder(o model.Order) orderView {
	return orderView{
		UUID:          o.UUID,
		Date:          o.Date.Format("2006-01-02"),
		TicketsAmount: o.TicketsAmount,
		ShowingUUID:   o.ShowingUUID,
		Status:        o.StatusString(),
	}
}

// PlaceOrder handles POST /v1/showings/:uuid/orders.  The ledger enforces
// the ticket-count and capacity invariants; capacity rejections come back as
// 409 with the number of seats still free.
func (h *ClientHandler) PlaceOrder(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	showingUUID := strings.TrimSpace(c.Param("uuid"))
	if showingUUID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showing uuid"})
	}
	var body struct {
		TicketsAmount int `json:"tickets_amount"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	order, err := h.Ledger.PlaceOrder(ctx, showingUUID, clientID, body.TicketsAmount)
	if err != nil {
		return jsonError(c, err)
	}

	// Audit trail is best-effort; the booking stands even when the broker is
	// down.
	go func(ev queue.OrderEvent) {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := queue.PublishOrderEvent(pubCtx, ev); err != nil {
			log.Printf("order event publish failed: %v", err)
		}
	}(h.placedEvent(c.Request().Context(), order))

	return c.JSON(http.StatusCreated, viewFromOrder(*order))
}

func (h *ClientHandler) placedEvent(ctx context.Context, o *model.Order) queue.OrderEvent {
	ev := queue.OrderEvent{
		Kind:          queue.KindOrderPlaced,
		OrderUUID:     o.UUID,
		ShowingUUID:   o.ShowingUUID,
		ClientID:      o.ClientID,
		TicketsAmount: o.TicketsAmount,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	// Enrich with the movie title when the lookups succeed; the event is
	// still useful without it.
	if s, err := h.Showings.GetByUUID(ctx, o.ShowingUUID); err == nil {
		if m, err := h.Movies.GetByID(ctx, s.MovieID); err == nil {
			ev.MovieTitle = m.Title
		}
	}
	return ev
}

// ListMyOrders handles GET /v1/my-orders.
func (h *ClientHandler) ListMyOrders(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orders, err := h.Orders.ListByClient(c.Request().Context(), clientID)
	if err != nil {
		return jsonError(c, err)
	}
	items := make([]orderView, 0, len(orders))
	for _, o := range orders {
		items = append(items, viewFromOrder(o))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
