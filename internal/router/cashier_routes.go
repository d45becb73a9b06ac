package router

import (
	"github.com/labstack/echo/v4"

	"github.com/lborowski/cinema-tickets/internal/handler"
	"github.com/lborowski/cinema-tickets/internal/middleware"
	"github.com/lborowski/cinema-tickets/internal/model"
)

// RegisterCashier registers the cashier desk under /v1/cashier.  Staff
// members can work the desk too.
func RegisterCashier(e *echo.Echo, h *handler.CashierHandler, jwtSecret string) {
	g := e.Group("/v1/cashier")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleCashier, model.RoleStaff))

	g.GET("/orders", h.ListPendingOrders)
	g.POST("/orders/:uuid/accept", h.AcceptOrder)
	g.POST("/orders/:uuid/reject", h.RejectOrder)
}
