package router

import (
	"github.com/labstack/echo/v4"

	"github.com/lborowski/cinema-tickets/internal/handler"
	"github.com/lborowski/cinema-tickets/internal/middleware"
	"github.com/lborowski/cinema-tickets/internal/model"
)

// RegisterClient registers the booking endpoints.  Any authenticated user
// may book; cashiers and staff book for themselves like anyone else.
func RegisterClient(e *echo.Echo, h *handler.ClientHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleClient, model.RoleCashier, model.RoleStaff))

	g.POST("/showings/:uuid/orders", h.PlaceOrder)
	g.GET("/my-orders", h.ListMyOrders)
}
