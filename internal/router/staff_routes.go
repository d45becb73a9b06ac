package router

import (
	"github.com/labstack/echo/v4"

	"github.com/lborowski/cinema-tickets/internal/handler"
	"github.com/lborowski/cinema-tickets/internal/middleware"
	"github.com/lborowski/cinema-tickets/internal/model"
)

// RegisterStaff registers the administration panel under /v1/staff:
// catalogue management, scheduling and cashier account control.
func RegisterStaff(e *echo.Echo, h *handler.StaffHandler, jwtSecret string) {
	g := e.Group("/v1/staff")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleStaff))

	g.POST("/movies", h.CreateMovie)
	g.PATCH("/movies/:id", h.UpdateMovie)
	g.DELETE("/movies/:id", h.DeleteMovie)

	g.POST("/halls", h.CreateHall)
	g.GET("/halls", h.ListHalls)
	g.DELETE("/halls/:number", h.DeleteHall)

	g.POST("/showings", h.CreateShowing)
	g.GET("/showings", h.ListShowings)
	g.DELETE("/showings/:uuid", h.DeleteShowing)

	g.GET("/cashiers", h.ListCashiers)
	g.POST("/cashiers/promote", h.PromoteCashier)
	g.POST("/cashiers/demote", h.DemoteCashier)
}
