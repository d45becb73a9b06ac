// Package router wires handlers and middleware onto the Echo instance.
// Route registration is split by audience: public browsing, authentication,
// client booking, the cashier desk and staff administration.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/lborowski/cinema-tickets/internal/config"
	"github.com/lborowski/cinema-tickets/internal/handler"
	"github.com/lborowski/cinema-tickets/internal/middleware"
)

// RegisterHealth exposes the unauthenticated liveness endpoint.
func RegisterHealth(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the browse surface under /v1.  No authentication
// is required; GET responses are rate limited per client and cached for a
// short TTL when Redis is configured.
func RegisterPublic(e *echo.Echo, h *handler.PublicHandler, rdb *redis.Client) {
	g := e.Group("/v1")
	g.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))
	g.Use(middleware.CacheResponses(config.LoadCacheConfig(), rdb))

	g.GET("/schedule", h.Schedule)
	g.GET("/movies", h.ListMovies)
	g.GET("/movies/:slug", h.MovieBySlug)
	g.GET("/showings/:uuid", h.ShowingDetail)
}

// RegisterAuth registers the session endpoints under /v1/auth plus the
// authenticated /v1/me lookup.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	me := e.Group("/v1")
	me.Use(middleware.JWTAuth(jwtSecret))
	me.GET("/me", a.Me)
}
