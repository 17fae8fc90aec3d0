// Package router defines how HTTP routes are registered for the display API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-seat-reservation/internal/handler"
	"github.com/iliyamo/flight-seat-reservation/internal/middleware"
	"github.com/iliyamo/flight-seat-reservation/internal/utils"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterDisplay registers the read-only gate display endpoints under
// /v1.  Every request must carry a display token signed with jwtSecret;
// limiter runs after authentication so buckets are keyed by display.
func RegisterDisplay(e *echo.Echo, h *handler.DisplayHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(utils.DisplayRole))
	if limiter != nil {
		g.Use(limiter)
	}
	g.GET("/chart", h.Chart)
	g.GET("/occupancy", h.Occupancy)
}
