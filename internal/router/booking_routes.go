package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airport-booking/internal/handler"
	"github.com/iliyamo/airport-booking/internal/middleware"
	"github.com/iliyamo/airport-booking/internal/model"
)

// RegisterBooking registers the order and ticket endpoints under /v1.
// Any authenticated user may book; every handler scopes its queries to
// the caller so one user can never see another's orders or tickets.
func RegisterBooking(e *echo.Echo, h *handler.OrderHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	mw := append([]echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleCustomer),
	}, extra...)
	g := e.Group("/v1", mw...)

	g.POST("/orders", h.Create)
	g.GET("/orders", h.List)
	g.GET("/orders/:id", h.Get)
	g.GET("/tickets", h.ListTickets)
	g.GET("/tickets/:id", h.GetTicket)
}
