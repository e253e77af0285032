package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airport-booking/internal/handler"
	"github.com/iliyamo/airport-booking/internal/middleware"
	"github.com/iliyamo/airport-booking/internal/model"
)

// RegisterCatalog registers the read-only browsing endpoints under
// /v1. Any authenticated role may browse the catalog; write access is
// registered separately on the admin router.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	mw := append([]echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleCustomer),
	}, extra...)
	g := e.Group("/v1", mw...)

	g.GET("/airplane-types", h.ListAirplaneTypes)
	g.GET("/airplanes", h.ListAirplanes)
	g.GET("/airplanes/:id", h.GetAirplane)
	g.GET("/airports", h.ListAirports)
	g.GET("/routes", h.ListRoutes)
	g.GET("/routes/:id", h.GetRoute)
	g.GET("/crews", h.ListCrews)
	g.GET("/flights", h.ListFlights)
	g.GET("/flights/:id", h.GetFlight)
}
