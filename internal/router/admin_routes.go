package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airport-booking/internal/handler"
	"github.com/iliyamo/airport-booking/internal/middleware"
	"github.com/iliyamo/airport-booking/internal/model"
)

// RegisterAdmin registers ADMIN-scoped catalog write endpoints under
// /v1. All routes require a valid JWT and the ADMIN role; a customer
// hitting any of them receives 403.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.POST("/airplane-types", h.CreateAirplaneType)
	g.POST("/airplanes", h.CreateAirplane)
	g.POST("/airports", h.CreateAirport)
	g.POST("/airports/:id/image", h.UploadAirportImage)
	g.POST("/routes", h.CreateRoute)
	g.POST("/crews", h.CreateCrew)
	g.POST("/flights", h.CreateFlight)
}
