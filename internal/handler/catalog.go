package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airport-booking/internal/repository"
)

// filterDateLayout is the DD-MM-YYYY format accepted by the flight
// date filters.
const filterDateLayout = "02-01-2006"

// CatalogHandler serves the read-only browsing endpoints available to
// every authenticated user.
type CatalogHandler struct {
	Fleet    *repository.FleetRepo
	Airports *repository.AirportRepo
	Routes   *repository.RouteRepo
	Crews    *repository.CrewRepo
	Flights  *repository.FlightRepo
}

func NewCatalogHandler(fleet *repository.FleetRepo, airports *repository.AirportRepo, routes *repository.RouteRepo, crews *repository.CrewRepo, flights *repository.FlightRepo) *CatalogHandler {
	return &CatalogHandler{Fleet: fleet, Airports: airports, Routes: routes, Crews: crews, Flights: flights}
}

// ListAirplaneTypes returns all airplane types.
func (h *CatalogHandler) ListAirplaneTypes(c echo.Context) error {
	types, err := h.Fleet.ListTypes(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, types)
}

// ListAirplanes returns airplane summaries with the type flattened to
// its name and capacity precomputed.
func (h *CatalogHandler) ListAirplanes(c echo.Context) error {
	planes, err := h.Fleet.ListAirplanes(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, planes)
}

// GetAirplane returns one airplane with its type nested.
func (h *CatalogHandler) GetAirplane(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	plane, err := h.Fleet.GetAirplane(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrAirplaneNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "airplane not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, plane)
}

// ListAirports returns all airports.
func (h *CatalogHandler) ListAirports(c echo.Context) error {
	airports, err := h.Airports.ListAirports(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, airports)
}

// ListRoutes returns route summaries with airport names flattened.
func (h *CatalogHandler) ListRoutes(c echo.Context) error {
	routes, err := h.Routes.ListRoutes(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, routes)
}

// GetRoute returns one route with both airports nested.
func (h *CatalogHandler) GetRoute(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	route, err := h.Routes.GetRoute(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrRouteNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, route)
}

// ListCrews returns all crew members.
func (h *CatalogHandler) ListCrews(c echo.Context) error {
	crews, err := h.Crews.ListCrews(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, crews)
}

// ListFlights returns flight summaries, optionally filtered by source
// or destination airport id and by departure/arrival calendar date in
// DD-MM-YYYY. Malformed filter values are silently ignored rather than
// failing the request.
func (h *CatalogHandler) ListFlights(c echo.Context) error {
	var filter repository.FlightFilter
	if v, err := strconv.ParseUint(c.QueryParam("source"), 10, 64); err == nil {
		filter.SourceID = v
	}
	if v, err := strconv.ParseUint(c.QueryParam("destination"), 10, 64); err == nil {
		filter.DestinationID = v
	}
	if t, err := time.Parse(filterDateLayout, c.QueryParam("departure_date")); err == nil {
		filter.DepartureDate = &t
	}
	if t, err := time.Parse(filterDateLayout, c.QueryParam("arrival_date")); err == nil {
		filter.ArrivalDate = &t
	}

	flights, err := h.Flights.ListFlights(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, flights)
}

// GetFlight returns the full flight detail including nested route,
// airplane, crew and the taken seats.
func (h *CatalogHandler) GetFlight(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	flight, err := h.Flights.GetFlight(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrFlightNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, flight)
}
