package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airport-booking/internal/model"
	"github.com/iliyamo/airport-booking/internal/repository"
	"github.com/iliyamo/airport-booking/internal/storage"
)

// AdminHandler serves the catalog write endpoints. All routes behind
// it require the ADMIN role; a CUSTOMER reaching these gets 403 from
// the role middleware, never 404.
type AdminHandler struct {
	Fleet    *repository.FleetRepo
	Airports *repository.AirportRepo
	Routes   *repository.RouteRepo
	Crews    *repository.CrewRepo
	Flights  *repository.FlightRepo
	Images   *storage.ImageStore
}

func NewAdminHandler(fleet *repository.FleetRepo, airports *repository.AirportRepo, routes *repository.RouteRepo, crews *repository.CrewRepo, flights *repository.FlightRepo, images *storage.ImageStore) *AdminHandler {
	return &AdminHandler{Fleet: fleet, Airports: airports, Routes: routes, Crews: crews, Flights: flights, Images: images}
}

// ----- airplane types -----

type createTypeReq struct {
	Name string `json:"name"`
}

func (h *AdminHandler) CreateAirplaneType(c echo.Context) error {
	var req createTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fieldErrorJSON(c, model.FieldErrors{"name": "name must not be empty"})
	}
	t := model.AirplaneType{Name: req.Name}
	if err := h.Fleet.CreateType(c.Request().Context(), &t); err != nil {
		if err == repository.ErrNameExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "airplane type name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, repository.AirplaneTypeView{ID: t.ID, Name: t.Name})
}

// ----- airplanes -----

type createAirplaneReq struct {
	Name           string `json:"name"`
	Rows           uint32 `json:"rows"`
	SeatsInRow     uint32 `json:"seats_in_row"`
	AirplaneTypeID uint64 `json:"airplane_type_id"`
}

func (h *AdminHandler) CreateAirplane(c echo.Context) error {
	var req createAirplaneReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	fe := model.FieldErrors{}
	if strings.TrimSpace(req.Name) == "" {
		fe["name"] = "name must not be empty"
	}
	if req.Rows == 0 {
		fe["rows"] = "rows must be positive"
	}
	if req.SeatsInRow == 0 {
		fe["seats_in_row"] = "seats_in_row must be positive"
	}
	if len(fe) > 0 {
		return fieldErrorJSON(c, fe)
	}

	a := model.Airplane{
		Name:           strings.TrimSpace(req.Name),
		Rows:           req.Rows,
		SeatsInRow:     req.SeatsInRow,
		AirplaneTypeID: req.AirplaneTypeID,
	}
	if err := h.Fleet.CreateAirplane(c.Request().Context(), &a); err != nil {
		switch err {
		case repository.ErrAirplaneTypeNotFound:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "airplane type does not exist"})
		case repository.ErrNameExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "airplane name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	detail, err := h.Fleet.GetAirplane(c.Request().Context(), a.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load created airplane failed"})
	}
	return c.JSON(http.StatusCreated, detail)
}

// ----- airports -----

type createAirportReq struct {
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
}

func (h *AdminHandler) CreateAirport(c echo.Context) error {
	var req createAirportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	fe := model.FieldErrors{}
	if strings.TrimSpace(req.Name) == "" {
		fe["name"] = "name must not be empty"
	}
	if strings.TrimSpace(req.ClosestBigCity) == "" {
		fe["closest_big_city"] = "closest_big_city must not be empty"
	}
	if len(fe) > 0 {
		return fieldErrorJSON(c, fe)
	}

	a := model.Airport{
		Name:           strings.TrimSpace(req.Name),
		ClosestBigCity: strings.TrimSpace(req.ClosestBigCity),
	}
	if err := h.Airports.CreateAirport(c.Request().Context(), &a); err != nil {
		if err == repository.ErrNameExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "airport already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":               a.ID,
		"name":             a.Name,
		"closest_big_city": a.ClosestBigCity,
		"full_name":        a.FullName(),
	})
}

// UploadAirportImage accepts a multipart form with an "image" part,
// stores the file on local disk and records the resulting path on the
// airport row.
func (h *AdminHandler) UploadAirportImage(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	airport, err := h.Airports.GetAirport(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrAirportNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "airport not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image file required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot read image"})
	}
	defer src.Close()

	path, err := h.Images.SaveAirportImage(airport.ClosestBigCity, fh.Filename, src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store image failed"})
	}
	if err := h.Airports.SetAirportImage(c.Request().Context(), id, path); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record image failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":         id,
		"image_path": path,
	})
}

// ----- routes -----

type createRouteReq struct {
	SourceID      uint64 `json:"source_id"`
	DestinationID uint64 `json:"destination_id"`
	Distance      uint32 `json:"distance"`
}

func (h *AdminHandler) CreateRoute(c echo.Context) error {
	var req createRouteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Distance == 0 {
		return fieldErrorJSON(c, model.FieldErrors{"distance": "distance must be positive"})
	}

	rt := model.Route{SourceID: req.SourceID, DestinationID: req.DestinationID, Distance: req.Distance}
	if err := h.Routes.CreateRoute(c.Request().Context(), &rt); err != nil {
		switch err {
		case repository.ErrAirportNotFound:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "source or destination airport does not exist"})
		case repository.ErrRouteExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "route already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	detail, err := h.Routes.GetRoute(c.Request().Context(), rt.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load created route failed"})
	}
	return c.JSON(http.StatusCreated, detail)
}

// ----- crews -----

type createCrewReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (h *AdminHandler) CreateCrew(c echo.Context) error {
	var req createCrewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	fe := model.FieldErrors{}
	if strings.TrimSpace(req.FirstName) == "" {
		fe["first_name"] = "first_name must not be empty"
	}
	if strings.TrimSpace(req.LastName) == "" {
		fe["last_name"] = "last_name must not be empty"
	}
	if len(fe) > 0 {
		return fieldErrorJSON(c, fe)
	}

	crew := model.Crew{FirstName: strings.TrimSpace(req.FirstName), LastName: strings.TrimSpace(req.LastName)}
	if err := h.Crews.CreateCrew(c.Request().Context(), &crew); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, repository.CrewView{
		ID:        crew.ID,
		FirstName: crew.FirstName,
		LastName:  crew.LastName,
		FullName:  crew.FullName(),
	})
}

// ----- flights -----

type createFlightReq struct {
	RouteID       uint64    `json:"route_id"`
	AirplaneID    uint64    `json:"airplane_id"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	CrewIDs       []uint64  `json:"crew_ids"`
}

func (h *AdminHandler) CreateFlight(c echo.Context) error {
	var req createFlightReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := model.ValidateFlightTimes(req.DepartureTime, req.ArrivalTime); err != nil {
		if fe, ok := err.(model.FieldErrors); ok {
			return fieldErrorJSON(c, fe)
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	// Check the crew assignment up front so the client gets a clear
	// error instead of a mid-transaction FK failure.
	crewIDs := dedupeIDs(req.CrewIDs)
	if len(crewIDs) > 0 {
		n, err := h.Crews.CountByIDs(c.Request().Context(), crewIDs)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if n != len(crewIDs) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "one or more crew members do not exist"})
		}
	}

	f := model.Flight{
		RouteID:       req.RouteID,
		AirplaneID:    req.AirplaneID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
	}
	if err := h.Flights.CreateFlight(c.Request().Context(), &f, crewIDs); err != nil {
		switch err {
		case repository.ErrRouteNotFound:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "route does not exist"})
		case repository.ErrAirplaneNotFound:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "airplane does not exist"})
		case repository.ErrCrewNotFound:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "one or more crew members do not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	detail, err := h.Flights.GetFlight(c.Request().Context(), f.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load created flight failed"})
	}
	return c.JSON(http.StatusCreated, detail)
}

// dedupeIDs drops duplicate ids while preserving order.
func dedupeIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]bool, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
