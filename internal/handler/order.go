package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airport-booking/internal/model"
	"github.com/iliyamo/airport-booking/internal/repository"
	"github.com/iliyamo/airport-booking/internal/service"
)

// OrderHandler serves the booking endpoints. Every operation is scoped
// to the authenticated caller; other users' orders and tickets are
// indistinguishable from absent ones.
type OrderHandler struct {
	Service *service.OrderService
	Orders  *repository.OrderRepo
	Tickets *repository.TicketRepo
}

func NewOrderHandler(svc *service.OrderService, orders *repository.OrderRepo, tickets *repository.TicketRepo) *OrderHandler {
	return &OrderHandler{Service: svc, Orders: orders, Tickets: tickets}
}

type createOrderReq struct {
	Tickets []repository.TicketRequest `json:"tickets"`
}

type createdTicket struct {
	ID       uint64 `json:"id"`
	Row      uint32 `json:"row"`
	Seat     uint32 `json:"seat"`
	FlightID uint64 `json:"flight_id"`
}

type createdOrderResp struct {
	ID        uint64          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Tickets   []createdTicket `json:"tickets"`
}

// Create places an order for one or more seats. Validation failures
// map to 400, a lost seat race to 409; either way nothing persists.
func (h *OrderHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	order, tickets, err := h.Service.PlaceOrder(c.Request().Context(), uid, req.Tickets)
	if err != nil {
		var fe model.FieldErrors
		var ufe *service.UnknownFlightError
		var ste *repository.SeatTakenError
		switch {
		case errors.Is(err, service.ErrEmptyOrder):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.As(err, &ufe):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": ufe.Error()})
		case errors.As(err, &fe):
			return fieldErrorJSON(c, fe)
		case errors.As(err, &ste):
			return c.JSON(http.StatusConflict, echo.Map{"error": ste.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "place order failed"})
	}

	resp := createdOrderResp{
		ID:        order.ID,
		CreatedAt: order.CreatedAt,
		Tickets:   make([]createdTicket, 0, len(tickets)),
	}
	for _, t := range tickets {
		resp.Tickets = append(resp.Tickets, createdTicket{ID: t.ID, Row: t.Row, Seat: t.Seat, FlightID: t.FlightID})
	}
	return c.JSON(http.StatusCreated, resp)
}

// List returns the caller's orders, newest first, paginated.
func (h *OrderHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	page, pageSize, offset := parsePagination(c)

	orders, total, err := h.Orders.ListByUser(c.Request().Context(), uid, pageSize, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, pagedResponse{Items: orders, Page: page, PageSize: pageSize, Total: total})
}

// Get returns one of the caller's orders. Orders owned by someone else
// return 404.
func (h *OrderHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	order, err := h.Orders.GetByIDForUser(c.Request().Context(), id, uid)
	if err != nil {
		if err == repository.ErrOrderNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, order)
}

// ListTickets returns the caller's tickets, paginated.
func (h *OrderHandler) ListTickets(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	page, pageSize, offset := parsePagination(c)

	tickets, total, err := h.Tickets.ListByUser(c.Request().Context(), uid, pageSize, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, pagedResponse{Items: tickets, Page: page, PageSize: pageSize, Total: total})
}

// GetTicket returns one of the caller's tickets; 404 for anyone
// else's.
func (h *OrderHandler) GetTicket(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ticket, err := h.Tickets.GetByIDForUser(c.Request().Context(), id, uid)
	if err != nil {
		if err == repository.ErrTicketNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, ticket)
}
