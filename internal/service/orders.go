// Package service holds the order placement orchestration. The
// database work stays in the repositories; this layer runs the
// validation pipeline and fires the domain event, behind small
// interfaces so it can be tested without a database.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/airport-booking/internal/model"
	"github.com/iliyamo/airport-booking/internal/queue"
	"github.com/iliyamo/airport-booking/internal/repository"
)

// ErrEmptyOrder rejects an order with no tickets.
var ErrEmptyOrder = errors.New("an order must contain at least one ticket")

// UnknownFlightError names the flight id an order request referenced
// but that does not exist. Treated as a validation failure, not a 404:
// the resource being addressed is the order, not the flight.
type UnknownFlightError struct {
	FlightID uint64
}

func (e *UnknownFlightError) Error() string {
	return fmt.Sprintf("flight %d does not exist", e.FlightID)
}

// FlightResolver supplies the seat grid and route label of a flight.
type FlightResolver interface {
	BookingInfo(ctx context.Context, flightID uint64) (repository.FlightBookingInfo, error)
}

// OrderStore persists an order with its tickets atomically.
type OrderStore interface {
	CreateWithTickets(ctx context.Context, userID uint64, reqs []repository.TicketRequest) (model.Order, []model.Ticket, error)
}

// EventPublisher delivers the order.placed event to the broker.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, ev queue.OrderPlacedEvent) error
}

// PublisherFunc adapts a plain function to the EventPublisher interface.
type PublisherFunc func(ctx context.Context, ev queue.OrderPlacedEvent) error

func (f PublisherFunc) PublishOrderPlaced(ctx context.Context, ev queue.OrderPlacedEvent) error {
	return f(ctx, ev)
}

// OrderService validates and places ticket orders.
type OrderService struct {
	flights   FlightResolver
	store     OrderStore
	publisher EventPublisher
}

func NewOrderService(flights FlightResolver, store OrderStore, publisher EventPublisher) *OrderService {
	return &OrderService{flights: flights, store: store, publisher: publisher}
}

// PlaceOrder runs the full placement pipeline: reject empty orders,
// resolve every referenced flight, validate each requested seat
// against its airplane's grid, then hand the batch to the store for
// the atomic insert. Validation failures persist nothing. A duplicate
// seat surfaces as *repository.SeatTakenError from the store.
//
// After a successful commit an order.placed event is published best
// effort; a broker failure is logged and never fails the request.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint64, reqs []repository.TicketRequest) (model.Order, []model.Ticket, error) {
	if len(reqs) == 0 {
		return model.Order{}, nil, ErrEmptyOrder
	}

	// Each flight's grid is resolved once even when several tickets
	// target the same flight.
	grids := make(map[uint64]repository.FlightBookingInfo, len(reqs))
	for _, req := range reqs {
		info, ok := grids[req.FlightID]
		if !ok {
			var err error
			info, err = s.flights.BookingInfo(ctx, req.FlightID)
			if err != nil {
				if errors.Is(err, repository.ErrFlightNotFound) {
					return model.Order{}, nil, &UnknownFlightError{FlightID: req.FlightID}
				}
				return model.Order{}, nil, err
			}
			grids[req.FlightID] = info
		}
		if err := model.ValidateTicketPlacement(req.Row, req.Seat, info.Rows, info.SeatsInRow); err != nil {
			return model.Order{}, nil, err
		}
	}

	order, tickets, err := s.store.CreateWithTickets(ctx, userID, reqs)
	if err != nil {
		return model.Order{}, nil, err
	}

	ev := queue.OrderPlacedEvent{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TicketCount: len(tickets),
		Tickets:     make([]queue.TicketRef, 0, len(tickets)),
		PlacedAt:    order.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, t := range tickets {
		ev.Tickets = append(ev.Tickets, queue.TicketRef{
			FlightID: t.FlightID,
			Route:    grids[t.FlightID].Route,
			Row:      t.Row,
			Seat:     t.Seat,
		})
	}
	if err := s.publisher.PublishOrderPlaced(ctx, ev); err != nil {
		log.Printf("order %d: publish order.placed failed: %v", order.ID, err)
	}

	return order, tickets, nil
}
