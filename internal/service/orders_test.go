package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/airport-booking/internal/model"
	"github.com/iliyamo/airport-booking/internal/queue"
	"github.com/iliyamo/airport-booking/internal/repository"
)

type MockFlightResolver struct {
	mock.Mock
}

func (m *MockFlightResolver) BookingInfo(ctx context.Context, flightID uint64) (repository.FlightBookingInfo, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).(repository.FlightBookingInfo), args.Error(1)
}

type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) CreateWithTickets(ctx context.Context, userID uint64, reqs []repository.TicketRequest) (model.Order, []model.Ticket, error) {
	args := m.Called(ctx, userID, reqs)
	if args.Get(1) == nil {
		return args.Get(0).(model.Order), nil, args.Error(2)
	}
	return args.Get(0).(model.Order), args.Get(1).([]model.Ticket), args.Error(2)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderPlaced(ctx context.Context, ev queue.OrderPlacedEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func TestPlaceOrder_EmptyOrderRejected(t *testing.T) {
	svc := NewOrderService(&MockFlightResolver{}, &MockOrderStore{}, &MockPublisher{})

	_, _, err := svc.PlaceOrder(context.Background(), 1, nil)

	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestPlaceOrder_UnknownFlight(t *testing.T) {
	flights := &MockFlightResolver{}
	store := &MockOrderStore{}
	pub := &MockPublisher{}
	svc := NewOrderService(flights, store, pub)

	ctx := context.Background()
	flights.On("BookingInfo", ctx, uint64(77)).
		Return(repository.FlightBookingInfo{}, repository.ErrFlightNotFound).Once()

	_, _, err := svc.PlaceOrder(ctx, 1, []repository.TicketRequest{
		{FlightID: 77, Row: 1, Seat: 1},
	})

	var ufe *UnknownFlightError
	assert.ErrorAs(t, err, &ufe)
	assert.Equal(t, uint64(77), ufe.FlightID)
	// Nothing reaches the store when validation fails.
	store.AssertNotCalled(t, "CreateWithTickets", mock.Anything, mock.Anything, mock.Anything)
	flights.AssertExpectations(t)
}

func TestPlaceOrder_SeatOutOfRange(t *testing.T) {
	flights := &MockFlightResolver{}
	store := &MockOrderStore{}
	svc := NewOrderService(flights, store, &MockPublisher{})

	ctx := context.Background()
	grid := repository.FlightBookingInfo{Rows: 10, SeatsInRow: 6, Route: "AMS -> OSL"}
	flights.On("BookingInfo", ctx, uint64(4)).Return(grid, nil).Once()

	// Row and seat are both out of range; both violations are reported.
	_, _, err := svc.PlaceOrder(ctx, 1, []repository.TicketRequest{
		{FlightID: 4, Row: 11, Seat: 7},
	})

	var fe model.FieldErrors
	assert.ErrorAs(t, err, &fe)
	assert.Contains(t, fe["row"], "[1, 10]")
	assert.Contains(t, fe["row"], "got 11")
	assert.Contains(t, fe["seat"], "[1, 6]")
	store.AssertNotCalled(t, "CreateWithTickets", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrder_PartiallyInvalidOrderPersistsNothing(t *testing.T) {
	flights := &MockFlightResolver{}
	store := &MockOrderStore{}
	pub := &MockPublisher{}
	svc := NewOrderService(flights, store, pub)

	ctx := context.Background()
	grid := repository.FlightBookingInfo{Rows: 30, SeatsInRow: 6, Route: "AMS -> OSL"}
	flights.On("BookingInfo", ctx, uint64(4)).Return(grid, nil).Once()

	// First ticket is valid, second is not; the grid is resolved once
	// and the store is never touched.
	_, _, err := svc.PlaceOrder(ctx, 1, []repository.TicketRequest{
		{FlightID: 4, Row: 1, Seat: 1},
		{FlightID: 4, Row: 31, Seat: 1},
	})

	var fe model.FieldErrors
	assert.ErrorAs(t, err, &fe)
	store.AssertNotCalled(t, "CreateWithTickets", mock.Anything, mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "PublishOrderPlaced", mock.Anything, mock.Anything)
	flights.AssertExpectations(t)
}

func TestPlaceOrder_SeatTakenPropagates(t *testing.T) {
	flights := &MockFlightResolver{}
	store := &MockOrderStore{}
	pub := &MockPublisher{}
	svc := NewOrderService(flights, store, pub)

	ctx := context.Background()
	grid := repository.FlightBookingInfo{Rows: 30, SeatsInRow: 6, Route: "AMS -> OSL"}
	reqs := []repository.TicketRequest{{FlightID: 4, Row: 3, Seat: 5}}

	flights.On("BookingInfo", ctx, uint64(4)).Return(grid, nil).Once()
	store.On("CreateWithTickets", ctx, uint64(1), reqs).
		Return(model.Order{}, nil, &repository.SeatTakenError{FlightID: 4, Row: 3, Seat: 5}).Once()

	_, _, err := svc.PlaceOrder(ctx, 1, reqs)

	var ste *repository.SeatTakenError
	assert.ErrorAs(t, err, &ste)
	assert.Equal(t, uint32(3), ste.Row)
	// No event when the transaction rolled back.
	pub.AssertNotCalled(t, "PublishOrderPlaced", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestPlaceOrder_Success(t *testing.T) {
	flights := &MockFlightResolver{}
	store := &MockOrderStore{}
	pub := &MockPublisher{}
	svc := NewOrderService(flights, store, pub)

	ctx := context.Background()
	grid := repository.FlightBookingInfo{Rows: 30, SeatsInRow: 6, Route: "AMS -> OSL"}
	reqs := []repository.TicketRequest{
		{FlightID: 4, Row: 1, Seat: 1},
		{FlightID: 4, Row: 30, Seat: 6},
	}
	createdAt := time.Date(2025, 5, 4, 12, 0, 0, 0, time.UTC)
	order := model.Order{ID: 9, UserID: 1, CreatedAt: createdAt}
	tickets := []model.Ticket{
		{ID: 21, Row: 1, Seat: 1, FlightID: 4, OrderID: 9},
		{ID: 22, Row: 30, Seat: 6, FlightID: 4, OrderID: 9},
	}

	flights.On("BookingInfo", ctx, uint64(4)).Return(grid, nil).Once()
	store.On("CreateWithTickets", ctx, uint64(1), reqs).Return(order, tickets, nil).Once()
	pub.On("PublishOrderPlaced", ctx, mock.MatchedBy(func(ev queue.OrderPlacedEvent) bool {
		return ev.OrderID == 9 && ev.TicketCount == 2 && ev.Tickets[0].Route == "AMS -> OSL"
	})).Return(nil).Once()

	got, gotTickets, err := svc.PlaceOrder(ctx, 1, reqs)

	assert.NoError(t, err)
	assert.Equal(t, createdAt, got.CreatedAt)
	// Tickets come back in request order.
	assert.Equal(t, uint32(1), gotTickets[0].Row)
	assert.Equal(t, uint32(30), gotTickets[1].Row)
	flights.AssertExpectations(t)
	store.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestPlaceOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	flights := &MockFlightResolver{}
	store := &MockOrderStore{}
	pub := &MockPublisher{}
	svc := NewOrderService(flights, store, pub)

	ctx := context.Background()
	grid := repository.FlightBookingInfo{Rows: 30, SeatsInRow: 6, Route: "AMS -> OSL"}
	reqs := []repository.TicketRequest{{FlightID: 4, Row: 2, Seat: 2}}
	order := model.Order{ID: 5, UserID: 8, CreatedAt: time.Now().UTC()}
	tickets := []model.Ticket{{ID: 31, Row: 2, Seat: 2, FlightID: 4, OrderID: 5}}

	flights.On("BookingInfo", ctx, uint64(4)).Return(grid, nil).Once()
	store.On("CreateWithTickets", ctx, uint64(8), reqs).Return(order, tickets, nil).Once()
	pub.On("PublishOrderPlaced", ctx, mock.Anything).Return(errors.New("broker down")).Once()

	got, _, err := svc.PlaceOrder(ctx, 8, reqs)

	assert.NoError(t, err)
	assert.Equal(t, uint64(5), got.ID)
	pub.AssertExpectations(t)
}
