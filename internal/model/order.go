package model

import "time"

// Order groups the tickets a user purchased in one transaction.
// CreatedAt is assigned by the database at commit time and never
// changes afterwards.
type Order struct {
	ID        uint64    // orders.id
	UserID    uint64    // orders.user_id
	CreatedAt time.Time // orders.created_at
}

// Ticket is a single sold seat on a flight. The (flight, row, seat)
// triple is unique across all tickets; deleting an order cascades to
// its tickets while the referenced flight is left untouched.
//
// Fields:
//  ID       – primary key identifier.
//  Row      – seat row, within [1, airplane.rows].
//  Seat     – seat number in the row, within [1, airplane.seats_in_row].
//  FlightID – flight the seat is sold on.
//  OrderID  – owning order.
type Ticket struct {
	ID       uint64 // tickets.id
	Row      uint32 // tickets.row
	Seat     uint32 // tickets.seat
	FlightID uint64 // tickets.flight_id
	OrderID  uint64 // tickets.order_id
}
