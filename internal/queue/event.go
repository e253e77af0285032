// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketRef is one sold seat inside an OrderPlacedEvent.
type TicketRef struct {
	FlightID uint64 `json:"flight_id"`
	Route    string `json:"route"`
	Row      uint32 `json:"row"`
	Seat     uint32 `json:"seat"`
}

// OrderPlacedEvent is published after an order commits. It carries
// enough information for downstream consumers to log or notify without
// querying the primary database.
type OrderPlacedEvent struct {
	OrderID     uint64      `json:"order_id"`
	UserID      uint64      `json:"user_id"`
	TicketCount int         `json:"ticket_count"`
	Tickets     []TicketRef `json:"tickets"`
	PlacedAt    string      `json:"placed_at"`
}
