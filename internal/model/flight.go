package model

import "time"

// Crew is a member of flight personnel. A crew member may be
// assigned to many flights through the flight_crew join table.
type Crew struct {
	ID        uint64 // crews.id
	FirstName string // crews.first_name
	LastName  string // crews.last_name
}

// FullName joins first and last name for display.
func (c Crew) FullName() string { return c.FirstName + " " + c.LastName }

// Flight is a scheduled trip along a route operated by a specific
// airplane. ArrivalTime must be strictly later than DepartureTime;
// ValidateFlightTimes enforces this before any write.
//
// Fields:
//  ID            – primary key identifier.
//  RouteID       – route being flown.
//  AirplaneID    – airplane operating the flight.
//  DepartureTime – scheduled departure (UTC).
//  ArrivalTime   – scheduled arrival (UTC), after departure.
type Flight struct {
	ID            uint64    // flights.id
	RouteID       uint64    // flights.route_id
	AirplaneID    uint64    // flights.airplane_id
	DepartureTime time.Time // flights.departure_time
	ArrivalTime   time.Time // flights.arrival_time
}
