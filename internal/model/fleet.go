package model

// AirplaneType groups airplanes by airframe family (e.g. "Civil
// aircraft"). Type names are unique across the system.
type AirplaneType struct {
	ID   uint64 // airplane_types.id
	Name string // airplane_types.name (unique)
}

// Airplane describes a physical aircraft and its cabin layout.
// Rows and SeatsInRow define the seat grid that every ticket on a
// flight operated by this airplane is validated against.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – unique airplane name (e.g. "Airbus A320neo").
//  Rows           – number of seat rows, must be positive.
//  SeatsInRow     – seats per row, must be positive.
//  AirplaneTypeID – reference into airplane_types.
type Airplane struct {
	ID             uint64 // airplanes.id
	Name           string // airplanes.name (unique)
	Rows           uint32 // airplanes.rows
	SeatsInRow     uint32 // airplanes.seats_in_row
	AirplaneTypeID uint64 // airplanes.airplane_type_id
}

// Capacity returns the total seat count of the airplane.
func (a Airplane) Capacity() uint32 { return a.Rows * a.SeatsInRow }
