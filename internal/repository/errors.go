// Package repository defines error values shared across repositories.
// These sentinels let handlers distinguish failure scenarios: a
// duplicate unique key becomes an HTTP 409, an absent row a 404, and
// so on, without the handlers inspecting driver error strings.
package repository

import (
	"fmt"
	"strings"
)

// SeatTakenError reports a ticket insert that lost the race for a
// seat: some committed ticket already holds (flight, row, seat).
type SeatTakenError struct {
	FlightID uint64
	Row      uint32
	Seat     uint32
}

func (e *SeatTakenError) Error() string {
	return fmt.Sprintf("seat %d in row %d on flight %d is already taken", e.Seat, e.Row, e.FlightID)
}

// isDuplicateKey reports whether err is a MySQL duplicate entry error
// (error 1062) raised by a UNIQUE constraint.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

// isForeignKeyViolation reports whether err is a MySQL foreign key
// failure (error 1452), i.e. a referenced row does not exist.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1452")
}
