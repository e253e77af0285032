package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateKey(t *testing.T) {
	dup := errors.New("Error 1062 (23000): Duplicate entry '3-5-5' for key 'tickets.uq_tickets_seat'")
	assert.True(t, isDuplicateKey(dup))
	assert.False(t, isDuplicateKey(errors.New("driver: bad connection")))
	assert.False(t, isDuplicateKey(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	fk := errors.New("Error 1452 (23000): Cannot add or update a child row: a foreign key constraint fails (`airport`.`flight_crew`, CONSTRAINT `flight_crew_ibfk_2`)")
	assert.True(t, isForeignKeyViolation(fk))

	// Other insert failures must not be mistaken for a missing
	// reference; callers pass them through unchanged.
	assert.False(t, isForeignKeyViolation(errors.New("Error 1062 (23000): Duplicate entry")))
	assert.False(t, isForeignKeyViolation(errors.New("invalid connection")))
	assert.False(t, isForeignKeyViolation(nil))
}

func TestSeatTakenErrorMessage(t *testing.T) {
	err := &SeatTakenError{FlightID: 7, Row: 5, Seat: 5}
	assert.Equal(t, "seat 5 in row 5 on flight 7 is already taken", err.Error())
}
