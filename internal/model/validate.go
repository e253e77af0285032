package model

import (
	"fmt"
	"strings"
	"time"
)

// FieldErrors collects validation failures keyed by the offending
// attribute name. It implements error so it can travel through the
// usual error returns; handlers render it as a per-field JSON object.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// ValidateFlightTimes checks that both timestamps are set and that
// arrival is strictly later than departure. Equal timestamps fail.
func ValidateFlightTimes(departure, arrival time.Time) error {
	fe := FieldErrors{}
	if departure.IsZero() {
		fe["departure_time"] = "departure_time must be set"
	}
	if arrival.IsZero() {
		fe["arrival_time"] = "arrival_time must be set"
	}
	if len(fe) > 0 {
		return fe
	}
	if !arrival.After(departure) {
		fe["arrival_time"] = "arrival time must be later than departure time"
		return fe
	}
	return nil
}

// ValidateTicketPlacement checks a requested row and seat against an
// airplane's seat grid. Row and seat are validated independently so
// that a caller can report every violation at once; each message
// names the legal range [1, max] and the value that was supplied.
func ValidateTicketPlacement(row, seat, rows, seatsInRow uint32) error {
	fe := FieldErrors{}
	if row < 1 || row > rows {
		fe["row"] = fmt.Sprintf("row number must be in the range [1, %d], but got %d", rows, row)
	}
	if seat < 1 || seat > seatsInRow {
		fe["seat"] = fmt.Sprintf("seat number must be in the range [1, %d], but got %d", seatsInRow, seat)
	}
	if len(fe) > 0 {
		return fe
	}
	return nil
}
