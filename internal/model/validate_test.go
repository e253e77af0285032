package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFlightTimes(t *testing.T) {
	dep := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("arrival after departure passes", func(t *testing.T) {
		assert.NoError(t, ValidateFlightTimes(dep, dep.Add(2*time.Hour)))
	})

	t.Run("equal timestamps fail", func(t *testing.T) {
		err := ValidateFlightTimes(dep, dep)
		require.Error(t, err)
		fe, ok := err.(FieldErrors)
		require.True(t, ok)
		assert.Contains(t, fe, "arrival_time")
	})

	t.Run("arrival before departure fails", func(t *testing.T) {
		assert.Error(t, ValidateFlightTimes(dep, dep.Add(-time.Minute)))
	})

	t.Run("missing timestamps reported per field", func(t *testing.T) {
		err := ValidateFlightTimes(time.Time{}, time.Time{})
		require.Error(t, err)
		fe := err.(FieldErrors)
		assert.Contains(t, fe, "departure_time")
		assert.Contains(t, fe, "arrival_time")
	})
}

func TestValidateTicketPlacement(t *testing.T) {
	const rows, seats = 30, 6

	cases := []struct {
		name      string
		row, seat uint32
		bad       []string
	}{
		{"first row first seat", 1, 1, nil},
		{"last row last seat", rows, seats, nil},
		{"row zero", 0, 3, []string{"row"}},
		{"row past last", rows + 1, 3, []string{"row"}},
		{"seat zero", 3, 0, []string{"seat"}},
		{"seat past last", 3, seats + 1, []string{"seat"}},
		{"both out of range", rows + 1, seats + 1, []string{"row", "seat"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTicketPlacement(tc.row, tc.seat, rows, seats)
			if len(tc.bad) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			fe, ok := err.(FieldErrors)
			require.True(t, ok)
			assert.Len(t, fe, len(tc.bad))
			for _, field := range tc.bad {
				assert.Contains(t, fe, field)
			}
		})
	}

	t.Run("message names the legal range", func(t *testing.T) {
		err := ValidateTicketPlacement(11, 1, 10, 6)
		require.Error(t, err)
		fe := err.(FieldErrors)
		assert.Contains(t, fe["row"], "[1, 10]")
		assert.Contains(t, fe["row"], "got 11")
	})
}

func TestAirplaneCapacity(t *testing.T) {
	for _, tc := range []struct{ rows, seats, want uint32 }{
		{30, 6, 180},
		{1, 1, 1},
		{52, 9, 468},
	} {
		a := Airplane{Rows: tc.rows, SeatsInRow: tc.seats}
		assert.Equal(t, tc.want, a.Capacity())
	}
}
