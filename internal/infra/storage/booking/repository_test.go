package booking

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSlotConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "active slot index violation",
			err:  &pq.Error{Code: pgUniqueViolation, Constraint: slotUniqueConstraint},
			want: true,
		},
		{
			name: "wrapped active slot index violation",
			err:  fmt.Errorf("insert: %w", &pq.Error{Code: pgUniqueViolation, Constraint: slotUniqueConstraint}),
			want: true,
		},
		{
			name: "booking number collision is not a slot conflict",
			err:  &pq.Error{Code: pgUniqueViolation, Constraint: "bookings_booking_number_key"},
			want: false,
		},
		{
			name: "serialization failure",
			err:  &pq.Error{Code: "40001"},
			want: false,
		},
		{
			name: "plain error",
			err:  fmt.Errorf("connection reset"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSlotConflict(tt.err))
		})
	}
}
