package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{StatusPending, StatusPaymentSubmitted, true},
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPaymentSubmitted, StatusConfirmed, true},
		{StatusPaymentSubmitted, StatusCancelled, true},
		{StatusPaymentSubmitted, StatusPending, false},
		{StatusPaymentSubmitted, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		// Повторная установка текущего статуса - no-op, разрешена всегда
		{StatusPending, StatusPending, true},
		{StatusCancelled, StatusCancelled, true},
		{StatusCompleted, StatusCompleted, true},
	}

	for _, tt := range tests {
		got := CanTransition(tt.from, tt.to)
		assert.Equal(t, tt.want, got, "%s -> %s", tt.from, tt.to)
	}
}

func TestIsBackwardPaymentTransition(t *testing.T) {
	assert.True(t, IsBackwardPaymentTransition(PaymentPaid, PaymentPartial))
	assert.True(t, IsBackwardPaymentTransition(PaymentPaid, PaymentPending))
	assert.True(t, IsBackwardPaymentTransition(PaymentPartial, PaymentPending))

	assert.False(t, IsBackwardPaymentTransition(PaymentPending, PaymentPartial))
	assert.False(t, IsBackwardPaymentTransition(PaymentPartial, PaymentPaid))
	assert.False(t, IsBackwardPaymentTransition(PaymentPending, PaymentPending))
	// Для cancelled порядок не определен
	assert.False(t, IsBackwardPaymentTransition(PaymentPaid, PaymentCancelled))
	assert.False(t, IsBackwardPaymentTransition(PaymentCancelled, PaymentPending))
}

func TestBookingStatusValid(t *testing.T) {
	for _, s := range []BookingStatus{
		StatusPending, StatusPaymentSubmitted, StatusConfirmed, StatusCompleted, StatusCancelled,
	} {
		assert.True(t, s.Valid(), "%s", s)
	}
	assert.False(t, BookingStatus("unknown").Valid())
	assert.False(t, BookingStatus("").Valid())
}

func TestShiftValid(t *testing.T) {
	for _, s := range []Shift{ShiftMorning, ShiftAfternoon, ShiftEvening, ShiftFullDay} {
		assert.True(t, s.Valid(), "%s", s)
	}
	assert.False(t, Shift("night").Valid())
}

func TestCanBeUpdated(t *testing.T) {
	assert.True(t, (&Booking{BookingStatus: StatusPending}).CanBeUpdated())
	assert.True(t, (&Booking{BookingStatus: StatusConfirmed}).CanBeUpdated())
	assert.False(t, (&Booking{BookingStatus: StatusCancelled}).CanBeUpdated())
	assert.False(t, (&Booking{BookingStatus: StatusCompleted}).CanBeUpdated())
}

func TestIsActive(t *testing.T) {
	assert.True(t, (&Booking{BookingStatus: StatusPending}).IsActive())
	assert.True(t, (&Booking{BookingStatus: StatusCompleted}).IsActive())
	assert.False(t, (&Booking{BookingStatus: StatusCancelled}).IsActive())
}
