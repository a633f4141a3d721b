package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBookingNumber(t *testing.T) {
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "BK-20260315-0001", FormatBookingNumber(day, 1))
	assert.Equal(t, "BK-20260315-0042", FormatBookingNumber(day, 42))
	assert.Equal(t, "BK-20260315-9999", FormatBookingNumber(day, 9999))
}

func TestValidBookingNumber(t *testing.T) {
	assert.True(t, ValidBookingNumber("BK-20260315-0001"))
	assert.True(t, ValidBookingNumber("BK-20251231-0100"))

	assert.False(t, ValidBookingNumber("BK-2026315-0001"))
	assert.False(t, ValidBookingNumber("BK-20260315-001"))
	assert.False(t, ValidBookingNumber("bk-20260315-0001"))
	assert.False(t, ValidBookingNumber("BK-20260315-0001x"))
	assert.False(t, ValidBookingNumber(""))
}

func TestBookingNumberSequence(t *testing.T) {
	assert.Equal(t, 42, BookingNumberSequence("BK-20260315-0042"))
	assert.Equal(t, 1, BookingNumberSequence("BK-20260315-0001"))
	assert.Equal(t, 0, BookingNumberSequence("garbage"))
}
