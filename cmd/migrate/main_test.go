package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// Схема должна принимать ровно те же значения enum-полей, что и доменный слой,
// иначе валидный запрос падает на INSERT с нарушением CHECK-ограничения.

func readMigration(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "migrations", name))
	require.NoError(t, err)
	return string(data)
}

func checkList(t *testing.T, sql, column string) string {
	t.Helper()
	re := regexp.MustCompile(fmt.Sprintf(`CHECK \(%s IN \(([^)]+)\)\)`, column))
	match := re.FindStringSubmatch(sql)
	require.NotNil(t, match, "CHECK constraint for column %q not found", column)
	return match[1]
}

func TestBookingShiftCheckCoversAllShifts(t *testing.T) {
	sql := readMigration(t, "000002_create_booking_tables.up.sql")
	list := checkList(t, sql, "shift")

	for _, shift := range []domain.Shift{domain.ShiftMorning, domain.ShiftAfternoon, domain.ShiftEvening, domain.ShiftFullDay} {
		require.Contains(t, list, fmt.Sprintf("'%s'", shift), "shift %q is valid in domain but rejected by the bookings.shift CHECK constraint", shift)
	}
}

func TestBookingStatusChecksCoverDomainValues(t *testing.T) {
	sql := readMigration(t, "000002_create_booking_tables.up.sql")

	bookingList := checkList(t, sql, "booking_status")
	for _, status := range []domain.BookingStatus{domain.StatusPending, domain.StatusPaymentSubmitted, domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCancelled} {
		require.Contains(t, bookingList, fmt.Sprintf("'%s'", status))
	}

	paymentList := checkList(t, sql, "payment_status")
	for _, status := range []domain.PaymentStatus{domain.PaymentPending, domain.PaymentPartial, domain.PaymentPaid, domain.PaymentCancelled} {
		require.Contains(t, paymentList, fmt.Sprintf("'%s'", status))
	}
}
