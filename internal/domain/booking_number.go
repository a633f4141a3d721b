package domain

import (
	"fmt"
	"regexp"
	"time"
)

// Формат номера бронирования: BK-YYYYMMDD-NNNN.
// Последовательность NNNN уникальна и строго возрастает в пределах
// календарного дня, с нуля для каждого нового дня.

var bookingNumberRe = regexp.MustCompile(`^BK-(\d{8})-(\d{4})$`)

// FormatBookingNumber собирает номер бронирования из даты и порядкового номера
func FormatBookingNumber(date time.Time, seq int) string {
	return fmt.Sprintf("BK-%s-%04d", date.Format(BookingDateFormat), seq)
}

// ValidBookingNumber проверяет номер на соответствие формату BK-YYYYMMDD-NNNN
func ValidBookingNumber(number string) bool {
	return bookingNumberRe.MatchString(number)
}

// BookingNumberSequence извлекает порядковый номер из номера бронирования.
// Возвращает 0 для номера неизвестного формата.
func BookingNumberSequence(number string) int {
	m := bookingNumberRe.FindStringSubmatch(number)
	if m == nil {
		return 0
	}
	var seq int
	_, _ = fmt.Sscanf(m[2], "%d", &seq)
	return seq
}
