package update_booking_status

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

type BookingsService interface {
	UpdateStatus(ctx context.Context, id int64, newStatus domain.BookingStatus, actor string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
