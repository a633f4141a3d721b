package get_booking

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/service/bookings"
)

type BookingsService interface {
	GetByID(ctx context.Context, id int64) (*bookings.Details, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
