package invoices

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/service/bookings"
)

// BookingsService интерфейс сервиса бронирований - источник карточки
// со всеми суммами для счёта
type BookingsService interface {
	GetByID(ctx context.Context, id int64) (*bookings.Details, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
