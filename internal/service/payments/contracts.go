package payments

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	ListByBookingID(ctx context.Context, bookingID int64) ([]*domain.Payment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentRecordStatus) error
	SumVerifiedByBookingID(ctx context.Context, bookingID int64) (decimal.Decimal, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
}

// AuditRepository интерфейс журнала аудита
type AuditRepository interface {
	Insert(ctx context.Context, entry domain.AuditEntry) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
