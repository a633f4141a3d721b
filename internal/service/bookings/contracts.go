package bookings

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/integrations/notifyservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByNumber(ctx context.Context, number string) (*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	GetMenuItems(ctx context.Context, bookingID int64) ([]domain.BookingMenu, error)
	GetServiceItems(ctx context.Context, bookingID int64) ([]domain.BookingService, error)
	DeleteMenuItems(ctx context.Context, bookingID int64) error
	DeleteServiceItems(ctx context.Context, bookingID int64) error
	Delete(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
	UpdateAdvanceReceived(ctx context.Context, id int64, received bool) error
}

// CustomerRepository интерфейс репозитория заказчиков
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// CatalogRepository интерфейс справочника залов
type CatalogRepository interface {
	GetHall(ctx context.Context, id int64) (*domain.Hall, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	ListByBookingID(ctx context.Context, bookingID int64) ([]*domain.Payment, error)
	SumVerifiedByBookingID(ctx context.Context, bookingID int64) (decimal.Decimal, error)
	DeleteByBookingID(ctx context.Context, bookingID int64) error
}

// SettingsRepository интерфейс хранилища настроек
type SettingsRepository interface {
	Load(ctx context.Context) (domain.Settings, error)
}

// AuditRepository интерфейс журнала аудита
type AuditRepository interface {
	Insert(ctx context.Context, entry domain.AuditEntry) error
}

// Notifier интерфейс клиента сервиса уведомлений
type Notifier interface {
	SendStatusChange(ctx context.Context, event *notifyservice.StatusChangeEvent) error
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
