package create_booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-VenueService/internal/service/pricing"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CountActiveBySlot(ctx context.Context, hallID int64, date time.Time, shift domain.Shift, excludeID *int64) (int, error)
	MaxSequenceForDay(ctx context.Context, day time.Time) (int, error)
	InsertMenuItems(ctx context.Context, bookingID int64, items []domain.BookingMenu) error
	InsertServiceItems(ctx context.Context, bookingID int64, items []domain.BookingService) error
}

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	GetHall(ctx context.Context, id int64) (*domain.Hall, error)
	GetHallMenuIDs(ctx context.Context, hallID int64) ([]int64, error)
}

// CustomerRepository интерфейс репозитория заказчиков
type CustomerRepository interface {
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
}

// AuditRepository интерфейс журнала аудита
type AuditRepository interface {
	Insert(ctx context.Context, entry domain.AuditEntry) error
}

// PricingService интерфейс движка расчёта стоимости
type PricingService interface {
	CalculateTotal(ctx context.Context, hallID int64, menuIDs []int64, guests int, serviceIDs []int64) (*pricing.Quote, error)
	CalculateAdvance(ctx context.Context, grandTotal decimal.Decimal) (*pricing.Advance, error)
}

// DraftStore интерфейс хранилища черновиков визарда
type DraftStore interface {
	Delete(ctx context.Context, token string) error
}

// Notifier интерфейс клиента сервиса уведомлений
type Notifier interface {
	SendStatusChange(ctx context.Context, event *notifyservice.StatusChangeEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
