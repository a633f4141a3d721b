package update_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// Request модель запроса на редактирование бронирования.
// Форма редактирования отправляет полное состояние: позиции меню и услуг
// заменяются целиком (delete-then-reinsert), суммы пересчитываются с нуля -
// присланные клиентом итоги никогда не используются.
type Request struct {
	BookingID int64

	// Заказчик
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   *string
	CustomerAddress *string

	// Слот
	HallID    int64
	EventDate time.Time
	Shift     domain.Shift
	EventType string
	Guests    int

	// Позиции (полная замена)
	MenuIDs    []int64
	ServiceIDs []int64

	SpecialRequests *string

	// Статусы; переход booking_status проверяется по whitelist,
	// понижение payment_status разрешено, но помечается в аудите
	BookingStatus          domain.BookingStatus
	PaymentStatus          domain.PaymentStatus
	AdvancePaymentReceived bool

	AddedBy domain.AddedBy
	// Актор для аудита
	Actor string
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID            int64
	BookingNumber string
	CustomerID    int64
	HallID        int64
	EventDate     time.Time
	Shift         domain.Shift
	EventType     string
	Guests        int

	HallPrice     decimal.Decimal
	MenuTotal     decimal.Decimal
	ServicesTotal decimal.Decimal
	Subtotal      decimal.Decimal
	TaxRate       decimal.Decimal
	TaxAmount     decimal.Decimal
	GrandTotal    decimal.Decimal

	AdvancePercentage decimal.Decimal
	AdvanceAmount     decimal.Decimal

	Currency       string
	CurrencySymbol string

	SpecialRequests *string
	BookingStatus   domain.BookingStatus
	PaymentStatus   domain.PaymentStatus

	AdvancePaymentReceived bool

	Menus    []domain.BookingMenu
	Services []domain.BookingService

	CreatedAt time.Time
	UpdatedAt time.Time
}
