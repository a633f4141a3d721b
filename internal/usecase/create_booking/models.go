package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	// Заказчик (get-or-create по телефону)
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

	// Позиции
	MenuIDs    []int64
	ServiceIDs []int64

	SpecialRequests *string

	// Источник: public wizard (user) или админка (admin)
	AddedBy domain.AddedBy
	// Актор для аудита (логин оператора или "public")
	Actor string
	// Токен черновика визарда; удаляется после успешного создания
	DraftToken *string
}

// Response модель ответа с созданным бронированием
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

	Menus    []domain.BookingMenu
	Services []domain.BookingService

	CreatedAt time.Time
	UpdatedAt time.Time
}
