package invoices

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// Invoice числовой контракт счёта по бронированию. Все суммы - снимки
// из строки бронирования плюс расчётные поля (advance, balance_due).
type Invoice struct {
	BookingNumber string
	IssuedAt      time.Time

	CustomerName    string
	CustomerPhone   string
	CustomerEmail   *string
	CustomerAddress *string

	HallName  string
	EventDate time.Time
	Shift     domain.Shift
	EventType string
	Guests    int

	MenuLines    []domain.BookingMenu
	ServiceLines []domain.BookingService

	HallPrice     decimal.Decimal
	MenuTotal     decimal.Decimal
	ServicesTotal decimal.Decimal
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	GrandTotal    decimal.Decimal

	AdvancePercentage decimal.Decimal
	AdvanceAmount     decimal.Decimal
	AdvanceReceived   bool
	VerifiedPaidSum   decimal.Decimal
	BalanceDue        decimal.Decimal

	Currency       string
	CurrencySymbol string

	BookingStatus domain.BookingStatus
	PaymentStatus domain.PaymentStatus
}
