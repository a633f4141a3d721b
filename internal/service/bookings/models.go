package bookings

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// Details полная карточка бронирования для админки и инвойса.
// Денежные поля - снимки на момент бронирования; balance_due считается
// на лету от подтвержденных платежей и никогда не отрицателен.
type Details struct {
	Booking  *domain.Booking
	Customer *domain.Customer
	Hall     *domain.Hall
	Payments []*domain.Payment

	VerifiedPaidSum   decimal.Decimal
	AdvancePercentage decimal.Decimal
	AdvanceAmount     decimal.Decimal
	BalanceDue        decimal.Decimal

	Currency       string
	CurrencySymbol string
}
