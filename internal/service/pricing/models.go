package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// Quote результат расчёта стоимости бронирования.
// Инварианты: Subtotal = HallPrice + MenuTotal + ServicesTotal,
// GrandTotal = Subtotal + TaxAmount (точные, на decimal-арифметике).
type Quote struct {
	HallPrice     decimal.Decimal
	MenuTotal     decimal.Decimal
	ServicesTotal decimal.Decimal
	Subtotal      decimal.Decimal
	TaxRate       decimal.Decimal // процент на момент расчёта
	TaxAmount     decimal.Decimal
	GrandTotal    decimal.Decimal

	Currency       string
	CurrencySymbol string

	// Snapshot-строки для создания позиций бронирования:
	// цены зафиксированы на момент расчёта.
	MenuLines    []domain.BookingMenu
	ServiceLines []domain.BookingService
}

// Advance расчёт предоплаты
type Advance struct {
	Percentage decimal.Decimal
	Amount     decimal.Decimal
}
