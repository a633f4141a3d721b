package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending          BookingStatus = "pending"
	StatusPaymentSubmitted BookingStatus = "payment_submitted"
	StatusConfirmed        BookingStatus = "confirmed"
	StatusCancelled        BookingStatus = "cancelled"
	StatusCompleted        BookingStatus = "completed"
)

// PaymentStatus represents the aggregate payment state of a booking
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPartial   PaymentStatus = "partial"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Shift именованный временной слот дня - единица бронирования зала.
// fullday - отдельное значение слота и НЕ конфликтует с morning/afternoon/evening
// на ту же дату (политика унаследована от продукта, см. DESIGN.md).
type Shift string

const (
	ShiftMorning   Shift = "morning"
	ShiftAfternoon Shift = "afternoon"
	ShiftEvening   Shift = "evening"
	ShiftFullDay   Shift = "fullday"
)

// Booking represents a hall booking with snapshot totals
type Booking struct {
	ID             int64
	BookingNumber  string
	CustomerID     int64
	HallID         int64
	EventDate      time.Time
	Shift          Shift
	EventType      string
	NumberOfGuests int

	// Денормализованные суммы, зафиксированные на момент бронирования.
	// Инвариант: Subtotal = HallPrice + MenuTotal + ServicesTotal,
	// GrandTotal = Subtotal + TaxAmount.
	HallPrice     decimal.Decimal
	MenuTotal     decimal.Decimal
	ServicesTotal decimal.Decimal
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	GrandTotal    decimal.Decimal

	SpecialRequests        *string
	BookingStatus          BookingStatus
	PaymentStatus          PaymentStatus
	AdvancePaymentReceived bool

	Menus    []BookingMenu
	Services []BookingService

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingMenu позиция меню в бронировании.
// Цена за человека снимается (snapshot) в момент бронирования - последующие
// изменения мастер-таблицы меню не влияют на существующие бронирования.
type BookingMenu struct {
	ID             int64
	BookingID      int64
	MenuID         int64
	MenuName       string
	PricePerPerson decimal.Decimal
	NumberOfGuests int
	TotalPrice     decimal.Decimal
}

// AddedBy источник добавления позиции услуги
type AddedBy string

const (
	AddedByUser  AddedBy = "user"
	AddedByAdmin AddedBy = "admin"
)

// BookingService позиция дополнительной услуги в бронировании (snapshot цены и названия)
type BookingService struct {
	ID          int64
	BookingID   int64
	ServiceID   int64
	ServiceName string
	Price       decimal.Decimal
	Category    *string
	AddedBy     AddedBy
	Quantity    int
	TotalPrice  decimal.Decimal
}

// IsTerminal returns true if no further status transitions are allowed
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Valid returns true for a known booking status
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaymentSubmitted, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Valid returns true for a known payment status
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPartial, PaymentPaid, PaymentCancelled:
		return true
	}
	return false
}

// Valid returns true for a known shift value
func (s Shift) Valid() bool {
	switch s {
	case ShiftMorning, ShiftAfternoon, ShiftEvening, ShiftFullDay:
		return true
	}
	return false
}

// CanTransition проверяет допустимость перехода статуса бронирования.
// Явный whitelist: pending -> payment_submitted/confirmed/cancelled,
// payment_submitted -> confirmed/cancelled, confirmed -> completed/cancelled.
// Повторная установка текущего статуса разрешена (no-op).
func CanTransition(from, to BookingStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusPending:
		return to == StatusPaymentSubmitted || to == StatusConfirmed || to == StatusCancelled
	case StatusPaymentSubmitted:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}

// PaymentStatusLevel возвращает порядок статуса оплаты для обнаружения
// обратных переходов (pending=0, partial=1, paid=2). Для cancelled порядок
// не определен - возвращает -1.
func PaymentStatusLevel(s PaymentStatus) int {
	switch s {
	case PaymentPending:
		return 0
	case PaymentPartial:
		return 1
	case PaymentPaid:
		return 2
	default:
		return -1
	}
}

// IsBackwardPaymentTransition сообщает, что переход понижает статус оплаты.
// Обратные переходы разрешены, но помечаются в аудите для операторов.
func IsBackwardPaymentTransition(from, to PaymentStatus) bool {
	fromLvl, toLvl := PaymentStatusLevel(from), PaymentStatusLevel(to)
	return fromLvl >= 0 && toLvl >= 0 && toLvl < fromLvl
}

// IsActive returns true if the booking occupies its hall/date/shift slot
func (b *Booking) IsActive() bool {
	return b.BookingStatus != StatusCancelled
}

// CanBeUpdated returns true if the booking can still be edited
func (b *Booking) CanBeUpdated() bool {
	return !b.BookingStatus.IsTerminal()
}

// BookingsFilter фильтр для выборки бронирований в админке
type BookingsFilter struct {
	VenueID       *int64
	HallID        *int64
	StartDate     *time.Time
	EndDate       *time.Time
	BookingStatus *BookingStatus
	PaymentStatus *PaymentStatus
}
