package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecordStatus статус отдельного платежа (не путать с PaymentStatus бронирования)
type PaymentRecordStatus string

const (
	PaymentRecordPending  PaymentRecordStatus = "pending"
	PaymentRecordVerified PaymentRecordStatus = "verified"
	PaymentRecordRejected PaymentRecordStatus = "rejected"
)

// Payment платеж по бронированию.
// В balance_due учитываются только платежи со статусом verified.
type Payment struct {
	ID            int64
	BookingID     int64
	PaidAmount    decimal.Decimal
	Status        PaymentRecordStatus
	MethodName    string
	TransactionID *string
	PaymentDate   time.Time
	SlipFile      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Valid returns true for a known payment record status
func (s PaymentRecordStatus) Valid() bool {
	switch s {
	case PaymentRecordPending, PaymentRecordVerified, PaymentRecordRejected:
		return true
	}
	return false
}
