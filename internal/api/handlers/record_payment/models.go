package record_payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/service/payments"
)

// RecordPaymentRequest HTTP request model
type RecordPaymentRequest struct {
	PaidAmount    string  `json:"paidAmount"`
	MethodName    string  `json:"methodName"`
	TransactionID *string `json:"transactionId,omitempty"`
	PaymentDate   string  `json:"paymentDate"` // "2025-06-01"
	SlipFile      *string `json:"slipFile,omitempty"`
}

// PaymentResponse HTTP response model
type PaymentResponse struct {
	ID            int64   `json:"id"`
	BookingID     int64   `json:"bookingId"`
	PaidAmount    string  `json:"paidAmount"`
	Status        string  `json:"status"`
	MethodName    string  `json:"methodName"`
	TransactionID *string `json:"transactionId,omitempty"`
	PaymentDate   string  `json:"paymentDate"`
	SlipFile      *string `json:"slipFile,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RecordPaymentRequest) ToServiceRequest(bookingID int64, actor string) (*payments.RecordRequest, error) {
	amount, err := decimal.NewFromString(r.PaidAmount)
	if err != nil {
		return nil, err
	}
	paymentDate, err := time.Parse(domain.DateFormat, r.PaymentDate)
	if err != nil {
		return nil, err
	}

	return &payments.RecordRequest{
		BookingID:     bookingID,
		PaidAmount:    amount,
		MethodName:    r.MethodName,
		TransactionID: r.TransactionID,
		PaymentDate:   paymentDate,
		SlipFile:      r.SlipFile,
		Actor:         actor,
	}, nil
}

// FromPayment конвертирует платеж в HTTP response
func FromPayment(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:            p.ID,
		BookingID:     p.BookingID,
		PaidAmount:    p.PaidAmount.StringFixed(2),
		Status:        string(p.Status),
		MethodName:    p.MethodName,
		TransactionID: p.TransactionID,
		PaymentDate:   p.PaymentDate.Format(domain.DateFormat),
		SlipFile:      p.SlipFile,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}
