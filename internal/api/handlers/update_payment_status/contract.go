package update_payment_status

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

type BookingsService interface {
	UpdatePaymentStatus(ctx context.Context, id int64, newStatus domain.PaymentStatus, actor string) error
	SetAdvanceReceived(ctx context.Context, id int64, received bool, actor string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
