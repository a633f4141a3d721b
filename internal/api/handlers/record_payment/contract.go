package record_payment

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/service/payments"
)

type PaymentsService interface {
	Record(ctx context.Context, req *payments.RecordRequest) (*domain.Payment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
