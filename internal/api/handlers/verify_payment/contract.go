package verify_payment

import "context"

type PaymentsService interface {
	Verify(ctx context.Context, paymentID int64, actor string) error
	Reject(ctx context.Context, paymentID int64, actor string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
