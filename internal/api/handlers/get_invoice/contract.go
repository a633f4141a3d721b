package get_invoice

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/service/invoices"
)

type InvoicesService interface {
	Build(ctx context.Context, bookingID int64) (*invoices.Invoice, error)
	RenderPDF(inv *invoices.Invoice) ([]byte, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
