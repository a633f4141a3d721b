package quote_booking

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VenueService/internal/service/pricing"
)

type PricingService interface {
	CalculateTotal(ctx context.Context, hallID int64, menuIDs []int64, guests int, serviceIDs []int64) (*pricing.Quote, error)
	CalculateAdvance(ctx context.Context, grandTotal decimal.Decimal) (*pricing.Advance, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
