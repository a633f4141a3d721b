package get_draft

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

type DraftsService interface {
	Get(ctx context.Context, token string) (*domain.BookingDraft, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
