package update_draft

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

type DraftsService interface {
	Update(ctx context.Context, token string, draft *domain.BookingDraft) (*domain.BookingDraft, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
