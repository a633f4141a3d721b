package drafts

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// DraftStore интерфейс хранилища черновиков
type DraftStore interface {
	Save(ctx context.Context, draft *domain.BookingDraft) error
	Get(ctx context.Context, token string) (*domain.BookingDraft, error)
	Delete(ctx context.Context, token string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
