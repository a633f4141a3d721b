package pricing

import (
	"context"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	GetHall(ctx context.Context, id int64) (*domain.Hall, error)
	GetMenusByIDs(ctx context.Context, ids []int64) ([]*domain.Menu, error)
	GetServicesByIDs(ctx context.Context, ids []int64) ([]*domain.AdditionalService, error)
}

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	Load(ctx context.Context) (domain.Settings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
