package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

type AvailabilityService interface {
	IsHallAvailable(ctx context.Context, hallID int64, date time.Time, shift domain.Shift, excludeID *int64) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
