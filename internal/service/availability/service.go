package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках проверки
	ErrInternal = errors.New("availability: internal error")
)

// Service проверка доступности слота зала.
// Слоттинг по сменам: у зала может быть не больше одного некансельного
// бронирования на пару (дата, смена). fullday - своя смена и не
// конфликтует с part-day сменами той же даты.
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// IsHallAvailable возвращает true, если на тройку (зал, дата, смена) нет
// некансельного бронирования. excludeID исключает одно бронирование из
// проверки - используется при редактировании на месте.
// Только чтение; существование зала вызывающий код проверяет отдельно.
func (s *Service) IsHallAvailable(ctx context.Context, hallID int64, date time.Time, shift domain.Shift, excludeID *int64) (bool, error) {
	if hallID <= 0 {
		return false, fmt.Errorf("%w: hallID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return false, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !shift.Valid() {
		return false, fmt.Errorf("%w: unknown shift %q", ErrInvalidInput, shift)
	}

	count, err := s.bookingRepo.CountActiveBySlot(ctx, hallID, date, shift, excludeID)
	if err != nil {
		s.logger.Error("IsHallAvailable: failed to count bookings for hall=%d date=%s shift=%s: %v",
			hallID, date.Format(domain.DateFormat), shift, err)
		return false, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	return count == 0, nil
}
