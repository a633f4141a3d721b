package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// validateRequest валидирует входные данные запроса.
// Ошибки валидации содержат имя поля - они безопасны для показа пользователю.
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName is too long", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}
	if len(req.CustomerPhone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: customerPhone is too long", ErrInvalidInput)
	}

	if req.HallID <= 0 {
		return fmt.Errorf("%w: hallId must be positive", ErrInvalidInput)
	}

	if req.EventDate.IsZero() {
		return fmt.Errorf("%w: eventDate is required", ErrInvalidInput)
	}

	if !req.Shift.Valid() {
		return fmt.Errorf("%w: unknown shift %q", ErrInvalidInput, req.Shift)
	}

	if req.Guests < domain.MinGuests {
		return fmt.Errorf("%w: guests must be positive", ErrInvalidInput)
	}
	if req.Guests > domain.MaxGuests {
		return fmt.Errorf("%w: guests must not exceed %d", ErrInvalidInput, domain.MaxGuests)
	}

	if len(req.EventType) > domain.MaxEventTypeLength {
		return fmt.Errorf("%w: eventType is too long", ErrInvalidInput)
	}

	if req.SpecialRequests != nil && len(*req.SpecialRequests) > domain.MaxSpecialRequestsLength {
		return fmt.Errorf("%w: specialRequests is too long", ErrInvalidInput)
	}

	if req.AddedBy != domain.AddedByUser && req.AddedBy != domain.AddedByAdmin {
		return fmt.Errorf("%w: unknown addedBy %q", ErrInvalidInput, req.AddedBy)
	}

	return nil
}

// validateDate проверяет, что дата бронирования не в прошлом.
// Дата события парсится как UTC, поэтому обе даты приводим к UTC -
// сравнение по календарному дню не зависит от таймзоны сервера.
func validateDate(eventDate, now time.Time) error {
	e, n := eventDate.UTC(), now.UTC()
	dateOnly := time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}
	return nil
}

// validateMenusAssigned проверяет, что все выбранные меню привязаны к залу
func validateMenusAssigned(menuIDs, assignedIDs []int64) error {
	assigned := make(map[int64]struct{}, len(assignedIDs))
	for _, id := range assignedIDs {
		assigned[id] = struct{}{}
	}
	for _, id := range menuIDs {
		if _, ok := assigned[id]; !ok {
			return fmt.Errorf("%w: menu id=%d", ErrMenuNotAssigned, id)
		}
	}
	return nil
}
