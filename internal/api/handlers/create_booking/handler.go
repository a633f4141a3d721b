package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueService/internal/domain"
	createBooking "github.com/m04kA/SMC-VenueService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные бронирования"
	msgHallNotFound       = "зал не найден"
	msgHallInactive       = "зал недоступен для бронирования"
	msgCapacityExceeded   = "число гостей превышает вместимость зала"
	msgMenuNotFound       = "меню не найдено"
	msgMenuNotAssigned    = "меню не доступно для выбранного зала"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidBookingDate = "дата бронирования уже прошла"
	msgSlotNotAvailable   = "зал уже забронирован на выбранную дату и смену"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Публичный визард создает от имени посетителя, админка - от оператора
	addedBy := domain.AddedByUser
	if _, ok := middleware.UserID(r.Context()); ok {
		addedBy = domain.AddedByAdmin
	}

	useCaseReq, err := req.ToUseCaseRequest(addedBy, middleware.Actor(r.Context()))
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: hall_id=%d, date=%s, shift=%s",
				req.HallID, req.EventDate, req.Shift)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrHallNotFound):
			h.logger.Warn("POST /bookings - Hall not found: hall_id=%d", req.HallID)
			handlers.RespondNotFound(w, msgHallNotFound)

		case errors.Is(err, createBooking.ErrHallInactive):
			h.logger.Warn("POST /bookings - Hall inactive: hall_id=%d", req.HallID)
			handlers.RespondBadRequest(w, msgHallInactive)

		case errors.Is(err, createBooking.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Capacity exceeded: hall_id=%d, guests=%d", req.HallID, req.Guests)
			handlers.RespondBadRequest(w, msgCapacityExceeded)

		case errors.Is(err, createBooking.ErrMenuNotFound):
			h.logger.Warn("POST /bookings - Menu not found: hall_id=%d, error=%v", req.HallID, err)
			handlers.RespondNotFound(w, msgMenuNotFound)

		case errors.Is(err, createBooking.ErrMenuNotAssigned):
			h.logger.Warn("POST /bookings - Menu not assigned to hall: hall_id=%d, error=%v", req.HallID, err)
			handlers.RespondNotFound(w, msgMenuNotAssigned)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: hall_id=%d, error=%v", req.HallID, err)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Date in the past: hall_id=%d, date=%s", req.HallID, req.EventDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: hall_id=%d, error=%v", req.HallID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, number=%s",
		result.ID, result.BookingNumber)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
