package update_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	updateBooking "github.com/m04kA/SMC-VenueService/internal/usecase/update_booking"
)

const (
	msgInvalidBookingID        = "некорректный ID бронирования"
	msgInvalidRequestBody      = "некорректное тело запроса"
	msgInvalidDate             = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput            = "некорректные данные бронирования"
	msgNotFound                = "бронирование не найдено"
	msgNotEditable             = "бронирование в завершенном статусе и не редактируется"
	msgHallNotFound            = "зал не найден"
	msgHallInactive            = "зал недоступен для бронирования"
	msgCapacityExceeded        = "число гостей превышает вместимость зала"
	msgMenuNotFound            = "меню не найдено"
	msgMenuNotAssigned         = "меню не доступно для выбранного зала"
	msgServiceNotFound         = "услуга не найдена"
	msgInvalidBookingDate      = "дата бронирования уже прошла"
	msgSlotNotAvailable        = "зал уже забронирован на выбранную дату и смену"
	msgInvalidStatusTransition = "недопустимый переход статуса бронирования"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, middleware.Actor(r.Context()))
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateBooking.ErrBookingNotEditable):
			h.logger.Warn("PUT /bookings/{id} - Booking not editable: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotEditable)

		case errors.Is(err, updateBooking.ErrInvalidStatusTransition):
			h.logger.Warn("PUT /bookings/{id} - Invalid status transition: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondConflict(w, msgInvalidStatusTransition)

		case errors.Is(err, updateBooking.ErrSlotNotAvailable):
			h.logger.Warn("PUT /bookings/{id} - Slot not available: booking_id=%d, hall_id=%d, date=%s, shift=%s",
				bookingID, req.HallID, req.EventDate, req.Shift)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, updateBooking.ErrHallNotFound):
			h.logger.Warn("PUT /bookings/{id} - Hall not found: hall_id=%d", req.HallID)
			handlers.RespondNotFound(w, msgHallNotFound)

		case errors.Is(err, updateBooking.ErrHallInactive):
			h.logger.Warn("PUT /bookings/{id} - Hall inactive: hall_id=%d", req.HallID)
			handlers.RespondBadRequest(w, msgHallInactive)

		case errors.Is(err, updateBooking.ErrCapacityExceeded):
			h.logger.Warn("PUT /bookings/{id} - Capacity exceeded: hall_id=%d, guests=%d", req.HallID, req.Guests)
			handlers.RespondBadRequest(w, msgCapacityExceeded)

		case errors.Is(err, updateBooking.ErrMenuNotFound):
			h.logger.Warn("PUT /bookings/{id} - Menu not found: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondNotFound(w, msgMenuNotFound)

		case errors.Is(err, updateBooking.ErrMenuNotAssigned):
			h.logger.Warn("PUT /bookings/{id} - Menu not assigned to hall: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondNotFound(w, msgMenuNotAssigned)

		case errors.Is(err, updateBooking.ErrServiceNotFound):
			h.logger.Warn("PUT /bookings/{id} - Service not found: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, updateBooking.ErrInvalidDate):
			h.logger.Warn("PUT /bookings/{id} - Date in the past: booking_id=%d, date=%s", bookingID, req.EventDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, updateBooking.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to update booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking updated successfully: booking_id=%d, number=%s",
		result.ID, result.BookingNumber)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
