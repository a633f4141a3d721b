package update_payment_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус оплаты"
	msgNotFound           = "бронирование не найдено"
)

// UpdatePaymentStatusRequest HTTP request model. Оба поля опциональны:
// можно сменить статус оплаты, переключить флаг предоплаты или оба разом.
type UpdatePaymentStatusRequest struct {
	PaymentStatus          *string `json:"paymentStatus,omitempty"`
	AdvancePaymentReceived *bool   `json:"advancePaymentReceived,omitempty"`
}

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/payment-status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("PATCH /bookings/{id}/payment-status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdatePaymentStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/payment-status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.PaymentStatus == nil && req.AdvancePaymentReceived == nil {
		h.logger.Warn("PATCH /bookings/{id}/payment-status - Empty request: booking_id=%d", bookingID)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := middleware.Actor(r.Context())

	if req.PaymentStatus != nil {
		newStatus := domain.PaymentStatus(*req.PaymentStatus)
		if !newStatus.Valid() {
			h.logger.Warn("PATCH /bookings/{id}/payment-status - Invalid status %q", *req.PaymentStatus)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		if err := h.service.UpdatePaymentStatus(r.Context(), bookingID, newStatus, actor); err != nil {
			h.respondError(w, bookingID, err)
			return
		}
	}

	if req.AdvancePaymentReceived != nil {
		if err := h.service.SetAdvanceReceived(r.Context(), bookingID, *req.AdvancePaymentReceived, actor); err != nil {
			h.respondError(w, bookingID, err)
			return
		}
	}

	h.logger.Info("PATCH /bookings/{id}/payment-status - Updated: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}

func (h *Handler) respondError(w http.ResponseWriter, bookingID int64, err error) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("PATCH /bookings/{id}/payment-status - Booking not found: booking_id=%d", bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, bookings.ErrInvalidInput):
		h.logger.Warn("PATCH /bookings/{id}/payment-status - Invalid input: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStatus)

	default:
		h.logger.Error("PATCH /bookings/{id}/payment-status - Failed: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
	}
}
