package verify_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/service/payments"
)

const (
	msgInvalidPaymentID   = "некорректный ID платежа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус платежа, ожидается verified или rejected"
	msgNotFound           = "платеж не найден"
	msgAlreadyProcessed   = "платеж уже обработан"
)

// VerifyPaymentRequest HTTP request model
type VerifyPaymentRequest struct {
	Status string `json:"status"` // verified | rejected
}

type Handler struct {
	service PaymentsService
	logger  Logger
}

func NewHandler(service PaymentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/payments/{paymentId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	paymentID, err := strconv.ParseInt(vars["paymentId"], 10, 64)
	if err != nil || paymentID <= 0 {
		h.logger.Warn("PATCH /payments/{id}/status - Invalid payment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	var req VerifyPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /payments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := middleware.Actor(r.Context())

	switch domain.PaymentRecordStatus(req.Status) {
	case domain.PaymentRecordVerified:
		err = h.service.Verify(r.Context(), paymentID, actor)
	case domain.PaymentRecordRejected:
		err = h.service.Reject(r.Context(), paymentID, actor)
	default:
		h.logger.Warn("PATCH /payments/{id}/status - Invalid status %q", req.Status)
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("PATCH /payments/{id}/status - Payment not found: payment_id=%d", paymentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrBookingNotFound):
			h.logger.Warn("PATCH /payments/{id}/status - Booking not found: payment_id=%d", paymentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrAlreadyProcessed):
			h.logger.Warn("PATCH /payments/{id}/status - Already processed: payment_id=%d", paymentID)
			handlers.RespondConflict(w, msgAlreadyProcessed)

		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("PATCH /payments/{id}/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPaymentID)

		default:
			h.logger.Error("PATCH /payments/{id}/status - Failed to process payment: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /payments/{id}/status - Payment processed: payment_id=%d, status=%s", paymentID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}
