package quote_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/service/pricing"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры расчёта"
	msgMenuNotFound       = "меню не найдено"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	service PricingService
	logger  Logger
}

func NewHandler(service PricingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/quote
// Read-only расчёт: ничего не пишет, слот не резервирует
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	quote, err := h.service.CalculateTotal(r.Context(), req.HallID, req.MenuIDs, req.Guests, req.ServiceIDs)
	if err != nil {
		h.respondError(w, req, err)
		return
	}

	advance, err := h.service.CalculateAdvance(r.Context(), quote.GrandTotal)
	if err != nil {
		h.respondError(w, req, err)
		return
	}

	h.logger.Info("POST /bookings/quote - Quote calculated: hall_id=%d, guests=%d, grand_total=%s",
		req.HallID, req.Guests, quote.GrandTotal.StringFixed(2))
	handlers.RespondJSON(w, http.StatusOK, FromQuote(quote, advance))
}

func (h *Handler) respondError(w http.ResponseWriter, req QuoteRequest, err error) {
	switch {
	case errors.Is(err, pricing.ErrInvalidInput):
		h.logger.Warn("POST /bookings/quote - Invalid input: hall_id=%d, error=%v", req.HallID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, pricing.ErrMenuNotFound):
		h.logger.Warn("POST /bookings/quote - Menu not found: hall_id=%d, error=%v", req.HallID, err)
		handlers.RespondNotFound(w, msgMenuNotFound)

	case errors.Is(err, pricing.ErrServiceNotFound):
		h.logger.Warn("POST /bookings/quote - Service not found: hall_id=%d, error=%v", req.HallID, err)
		handlers.RespondNotFound(w, msgServiceNotFound)

	default:
		h.logger.Error("POST /bookings/quote - Failed to calculate quote: hall_id=%d, error=%v", req.HallID, err)
		handlers.RespondInternalError(w)
	}
}
