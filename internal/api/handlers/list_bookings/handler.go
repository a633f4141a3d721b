package list_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/service/bookings"
)

const (
	msgInvalidFilter = "некорректные параметры фильтра"
)

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

// Handle GET /api/v1/bookings?venueId&hallId&startDate&endDate&bookingStatus&paymentStatus
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	list, err := h.service.List(r.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Listed %d bookings", len(list))
	handlers.RespondJSON(w, http.StatusOK, FromBookings(list))
}

func parseFilter(r *http.Request) (domain.BookingsFilter, error) {
	var filter domain.BookingsFilter
	query := r.URL.Query()

	if raw := query.Get("venueId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return filter, errors.New("malformed venueId")
		}
		filter.VenueID = &id
	}
	if raw := query.Get("hallId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return filter, errors.New("malformed hallId")
		}
		filter.HallID = &id
	}
	if raw := query.Get("startDate"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return filter, errors.New("malformed startDate")
		}
		filter.StartDate = &date
	}
	if raw := query.Get("endDate"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return filter, errors.New("malformed endDate")
		}
		filter.EndDate = &date
	}
	if raw := query.Get("bookingStatus"); raw != "" {
		status := domain.BookingStatus(raw)
		filter.BookingStatus = &status
	}
	if raw := query.Get("paymentStatus"); raw != "" {
		status := domain.PaymentStatus(raw)
		filter.PaymentStatus = &status
	}

	return filter, nil
}
