package check_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/service/availability"
	"github.com/m04kA/SMC-VenueService/pkg/ptr"
)

const (
	msgInvalidHallID    = "некорректный ID зала"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidShift     = "некорректная смена, ожидается morning/afternoon/evening/fullday"
	msgInvalidExcludeID = "некорректный ID исключаемого бронирования"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/halls/{hallId}/availability?date=YYYY-MM-DD&shift=evening
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	hallID, err := strconv.ParseInt(vars["hallId"], 10, 64)
	if err != nil || hallID <= 0 {
		h.logger.Warn("GET /halls/{id}/availability - Invalid hall ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHallID)
		return
	}

	query := r.URL.Query()

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /halls/{id}/availability - Invalid date %q: %v", query.Get("date"), err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	shift := domain.Shift(query.Get("shift"))
	if !shift.Valid() {
		h.logger.Warn("GET /halls/{id}/availability - Invalid shift %q", query.Get("shift"))
		handlers.RespondBadRequest(w, msgInvalidShift)
		return
	}

	var excludeID *int64
	if raw := query.Get("excludeBookingId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("GET /halls/{id}/availability - Invalid exclude ID %q", raw)
			handlers.RespondBadRequest(w, msgInvalidExcludeID)
			return
		}
		excludeID = ptr.Ptr(id)
	}

	available, err := h.service.IsHallAvailable(r.Context(), hallID, date, shift, excludeID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /halls/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidShift)

		default:
			h.logger.Error("GET /halls/{id}/availability - Failed to check availability: hall_id=%d, error=%v", hallID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /halls/{id}/availability - Checked: hall_id=%d, date=%s, shift=%s, available=%t",
		hallID, date.Format(domain.DateFormat), shift, available)
	handlers.RespondJSON(w, http.StatusOK, AvailabilityResponse{
		HallID:    hallID,
		Date:      date.Format(domain.DateFormat),
		Shift:     string(shift),
		Available: available,
	})
}
