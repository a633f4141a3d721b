package get_draft

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/service/drafts"
)

const (
	msgInvalidToken = "некорректный токен черновика"
	msgNotFound     = "черновик не найден или истек"
)

type Handler struct {
	service DraftsService
	logger  Logger
}

func NewHandler(service DraftsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/booking-drafts/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if token == "" {
		h.logger.Warn("GET /booking-drafts/{token} - Empty token")
		handlers.RespondBadRequest(w, msgInvalidToken)
		return
	}

	draft, err := h.service.Get(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, drafts.ErrDraftNotFound):
			h.logger.Warn("GET /booking-drafts/{token} - Draft not found: token=%s", token)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, drafts.ErrInvalidInput):
			h.logger.Warn("GET /booking-drafts/{token} - Invalid token: %v", err)
			handlers.RespondBadRequest(w, msgInvalidToken)

		default:
			h.logger.Error("GET /booking-drafts/{token} - Failed to get draft: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /booking-drafts/{token} - Draft retrieved: token=%s", token)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(draft))
}
