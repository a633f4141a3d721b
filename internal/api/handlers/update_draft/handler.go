package update_draft

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/service/drafts"
)

const (
	msgInvalidToken       = "некорректный токен черновика"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "черновик не найден или истек"
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

// Handle PUT /api/v1/booking-drafts/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if token == "" {
		h.logger.Warn("PUT /booking-drafts/{token} - Empty token")
		handlers.RespondBadRequest(w, msgInvalidToken)
		return
	}

	var req DraftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /booking-drafts/{token} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	draft, err := h.service.Update(r.Context(), token, req.ToDomain())
	if err != nil {
		switch {
		case errors.Is(err, drafts.ErrDraftNotFound):
			h.logger.Warn("PUT /booking-drafts/{token} - Draft not found: token=%s", token)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, drafts.ErrInvalidInput):
			h.logger.Warn("PUT /booking-drafts/{token} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidToken)

		default:
			h.logger.Error("PUT /booking-drafts/{token} - Failed to update draft: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /booking-drafts/{token} - Draft updated: token=%s", token)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(draft))
}
