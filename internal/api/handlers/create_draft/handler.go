package create_draft

import (
	"net/http"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle POST /api/v1/booking-drafts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req DraftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-drafts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	draft, err := h.service.Create(r.Context(), req.ToDomain())
	if err != nil {
		h.logger.Error("POST /booking-drafts - Failed to create draft: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /booking-drafts - Draft created: token=%s", draft.Token)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(draft))
}
