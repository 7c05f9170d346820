package get_board_slots

import (
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/board/slots
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Slots(r.Context())
	if err != nil {
		h.logger.Error("GET /board/slots - Failed to enumerate slots: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /board/slots - Slots enumerated successfully: count=%d", len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
