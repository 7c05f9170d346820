package get_board_config

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

// Handle обрабатывает GET /api/v1/board/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := h.service.Get(ctx)
	if err != nil {
		h.logger.Error("GET /board/config - internal error: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /board/config - success, window %02d-%02d, interval %d min",
		resp.DayStartHour, resp.DayEndHour, resp.IntervalMinutes)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
