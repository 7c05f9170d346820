package update_board_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/boardconfig"
	"github.com/m04kA/SMC-ScheduleService/internal/service/boardconfig/models"
)

const (
	msgInvalidBody   = "некорректное тело запроса"
	msgInvalidConfig = "некорректная конфигурация доски"
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

// Handle обрабатывает PUT /api/v1/board/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /board/config - invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	resp, err := h.service.Update(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, boardconfig.ErrInvalidInput):
			h.logger.Warn("PUT /board/config - validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidConfig)
		default:
			h.logger.Error("PUT /board/config - internal error: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /board/config - success, window %02d-%02d, interval %d min, rollover %02d:00",
		resp.DayStartHour, resp.DayEndHour, resp.IntervalMinutes, resp.RolloverHour)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
