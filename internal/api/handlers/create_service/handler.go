package create_service

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/catalog"
	"github.com/m04kA/SMC-ScheduleService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgLinkedProductAbsent = "привязанный товар не найден"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает POST /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.CreateService(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrProductNotFound):
			h.logger.Warn("POST /services - linked product not found: %v", err)
			handlers.RespondBadRequest(w, msgLinkedProductAbsent)
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /services - validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /services - internal error: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services - service created: service_id=%d, name=%s, duration=%d min",
		resp.ID, resp.Name, resp.DurationMinutes)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}
