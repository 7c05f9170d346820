package update_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/catalog"
	"github.com/m04kA/SMC-ScheduleService/internal/service/catalog/models"
)

const (
	msgInvalidServiceID    = "некорректный ID услуги"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgServiceNotFound     = "услуга не найдена"
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

// Handle обрабатывает PUT /api/v1/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vars := mux.Vars(r)
	serviceIDStr := vars["serviceId"]

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /services/{id} - invalid service ID: %s", serviceIDStr)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req models.UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /services/{id} - invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.UpdateService(ctx, serviceID, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("PUT /services/{id} - service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)
		case errors.Is(err, catalog.ErrProductNotFound):
			h.logger.Warn("PUT /services/{id} - linked product not found: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgLinkedProductAbsent)
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /services/{id} - validation failed: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PUT /services/{id} - internal error: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /services/{id} - service updated: service_id=%d, active=%t", resp.ID, resp.Active)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
