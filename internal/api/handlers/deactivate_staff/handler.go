package deactivate_staff

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/catalog"
)

const (
	msgInvalidStaffID = "некорректный ID сотрудника"
	msgStaffNotFound  = "мастер не найден"
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

// Handle обрабатывает DELETE /api/v1/staff/{staffId}
// Мастер деактивируется, а не удаляется: его колонка с историей записей
// остается доступной на прошедших датах
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vars := mux.Vars(r)
	staffIDStr := vars["staffId"]

	staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /staff/{id} - invalid staff ID: %s", staffIDStr)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	if err := h.service.DeactivateStaff(ctx, staffID); err != nil {
		switch {
		case errors.Is(err, catalog.ErrStaffNotFound):
			h.logger.Warn("DELETE /staff/{id} - staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)
		default:
			h.logger.Error("DELETE /staff/{id} - internal error: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /staff/{id} - staff deactivated: staff_id=%d", staffID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
