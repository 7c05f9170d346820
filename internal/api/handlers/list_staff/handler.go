package list_staff

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
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

// Handle обрабатывает GET /api/v1/staff
// Query параметр activeOnly=true скрывает деактивированных мастеров
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	activeOnly, _ := strconv.ParseBool(r.URL.Query().Get("activeOnly"))

	resp, err := h.service.ListStaff(ctx, activeOnly)
	if err != nil {
		h.logger.Error("GET /staff - internal error: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /staff - success, count=%d, active_only=%t", len(resp.Staff), activeOnly)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
