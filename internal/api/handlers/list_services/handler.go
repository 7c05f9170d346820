package list_services

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

// Handle обрабатывает GET /api/v1/services
// Query параметр activeOnly=true скрывает архивированные услуги
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	activeOnly, _ := strconv.ParseBool(r.URL.Query().Get("activeOnly"))

	resp, err := h.service.ListServices(ctx, activeOnly)
	if err != nil {
		h.logger.Error("GET /services - internal error: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - success, count=%d, active_only=%t", len(resp.Services), activeOnly)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
