package list_products

import (
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
)

type Handler struct {
	service InventoryService
	logger  Logger
}

func NewHandler(service InventoryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает GET /api/v1/products
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := h.service.ListProducts(ctx)
	if err != nil {
		h.logger.Error("GET /products - internal error: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /products - success, count=%d", len(resp.Products))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
