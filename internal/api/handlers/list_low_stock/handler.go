package list_low_stock

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

// Handle обрабатывает GET /api/v1/products/low-stock
// Возвращает товары, чей остаток опустился до порога или ниже
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := h.service.ListLowStock(ctx)
	if err != nil {
		h.logger.Error("GET /products/low-stock - internal error: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /products/low-stock - success, count=%d", len(resp.Products))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
