package list_stock_movements

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/inventory"
)

const (
	msgInvalidProductID = "некорректный ID товара"
	msgProductNotFound  = "товар не найден"
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

// Handle обрабатывает GET /api/v1/products/{productId}/movements
// Журнал движений остатков: списания при записях, откаты, ручные корректировки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vars := mux.Vars(r)
	productIDStr := vars["productId"]

	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /products/{id}/movements - invalid product ID: %s", productIDStr)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	resp, err := h.service.ListMovements(ctx, productID)
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrProductNotFound):
			h.logger.Warn("GET /products/{id}/movements - product not found: product_id=%d", productID)
			handlers.RespondNotFound(w, msgProductNotFound)
		default:
			h.logger.Error("GET /products/{id}/movements - internal error: product_id=%d, error=%v", productID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /products/{id}/movements - success, product_id=%d, count=%d", productID, len(resp.Movements))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
