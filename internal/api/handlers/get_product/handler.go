package get_product

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

// Handle обрабатывает GET /api/v1/products/{productId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vars := mux.Vars(r)
	productIDStr := vars["productId"]

	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /products/{id} - invalid product ID: %s", productIDStr)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	resp, err := h.service.GetProduct(ctx, productID)
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrProductNotFound):
			h.logger.Warn("GET /products/{id} - product not found: product_id=%d", productID)
			handlers.RespondNotFound(w, msgProductNotFound)
		default:
			h.logger.Error("GET /products/{id} - internal error: product_id=%d, error=%v", productID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /products/{id} - success, product_id=%d", productID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
