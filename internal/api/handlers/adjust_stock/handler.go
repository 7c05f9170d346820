package adjust_stock

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/inventory"
	"github.com/m04kA/SMC-ScheduleService/internal/service/inventory/models"
)

const (
	msgInvalidProductID   = "некорректный ID товара"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgProductNotFound    = "товар не найден"
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

// Handle обрабатывает PATCH /api/v1/products/{productId}/stock
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vars := mux.Vars(r)
	productIDStr := vars["productId"]

	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /products/{id}/stock - invalid product ID: %s", productIDStr)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	var req models.AdjustStockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /products/{id}/stock - invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.AdjustStock(ctx, productID, &req)
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrProductNotFound):
			h.logger.Warn("PATCH /products/{id}/stock - product not found: product_id=%d", productID)
			handlers.RespondNotFound(w, msgProductNotFound)

		case errors.Is(err, inventory.ErrInsufficientStock):
			// В тексте ошибки указан доступный остаток
			h.logger.Warn("PATCH /products/{id}/stock - insufficient stock: product_id=%d, delta=%d, error=%v",
				productID, req.Delta, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, err.Error())

		case errors.Is(err, inventory.ErrInvalidInput):
			h.logger.Warn("PATCH /products/{id}/stock - invalid input: product_id=%d, error=%v", productID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /products/{id}/stock - internal error: product_id=%d, error=%v", productID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /products/{id}/stock - stock adjusted: product_id=%d, delta=%d, quantity=%d",
		productID, req.Delta, resp.Quantity)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
