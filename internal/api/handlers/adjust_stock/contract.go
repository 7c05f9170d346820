package adjust_stock

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/inventory/models"
)

// InventoryService интерфейс сервиса склада
type InventoryService interface {
	AdjustStock(ctx context.Context, id int64, req *models.AdjustStockRequest) (*models.ProductResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
