package list_low_stock

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/inventory/models"
)

// InventoryService интерфейс сервиса склада
type InventoryService interface {
	ListLowStock(ctx context.Context) (*models.ProductListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
