package get_product

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/inventory/models"
)

// InventoryService интерфейс сервиса склада
type InventoryService interface {
	GetProduct(ctx context.Context, id int64) (*models.ProductResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
