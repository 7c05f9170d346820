package jobs

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/infra/events"
	boardconfigModels "github.com/m04kA/SMC-ScheduleService/internal/service/boardconfig/models"
	inventoryModels "github.com/m04kA/SMC-ScheduleService/internal/service/inventory/models"
)

// ConfigService интерфейс сервиса конфигурации доски
type ConfigService interface {
	Get(ctx context.Context) (*boardconfigModels.ConfigResponse, error)
}

// InventoryService интерфейс сервиса склада
type InventoryService interface {
	ListLowStock(ctx context.Context) (*inventoryModels.ProductListResponse, error)
}

// BoardCache интерфейс кеша досок
type BoardCache interface {
	InvalidateAll(ctx context.Context) error
}

// EventPublisher интерфейс публикации событий доски
type EventPublisher interface {
	PublishBoardEvent(ctx context.Context, event events.BoardEvent) error
}

// MetricsCollector интерфейс сбора метрик
type MetricsCollector interface {
	SetLowStockProducts(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
