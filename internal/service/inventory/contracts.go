package inventory

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	ListLowStock(ctx context.Context) ([]*domain.Product, error)
	AdjustQuantity(ctx context.Context, id int64, delta int) (int, error)
	CreateMovement(ctx context.Context, movement *domain.StockMovement) (*domain.StockMovement, error)
	ListMovements(ctx context.Context, productID int64) ([]*domain.StockMovement, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsCollector интерфейс для метрик склада
type MetricsCollector interface {
	SetLowStockProducts(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
