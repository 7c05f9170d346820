package catalog

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.Staff) (*domain.Staff, error)
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Staff, error)
	Update(ctx context.Context, staff *domain.Staff) error
	Deactivate(ctx context.Context, id int64) error
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Service, error)
	Update(ctx context.Context, service *domain.Service) error
	Delete(ctx context.Context, id int64) error
}

// ProductRepository интерфейс репозитория товаров (проверка привязок)
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
