package place_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/infra/events"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	GetByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.Appointment, error)
}

// ConfigRepository интерфейс репозитория конфигурации доски
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.BoardConfig, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Service, error)
}

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	GetByIDsForUpdate(ctx context.Context, ids []int64) (map[int64]*domain.Product, error)
	DecrementQuantity(ctx context.Context, id int64, n int) (int, error)
	CreateMovement(ctx context.Context, movement *domain.StockMovement) (*domain.StockMovement, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий доски
type EventPublisher interface {
	PublishBoardEvent(ctx context.Context, event events.BoardEvent) error
}

// BoardCache интерфейс кеша доски
type BoardCache interface {
	Invalidate(ctx context.Context, dates ...string) error
}

// MetricsCollector интерфейс для метрик размещения
type MetricsCollector interface {
	IncAppointmentPlaced()
	IncSlotConflict()
	IncStockRejection()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
