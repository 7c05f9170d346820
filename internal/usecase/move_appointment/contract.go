package move_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/infra/events"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.Appointment, error)
	UpdatePlacement(ctx context.Context, id, staffID int64, date time.Time, startTime types.TimeString) error
}

// ConfigRepository интерфейс репозитория конфигурации доски
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.BoardConfig, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
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

// MetricsCollector интерфейс для метрик переноса
type MetricsCollector interface {
	IncAppointmentMoved()
	IncSlotConflict()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
