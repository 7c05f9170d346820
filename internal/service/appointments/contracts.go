package appointments

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/infra/events"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/loyaltyservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	SetPaid(ctx context.Context, id int64, paid bool) error
	Delete(ctx context.Context, id int64) error
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	ApplyVisit(ctx context.Context, id int64, amount float64, points int) error
}

// LoyaltyClient интерфейс клиента CRM программы лояльности
type LoyaltyClient interface {
	RecordPaidVisitWithGracefulDegradation(ctx context.Context, visit loyaltyservice.VisitEvent) error
}

// EventPublisher интерфейс публикации событий доски
type EventPublisher interface {
	PublishBoardEvent(ctx context.Context, event events.BoardEvent) error
}

// BoardCache интерфейс кеша доски
type BoardCache interface {
	Invalidate(ctx context.Context, dates ...string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
