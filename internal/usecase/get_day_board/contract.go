package get_day_board

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
}

// ConfigRepository интерфейс репозитория конфигурации доски
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.BoardConfig, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*domain.Staff, error)
}

// BoardCache интерфейс кеша собранной доски
type BoardCache interface {
	Get(ctx context.Context, date string) (string, bool, error)
	Set(ctx context.Context, date, payload string) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
