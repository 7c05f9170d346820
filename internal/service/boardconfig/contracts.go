package boardconfig

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/infra/events"
)

// ConfigRepository интерфейс репозитория конфигурации доски
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.BoardConfig, error)
	Upsert(ctx context.Context, config *domain.BoardConfig) (*domain.BoardConfig, error)
}

// EventPublisher интерфейс публикации событий доски
type EventPublisher interface {
	PublishBoardEvent(ctx context.Context, event events.BoardEvent) error
}

// BoardCache интерфейс кеша доски
type BoardCache interface {
	InvalidateAll(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
