package get_board_config

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/boardconfig/models"
)

// ConfigService интерфейс сервиса конфигурации доски
type ConfigService interface {
	Get(ctx context.Context) (*models.ConfigResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
