package update_board_config

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/boardconfig/models"
)

// ConfigService интерфейс сервиса конфигурации доски
type ConfigService interface {
	Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
