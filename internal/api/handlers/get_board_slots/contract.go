package get_board_slots

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/boardconfig/models"
)

type ConfigService interface {
	Slots(ctx context.Context) (*models.SlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
