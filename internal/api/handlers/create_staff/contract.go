package create_staff

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/catalog/models"
)

// CatalogService интерфейс сервиса каталога
type CatalogService interface {
	CreateStaff(ctx context.Context, req *models.CreateStaffRequest) (*models.StaffResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
