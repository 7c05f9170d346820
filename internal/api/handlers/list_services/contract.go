package list_services

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/catalog/models"
)

// CatalogService интерфейс сервиса каталога
type CatalogService interface {
	ListServices(ctx context.Context, activeOnly bool) (*models.ServiceListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
