package deactivate_staff

import "context"

// CatalogService интерфейс сервиса каталога
type CatalogService interface {
	DeactivateStaff(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
