package boardconfig

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация доски не сохранена
	ErrConfigNotFound = errors.New("boardconfig.repository: config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("boardconfig.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("boardconfig.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("boardconfig.repository: failed to scan row")
)
