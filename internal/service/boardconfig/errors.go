package boardconfig

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных параметрах сетки
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
