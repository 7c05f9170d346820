package loyaltyservice

import "errors"

var (
	// ErrClientNotFound возвращается, когда CRM не знает такого клиента
	ErrClientNotFound = errors.New("loyalty client not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("loyaltyservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("loyaltyservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Оплата фиксируется локально, визит доотправится при восстановлении CRM
	ErrServiceDegraded = errors.New("loyaltyservice unavailable: graceful degradation applied")
)
