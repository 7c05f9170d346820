package place_appointment

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("place_appointment: staff member not found")

	// ErrStaffInactive возвращается при попытке записать к деактивированному мастеру
	ErrStaffInactive = errors.New("place_appointment: staff member is inactive")

	// ErrServiceNotFound возвращается, когда услуга из корзины не найдена
	ErrServiceNotFound = errors.New("place_appointment: service not found")

	// ErrServiceInactive возвращается, когда услуга из корзины выключена
	ErrServiceInactive = errors.New("place_appointment: service is inactive")

	// ErrClientNotFound возвращается, когда указанный клиент не найден
	ErrClientNotFound = errors.New("place_appointment: client not found")

	// ErrInvalidSlot возвращается, когда время начала не попадает на сетку
	// или лежит вне рабочего окна
	ErrInvalidSlot = errors.New("place_appointment: invalid slot")

	// ErrSlotConflict возвращается, когда целевой интервал занят другой записью
	ErrSlotConflict = errors.New("place_appointment: slot is already taken")

	// ErrInsufficientStock возвращается, когда остатка привязанного товара
	// не хватает на все услуги корзины
	ErrInsufficientStock = errors.New("place_appointment: insufficient stock")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("place_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("place_appointment: internal error")
)
