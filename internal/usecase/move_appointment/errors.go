package move_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда переносимая запись не найдена
	ErrAppointmentNotFound = errors.New("move_appointment: appointment not found")

	// ErrStaffNotFound возвращается, когда целевой мастер не найден
	ErrStaffNotFound = errors.New("move_appointment: staff member not found")

	// ErrStaffInactive возвращается при переносе к деактивированному мастеру
	ErrStaffInactive = errors.New("move_appointment: staff member is inactive")

	// ErrInvalidSlot возвращается, когда целевое время не попадает на сетку
	// или лежит вне рабочего окна
	ErrInvalidSlot = errors.New("move_appointment: invalid slot")

	// ErrSlotConflict возвращается, когда целевой интервал занят другой записью
	ErrSlotConflict = errors.New("move_appointment: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("move_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("move_appointment: internal error")
)
