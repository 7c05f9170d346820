package get_free_slots

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса свободных слотов.
// Длительность будущей записи задается либо составом услуг, либо явным
// числом минут; без того и другого ищется одна ячейка сетки.
type Request struct {
	StaffID         int64
	Date            time.Time
	ServiceIDs      []int64
	DurationMinutes int
}

// Slot один свободный интервал, в который помещается запись
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Response модель ответа со свободными слотами
type Response struct {
	StaffID         int64
	Date            time.Time
	DurationMinutes int
	Slots           []Slot
}
