package get_day_board

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса доски на день
type Request struct {
	Date *time.Time // Бизнес-дата; nil = текущий рабочий день
}

// Response модель ответа с собранной доской.
// Структура сериализуется в кеш как есть, поэтому содержит только
// простые значения.
type Response struct {
	Date     time.Time
	IsToday  bool
	Grid     GridInfo
	Columns  []StaffColumn
	Warnings []Warning
}

// GridInfo параметры сетки, по которым доска рисует строки
type GridInfo struct {
	DayStartHour    int
	DayEndHour      int
	IntervalMinutes int
	SlotLabels      []string // настенные метки слотов: "10:00" ... "01:30"
}

// StaffColumn одна колонка доски: мастер, его ячейки и записи дня
type StaffColumn struct {
	StaffID      int64
	StaffName    string
	Color        string
	Active       bool
	Cells        []BoardCell
	Appointments []BoardAppointment
}

// BoardCell одна ячейка колонки
type BoardCell struct {
	Label         string // настенное время ячейки
	State         string // free | start | covered
	AppointmentID int64  // 0 для свободной ячейки
}

// BoardAppointment запись в составе колонки
type BoardAppointment struct {
	ID              int64
	ClientID        *int64
	ClientName      string
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	ServiceSummary  string
	PriceTotal      float64
	Paid            bool
	Notes           *string
}

// Warning несогласованность данных, обнаруженная при раскладке:
// пересечение сохраненных записей или запись вне рабочего окна
// (BlockingAppointmentID == 0)
type Warning struct {
	StaffID               int64
	SlotLabel             string
	AppointmentID         int64
	BlockingAppointmentID int64
}
