package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Appointment represents a placed appointment on the board.
// BoardDate is the business date of the board column the appointment
// belongs to; StartTime is the wall-clock start, which for days that
// wrap past midnight may be smaller than the day start (01:30 on the
// March 1st board).
type Appointment struct {
	ID              int64
	StaffID         int64
	ClientID        *int64 // постоянный клиент (опционально)
	ClientName      string
	BoardDate       time.Time
	StartTime       types.TimeString
	DurationMinutes int
	PriceTotal      float64
	Paid            bool
	Notes           *string

	// Items хранит состав записи в порядке добавления услуг.
	Items []AppointmentItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppointmentItem is one service of an appointment.
type AppointmentItem struct {
	ID            int64
	AppointmentID int64
	ServiceID     int64
	Position      int

	// Denormalized data for history
	ServiceName     string
	Price           float64
	DurationMinutes int
}

// ServiceSummary returns the item service names joined in cart order.
func (a *Appointment) ServiceSummary() string {
	if len(a.Items) == 0 {
		return ""
	}

	names := make([]string, 0, len(a.Items))
	for _, item := range a.Items {
		names = append(names, item.ServiceName)
	}

	return strings.Join(names, ", ")
}

// EndTime returns the wall-clock end of the appointment.
func (a *Appointment) EndTime() types.TimeString {
	end, err := a.StartTime.AddMinutes(a.DurationMinutes)
	if err != nil {
		return a.StartTime
	}

	return end
}

// AppointmentsFilter фильтр для выборки записей
type AppointmentsFilter struct {
	StaffID  *int64     // Фильтр по сотруднику (опционально)
	ClientID *int64     // Фильтр по клиенту (опционально)
	DateFrom *time.Time // Начало периода (опционально)
	DateTo   *time.Time // Конец периода (опционально)
	Paid     *bool      // Фильтр по оплате (опционально)
}
