package move_appointment

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса на перенос записи (drag-and-drop на доске)
type Request struct {
	AppointmentID int64            // ID переносимой записи
	StaffID       int64            // Целевая колонка (мастер)
	Date          time.Time        // Целевая бизнес-дата; нулевая = та же дата
	StartTime     types.TimeString // Целевое время начала
}

// Response модель ответа с перенесенной записью
type Response struct {
	ID              int64
	StaffID         int64
	ClientID        *int64
	ClientName      string
	BoardDate       time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	PriceTotal      float64
	Paid            bool
	ServiceSummary  string
	UpdatedAt       time.Time
}

// buildResponse собирает ответ из перенесенной записи
func buildResponse(appointment *domain.Appointment) *Response {
	return &Response{
		ID:              appointment.ID,
		StaffID:         appointment.StaffID,
		ClientID:        appointment.ClientID,
		ClientName:      appointment.ClientName,
		BoardDate:       appointment.BoardDate,
		StartTime:       appointment.StartTime,
		EndTime:         appointment.EndTime(),
		DurationMinutes: appointment.DurationMinutes,
		PriceTotal:      appointment.PriceTotal,
		Paid:            appointment.Paid,
		ServiceSummary:  appointment.ServiceSummary(),
		UpdatedAt:       appointment.UpdatedAt,
	}
}
