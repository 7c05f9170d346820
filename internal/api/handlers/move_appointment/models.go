package move_appointment

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	moveAppointment "github.com/m04kA/SMC-ScheduleService/internal/usecase/move_appointment"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// MoveAppointmentRequest HTTP request model.
// newDate опциональна - без нее запись остается на той же бизнес-дате.
type MoveAppointmentRequest struct {
	NewStaffID   int64   `json:"newStaffId"`
	NewDate      *string `json:"newDate,omitempty"` // "2025-03-01"
	NewStartTime string  `json:"newStartTime"`      // "12:30"
}

// MovedAppointmentResponse HTTP response model
type MovedAppointmentResponse struct {
	ID              int64   `json:"id"`
	StaffID         int64   `json:"staffId"`
	ClientID        *int64  `json:"clientId,omitempty"`
	ClientName      string  `json:"clientName"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	PriceTotal      float64 `json:"priceTotal"`
	Paid            bool    `json:"paid"`
	ServiceSummary  string  `json:"serviceSummary"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *MoveAppointmentRequest) ToUseCaseRequest(appointmentID int64) (*moveAppointment.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.NewStartTime)
	if err != nil {
		return nil, err
	}

	req := &moveAppointment.Request{
		AppointmentID: appointmentID,
		StaffID:       r.NewStaffID,
		StartTime:     startTime,
	}

	if r.NewDate != nil {
		date, err := time.Parse(domain.DateFormat, *r.NewDate)
		if err != nil {
			return nil, err
		}
		req.Date = date
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *moveAppointment.Response) *MovedAppointmentResponse {
	return &MovedAppointmentResponse{
		ID:              resp.ID,
		StaffID:         resp.StaffID,
		ClientID:        resp.ClientID,
		ClientName:      resp.ClientName,
		Date:            resp.BoardDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		PriceTotal:      resp.PriceTotal,
		Paid:            resp.Paid,
		ServiceSummary:  resp.ServiceSummary,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
