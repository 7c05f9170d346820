package place_appointment

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	placeAppointment "github.com/m04kA/SMC-ScheduleService/internal/usecase/place_appointment"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// PlaceAppointmentRequest HTTP request model
type PlaceAppointmentRequest struct {
	StaffID    int64   `json:"staffId"`
	Date       string  `json:"date"`      // "2025-03-01"
	StartTime  string  `json:"startTime"` // "11:30"
	ServiceIDs []int64 `json:"serviceIds"`
	ClientID   *int64  `json:"clientId,omitempty"`
	ClientName string  `json:"clientName,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// AppointmentItemResponse одна услуга в составе записи
type AppointmentItemResponse struct {
	ServiceID       int64   `json:"serviceId"`
	Position        int     `json:"position"`
	ServiceName     string  `json:"serviceName"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64                     `json:"id"`
	StaffID         int64                     `json:"staffId"`
	ClientID        *int64                    `json:"clientId,omitempty"`
	ClientName      string                    `json:"clientName"`
	Date            string                    `json:"date"`
	StartTime       string                    `json:"startTime"`
	EndTime         string                    `json:"endTime"`
	DurationMinutes int                       `json:"durationMinutes"`
	PriceTotal      float64                   `json:"priceTotal"`
	Paid            bool                      `json:"paid"`
	ServiceSummary  string                    `json:"serviceSummary"`
	Items           []AppointmentItemResponse `json:"items"`
	Notes           *string                   `json:"notes,omitempty"`
	CreatedAt       string                    `json:"createdAt"`
	UpdatedAt       string                    `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PlaceAppointmentRequest) ToUseCaseRequest() (*placeAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &placeAppointment.Request{
		StaffID:    r.StaffID,
		Date:       date,
		StartTime:  startTime,
		ServiceIDs: r.ServiceIDs,
		ClientID:   r.ClientID,
		ClientName: r.ClientName,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *placeAppointment.Response) *AppointmentResponse {
	items := make([]AppointmentItemResponse, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, AppointmentItemResponse{
			ServiceID:       item.ServiceID,
			Position:        item.Position,
			ServiceName:     item.ServiceName,
			Price:           item.Price,
			DurationMinutes: item.DurationMinutes,
		})
	}

	return &AppointmentResponse{
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
		Items:           items,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
