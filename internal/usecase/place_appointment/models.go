package place_appointment

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса на размещение записи
type Request struct {
	StaffID    int64            // ID мастера (колонка доски)
	Date       time.Time        // Бизнес-дата доски (без времени)
	StartTime  types.TimeString // Время начала, например "11:30"
	ServiceIDs []int64          // Корзина: услуги в порядке выбора
	ClientID   *int64           // ID клиента из CRM (опционально)
	ClientName string           // Имя клиента (обязательно для разовых клиентов)
	Notes      *string          // Дополнительные заметки (опционально)
}

// ItemResponse одна услуга в составе созданной записи
type ItemResponse struct {
	ServiceID       int64
	Position        int
	ServiceName     string
	Price           float64
	DurationMinutes int
}

// Response модель ответа с созданной записью
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
	Notes           *string

	// Денормализованные данные корзины
	ServiceSummary string
	Items          []ItemResponse

	CreatedAt time.Time
	UpdatedAt time.Time
}

// buildResponse собирает ответ из сохраненной записи
func buildResponse(appointment *domain.Appointment) *Response {
	resp := &Response{
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
		Notes:           appointment.Notes,
		ServiceSummary:  appointment.ServiceSummary(),
		Items:           make([]ItemResponse, 0, len(appointment.Items)),
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}

	for _, item := range appointment.Items {
		resp.Items = append(resp.Items, ItemResponse{
			ServiceID:       item.ServiceID,
			Position:        item.Position,
			ServiceName:     item.ServiceName,
			Price:           item.Price,
			DurationMinutes: item.DurationMinutes,
		})
	}

	return resp
}
