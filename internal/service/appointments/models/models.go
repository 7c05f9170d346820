package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модели

// ListAppointmentsRequest запрос на выборку записей с фильтрацией
type ListAppointmentsRequest struct {
	StaffID  *int64     `json:"staffId,omitempty"`
	ClientID *int64     `json:"clientId,omitempty"`
	DateFrom *time.Time `json:"dateFrom,omitempty"`
	DateTo   *time.Time `json:"dateTo,omitempty"`
	Paid     *bool      `json:"paid,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() domain.AppointmentsFilter {
	return domain.AppointmentsFilter{
		StaffID:  r.StaffID,
		ClientID: r.ClientID,
		DateFrom: r.DateFrom,
		DateTo:   r.DateTo,
		Paid:     r.Paid,
	}
}

// UpdatePaymentRequest запрос на смену признака оплаты
type UpdatePaymentRequest struct {
	Paid bool `json:"paid"`
}

// Response модели

// AppointmentItemResponse одна услуга в составе записи
type AppointmentItemResponse struct {
	ServiceID       int64   `json:"serviceId"`
	Position        int     `json:"position"`
	ServiceName     string  `json:"serviceName"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	StaffID         int64   `json:"staffId"`
	ClientID        *int64  `json:"clientId,omitempty"`
	ClientName      string  `json:"clientName"`
	BoardDate       string  `json:"boardDate"` // "2025-03-01"
	StartTime       string  `json:"startTime"` // "10:00"
	EndTime         string  `json:"endTime"`   // "11:30"
	DurationMinutes int     `json:"durationMinutes"`
	PriceTotal      float64 `json:"priceTotal"`
	Paid            bool    `json:"paid"`
	Notes           *string `json:"notes,omitempty"`

	ServiceSummary string                    `json:"serviceSummary"`
	Items          []AppointmentItemResponse `json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:              a.ID,
		StaffID:         a.StaffID,
		ClientID:        a.ClientID,
		ClientName:      a.ClientName,
		BoardDate:       a.BoardDate.Format(domain.DateFormat),
		StartTime:       a.StartTime.String(),
		EndTime:         a.EndTime().String(),
		DurationMinutes: a.DurationMinutes,
		PriceTotal:      a.PriceTotal,
		Paid:            a.Paid,
		Notes:           a.Notes,
		ServiceSummary:  a.ServiceSummary(),
		Items:           make([]AppointmentItemResponse, 0, len(a.Items)),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}

	for _, item := range a.Items {
		resp.Items = append(resp.Items, AppointmentItemResponse{
			ServiceID:       item.ServiceID,
			Position:        item.Position,
			ServiceName:     item.ServiceName,
			Price:           item.Price,
			DurationMinutes: item.DurationMinutes,
		})
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appointment := range appointments {
		if appointmentResp := FromDomainAppointment(appointment); appointmentResp != nil {
			resp.Appointments[i] = *appointmentResp
		}
	}

	return resp
}
