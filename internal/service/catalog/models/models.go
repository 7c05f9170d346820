package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модели

// CreateStaffRequest запрос на добавление мастера
type CreateStaffRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"` // цвет колонки на доске, например "#7c4dff"
}

// UpdateStaffRequest запрос на обновление мастера
// Все поля опциональны - обновляются только переданные значения
type UpdateStaffRequest struct {
	Name   *string `json:"name,omitempty"`
	Color  *string `json:"color,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// ApplyToStaff применяет частичное обновление к domain модели
func (r *UpdateStaffRequest) ApplyToStaff(s *domain.Staff) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Color != nil {
		s.Color = *r.Color
	}
	if r.Active != nil {
		s.Active = *r.Active
	}
}

// CreateServiceRequest запрос на добавление услуги
type CreateServiceRequest struct {
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	Category        *string `json:"category,omitempty"`        // группа в каталоге
	LinkedProductID *int64  `json:"linkedProductId,omitempty"` // товар, списываемый при оказании
}

// UpdateServiceRequest запрос на обновление услуги
// Все поля опциональны - обновляются только переданные значения.
// LinkedProductID = 0 отвязывает товар от услуги, пустая Category
// убирает услугу из группы.
type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	Category        *string  `json:"category,omitempty"`
	LinkedProductID *int64   `json:"linkedProductId,omitempty"`
	Active          *bool    `json:"active,omitempty"`
}

// ApplyToService применяет частичное обновление к domain модели
func (r *UpdateServiceRequest) ApplyToService(s *domain.Service) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Price != nil {
		s.Price = *r.Price
	}
	if r.DurationMinutes != nil {
		s.DurationMinutes = *r.DurationMinutes
	}
	if r.Category != nil {
		if *r.Category == "" {
			s.Category = nil
		} else {
			category := *r.Category
			s.Category = &category
		}
	}
	if r.LinkedProductID != nil {
		if *r.LinkedProductID == 0 {
			s.LinkedProductID = nil
		} else {
			productID := *r.LinkedProductID
			s.LinkedProductID = &productID
		}
	}
	if r.Active != nil {
		s.Active = *r.Active
	}
}

// Response модели

// StaffResponse ответ с данными мастера
type StaffResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StaffListResponse ответ со списком мастеров
type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
}

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"durationMinutes"`
	Category        *string   `json:"category,omitempty"`
	LinkedProductID *int64    `json:"linkedProductId,omitempty"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// Методы конвертации

// ToDomainStaff конвертирует CreateStaffRequest в domain модель
func (r *CreateStaffRequest) ToDomainStaff() *domain.Staff {
	return &domain.Staff{
		Name:   r.Name,
		Color:  r.Color,
		Active: true,
	}
}

// ToDomainService конвертирует CreateServiceRequest в domain модель
func (r *CreateServiceRequest) ToDomainService() *domain.Service {
	return &domain.Service{
		Name:            r.Name,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		Category:        r.Category,
		LinkedProductID: r.LinkedProductID,
		Active:          true,
	}
}

// FromDomainStaff конвертирует domain модель в DTO
func FromDomainStaff(s *domain.Staff) *StaffResponse {
	if s == nil {
		return nil
	}

	return &StaffResponse{
		ID:        s.ID,
		Name:      s.Name,
		Color:     s.Color,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// FromDomainStaffList конвертирует список domain моделей в DTO
func FromDomainStaffList(staff []*domain.Staff) *StaffListResponse {
	if staff == nil {
		return &StaffListResponse{
			Staff: []StaffResponse{},
		}
	}

	resp := &StaffListResponse{
		Staff: make([]StaffResponse, len(staff)),
	}

	for i, member := range staff {
		if staffResp := FromDomainStaff(member); staffResp != nil {
			resp.Staff[i] = *staffResp
		}
	}

	return resp
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		Category:        s.Category,
		LinkedProductID: s.LinkedProductID,
		Active:          s.Active,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	if services == nil {
		return &ServiceListResponse{
			Services: []ServiceResponse{},
		}
	}

	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, len(services)),
	}

	for i, service := range services {
		if serviceResp := FromDomainService(service); serviceResp != nil {
			resp.Services[i] = *serviceResp
		}
	}

	return resp
}
