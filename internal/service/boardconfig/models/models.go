package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модели

// UpdateConfigRequest запрос на изменение конфигурации доски.
// Все поля опциональны - обновляются только переданные значения.
type UpdateConfigRequest struct {
	DayStartHour    *int `json:"dayStartHour,omitempty"`
	DayEndHour      *int `json:"dayEndHour,omitempty"` // 26 = 02:00 следующего дня
	IntervalMinutes *int `json:"intervalMinutes,omitempty"`
	RolloverHour    *int `json:"rolloverHour,omitempty"`
}

// ApplyToConfig применяет частичное обновление к domain модели
func (r *UpdateConfigRequest) ApplyToConfig(c *domain.BoardConfig) {
	if r.DayStartHour != nil {
		c.DayStartHour = *r.DayStartHour
	}
	if r.DayEndHour != nil {
		c.DayEndHour = *r.DayEndHour
	}
	if r.IntervalMinutes != nil {
		c.IntervalMinutes = *r.IntervalMinutes
	}
	if r.RolloverHour != nil {
		c.RolloverHour = *r.RolloverHour
	}
}

// Response модели

// SlotResponse одна ячейка сетки
type SlotResponse struct {
	MinutesFromDayStart int    `json:"minutesFromDayStart"`
	Label               string `json:"label"` // настенное время "HH:MM"
}

// SlotsResponse ответ с перечислением ячеек сетки
type SlotsResponse struct {
	DayStartHour    int            `json:"dayStartHour"`
	DayEndHour      int            `json:"dayEndHour"`
	IntervalMinutes int            `json:"intervalMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// ConfigResponse ответ с конфигурацией доски
type ConfigResponse struct {
	DayStartHour      int       `json:"dayStartHour"`
	DayEndHour        int       `json:"dayEndHour"`
	IntervalMinutes   int       `json:"intervalMinutes"`
	RolloverHour      int       `json:"rolloverHour"`
	WrapsPastMidnight bool      `json:"wrapsPastMidnight"`
	SlotCount         int       `json:"slotCount"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Методы конвертации

// FromDomainSlots конвертирует перечисление слотов сетки в DTO
func FromDomainSlots(c *domain.BoardConfig, slots []domain.Slot) *SlotsResponse {
	resp := &SlotsResponse{
		DayStartHour:    c.DayStartHour,
		DayEndHour:      c.DayEndHour,
		IntervalMinutes: c.IntervalMinutes,
		Slots:           make([]SlotResponse, 0, len(slots)),
	}

	for _, slot := range slots {
		resp.Slots = append(resp.Slots, SlotResponse{
			MinutesFromDayStart: slot.MinutesFromDayStart,
			Label:               slot.Label,
		})
	}

	return resp
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.BoardConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		DayStartHour:      c.DayStartHour,
		DayEndHour:        c.DayEndHour,
		IntervalMinutes:   c.IntervalMinutes,
		RolloverHour:      c.RolloverHour,
		WrapsPastMidnight: c.WrapsPastMidnight(),
		SlotCount:         c.Grid().SlotCount(),
		UpdatedAt:         c.UpdatedAt,
	}
}
