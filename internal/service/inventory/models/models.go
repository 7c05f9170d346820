package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модели

// CreateProductRequest запрос на добавление товара
type CreateProductRequest struct {
	Name              string `json:"name"`
	Quantity          int    `json:"quantity"`
	LowStockThreshold int    `json:"lowStockThreshold"`
}

// ToDomainProduct конвертирует CreateProductRequest в domain модель
func (r *CreateProductRequest) ToDomainProduct() *domain.Product {
	return &domain.Product{
		Name:              r.Name,
		Quantity:          r.Quantity,
		LowStockThreshold: r.LowStockThreshold,
	}
}

// AdjustStockRequest запрос на изменение остатка.
// Положительная delta - пополнение склада, отрицательная - ручная корректировка.
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

// Response модели

// ProductResponse ответ с данными товара
type ProductResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Quantity          int       `json:"quantity"`
	LowStockThreshold int       `json:"lowStockThreshold"`
	LowStock          bool      `json:"lowStock"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ProductListResponse ответ со списком товаров
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

// StockMovementResponse одна запись журнала движений остатков
type StockMovementResponse struct {
	ID            int64     `json:"id"`
	ProductID     int64     `json:"productId"`
	AppointmentID *int64    `json:"appointmentId,omitempty"`
	Type          string    `json:"type"`
	Delta         int       `json:"delta"`
	QuantityAfter int       `json:"quantityAfter"`
	CreatedAt     time.Time `json:"createdAt"`
}

// StockMovementListResponse ответ с журналом движений
type StockMovementListResponse struct {
	Movements []StockMovementResponse `json:"movements"`
}

// Методы конвертации

// FromDomainProduct конвертирует domain модель в DTO
func FromDomainProduct(p *domain.Product) *ProductResponse {
	if p == nil {
		return nil
	}

	return &ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Quantity:          p.Quantity,
		LowStockThreshold: p.LowStockThreshold,
		LowStock:          p.IsLowStock(),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// FromDomainProductList конвертирует список domain моделей в DTO
func FromDomainProductList(products []*domain.Product) *ProductListResponse {
	if products == nil {
		return &ProductListResponse{
			Products: []ProductResponse{},
		}
	}

	resp := &ProductListResponse{
		Products: make([]ProductResponse, len(products)),
	}

	for i, product := range products {
		if productResp := FromDomainProduct(product); productResp != nil {
			resp.Products[i] = *productResp
		}
	}

	return resp
}

// FromDomainMovement конвертирует запись журнала в DTO
func FromDomainMovement(m *domain.StockMovement) *StockMovementResponse {
	if m == nil {
		return nil
	}

	return &StockMovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		AppointmentID: m.AppointmentID,
		Type:          string(m.Type),
		Delta:         m.Delta,
		QuantityAfter: m.QuantityAfter,
		CreatedAt:     m.CreatedAt,
	}
}

// FromDomainMovementList конвертирует журнал движений в DTO
func FromDomainMovementList(movements []*domain.StockMovement) *StockMovementListResponse {
	if movements == nil {
		return &StockMovementListResponse{
			Movements: []StockMovementResponse{},
		}
	}

	resp := &StockMovementListResponse{
		Movements: make([]StockMovementResponse, len(movements)),
	}

	for i, movement := range movements {
		if movementResp := FromDomainMovement(movement); movementResp != nil {
			resp.Movements[i] = *movementResp
		}
	}

	return resp
}
