package domain

import "time"

// Product represents a stock product consumed by linked services.
type Product struct {
	ID                int64
	Name              string
	Quantity          int
	LowStockThreshold int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasStock returns true if at least n units are available.
func (p *Product) HasStock(n int) bool {
	return p.Quantity >= n
}

// IsLowStock returns true if the remaining quantity is at or below the
// low stock threshold.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.LowStockThreshold
}

// StockMovementType represents the kind of a stock ledger entry.
type StockMovementType string

const (
	// MovementConsumption - списание при размещении записи
	MovementConsumption StockMovementType = "consumption"
	// MovementRestock - пополнение склада
	MovementRestock StockMovementType = "restock"
	// MovementAdjustment - ручная корректировка администратором
	MovementAdjustment StockMovementType = "adjustment"
)

// StockMovement is one entry of the stock ledger. The ledger keeps the
// resulting quantity so the history stays readable without replaying.
type StockMovement struct {
	ID            int64
	ProductID     int64
	AppointmentID *int64 // запись, вызвавшая списание (для consumption)
	Type          StockMovementType
	Delta         int
	QuantityAfter int
	CreatedAt     time.Time
}
