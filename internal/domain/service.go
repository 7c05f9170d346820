package domain

import "time"

// Service represents a catalog service that can be composed into an
// appointment.
type Service struct {
	ID              int64
	Name            string
	Price           float64
	DurationMinutes int
	Category        *string // группа в каталоге, например "Стрижки"
	LinkedProductID *int64  // товар, списываемый при оказании услуги
	Active          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasLinkedProduct returns true if providing the service consumes a
// stock product.
func (s *Service) HasLinkedProduct() bool {
	return s.LinkedProductID != nil
}
