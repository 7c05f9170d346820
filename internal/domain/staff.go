package domain

import "time"

// Staff represents a staff member owning a column on the board.
type Staff struct {
	ID     int64
	Name   string
	Color  string // цвет колонки на доске, например "#7c4dff"
	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanTakeAppointments returns true if new appointments may be placed
// into this staff member's column.
func (s *Staff) CanTakeAppointments() bool {
	return s.Active
}
