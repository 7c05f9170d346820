package events

import "time"

// Типы событий доски
const (
	EventAppointmentPlaced  = "appointment_placed"
	EventAppointmentMoved   = "appointment_moved"
	EventAppointmentDeleted = "appointment_deleted"
	EventPaymentUpdated     = "payment_updated"
	EventBoardConfigUpdated = "board_config_updated"
	EventDayRolledOver      = "day_rolled_over"
)

// BoardEvent - событие изменения доски, публикуемое в Kafka.
// Партиционируется по бизнес-дате, чтобы подписчики читали события
// одного дня по порядку.
type BoardEvent struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	BoardDate     string    `json:"boardDate"`
	StaffID       int64     `json:"staffId,omitempty"`
	AppointmentID int64     `json:"appointmentId,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}
