package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_ServiceSummary(t *testing.T) {
	appointment := &Appointment{
		Items: []AppointmentItem{
			{ServiceID: 1, Position: 0, ServiceName: "Стрижка"},
			{ServiceID: 2, Position: 1, ServiceName: "Укладка"},
		},
	}

	assert.Equal(t, "Стрижка, Укладка", appointment.ServiceSummary())
}

func TestAppointment_ServiceSummary_Empty(t *testing.T) {
	appointment := &Appointment{}
	assert.Empty(t, appointment.ServiceSummary())
}

func TestAppointment_EndTime(t *testing.T) {
	appointment := &Appointment{StartTime: "23:30", DurationMinutes: 90}
	assert.Equal(t, "01:00", appointment.EndTime().String())
}

func TestLoyaltyPointsFor(t *testing.T) {
	assert.Equal(t, 550, LoyaltyPointsFor(5500))
	assert.Equal(t, 0, LoyaltyPointsFor(9.99))
	assert.Equal(t, 0, LoyaltyPointsFor(-100))
}

func TestProduct_Stock(t *testing.T) {
	product := &Product{Quantity: 3, LowStockThreshold: 5}

	assert.True(t, product.HasStock(3))
	assert.False(t, product.HasStock(4))
	assert.True(t, product.IsLowStock())

	full := &Product{Quantity: 50, LowStockThreshold: 5}
	assert.False(t, full.IsLowStock())
}
