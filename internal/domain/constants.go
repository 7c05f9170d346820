package domain

// Default board configuration values
const (
	DefaultDayStartHour    = 10
	DefaultDayEndHour      = 26 // 02:00 следующего календарного дня
	DefaultIntervalMinutes = 30
	DefaultRolloverHour    = 2
)

// Business validation constants
const (
	MinIntervalMinutes = 5
	MaxIntervalMinutes = 240 // 4 hours

	MinDayStartHour = 0
	MaxDayStartHour = 23
	MaxWindowHours  = 24

	MinRolloverHour = 0
	MaxRolloverHour = 12

	MaxAppointmentDurationMinutes = 480 // 8 hours
	MaxServicesPerAppointment     = 20

	MaxStaffNameLength   = 100
	MaxClientNameLength  = 150
	MaxServiceNameLength = 150
	MaxProductNameLength = 150
	MaxNotesLength       = 500
	MaxColorLength       = 20
)

// Loyalty program constants
const (
	// LoyaltySpendPerPoint - сколько потраченных единиц стоит один балл
	LoyaltySpendPerPoint = 10
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// LoyaltyPointsFor returns the number of loyalty points earned for the
// given amount spent. Negative amounts earn nothing.
func LoyaltyPointsFor(amount float64) int {
	if amount <= 0 {
		return 0
	}

	return int(amount) / LoyaltySpendPerPoint
}
