package domain

import "time"

// Client represents a returning client tracked by the loyalty program.
type Client struct {
	ID            int64
	Name          string
	Phone         *string
	LoyaltyPoints int
	TotalSpent    float64
	VisitCount    int

	CreatedAt time.Time
	UpdatedAt time.Time
}
