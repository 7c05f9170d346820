package domain

import (
	"fmt"
	"time"
)

// BoardConfig represents the board configuration for the location.
// A single row describes the working window, the grid interval and the
// hour at which the business day rolls over to the next one.
type BoardConfig struct {
	ID              int64
	DayStartHour    int
	DayEndHour      int // may exceed 24: 26 means 02:00 next calendar day
	IntervalMinutes int
	RolloverHour    int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Grid returns the slot grid derived from this configuration.
func (c *BoardConfig) Grid() GridConfig {
	return GridConfig{
		DayStartHour:    c.DayStartHour,
		DayEndHour:      c.DayEndHour,
		IntervalMinutes: c.IntervalMinutes,
	}
}

// WrapsPastMidnight returns true if the working window crosses midnight.
func (c *BoardConfig) WrapsPastMidnight() bool {
	return c.DayEndHour > 24
}

// Validate checks the configuration invariants. Помимо сетки проверяет
// час переката: он должен накрывать хвост окна после полуночи, иначе
// ночные записи легли бы на следующий рабочий день.
func (c *BoardConfig) Validate() error {
	if err := c.Grid().Validate(); err != nil {
		return err
	}
	if c.RolloverHour < MinRolloverHour || c.RolloverHour > MaxRolloverHour {
		return fmt.Errorf("rollover hour %d out of range [%d, %d]", c.RolloverHour, MinRolloverHour, MaxRolloverHour)
	}
	if c.WrapsPastMidnight() && c.RolloverHour < c.DayEndHour-24 {
		return fmt.Errorf("rollover hour %d is before the %02d:00 window end", c.RolloverHour, c.DayEndHour-24)
	}

	return nil
}

// DefaultBoardConfig returns the configuration used when none is stored.
func DefaultBoardConfig() *BoardConfig {
	return &BoardConfig{
		DayStartHour:    DefaultDayStartHour,
		DayEndHour:      DefaultDayEndHour,
		IntervalMinutes: DefaultIntervalMinutes,
		RolloverHour:    DefaultRolloverHour,
	}
}
