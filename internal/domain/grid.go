package domain

import (
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

const minutesPerDay = 24 * 60

// GridConfig describes the slot grid of a single working day.
// The window may wrap past midnight: DayStartHour 10 and DayEndHour 26
// produce a 10:00–02:00 day. All slot positions are expressed as
// minutes from the start of the window, so wrapped days need no
// special handling downstream.
type GridConfig struct {
	DayStartHour    int
	DayEndHour      int // may exceed 24
	IntervalMinutes int
}

// Slot is a single cell position of the day grid.
type Slot struct {
	MinutesFromDayStart int
	Label               string // настенное время "HH:MM"
}

// WindowMinutes returns the total length of the working window.
func (c GridConfig) WindowMinutes() int {
	return (c.DayEndHour - c.DayStartHour) * 60
}

// Validate checks that the grid describes a usable working window.
func (c GridConfig) Validate() error {
	if c.DayStartHour < MinDayStartHour || c.DayStartHour > MaxDayStartHour {
		return fmt.Errorf("day start hour %d out of range [%d, %d]", c.DayStartHour, MinDayStartHour, MaxDayStartHour)
	}
	if c.DayEndHour <= c.DayStartHour {
		return fmt.Errorf("day end hour %d must be after day start hour %d", c.DayEndHour, c.DayStartHour)
	}
	if c.DayEndHour-c.DayStartHour > MaxWindowHours {
		return fmt.Errorf("working window %d hours exceeds %d", c.DayEndHour-c.DayStartHour, MaxWindowHours)
	}
	if c.IntervalMinutes < MinIntervalMinutes || c.IntervalMinutes > MaxIntervalMinutes {
		return fmt.Errorf("slot interval %d minutes out of range [%d, %d]", c.IntervalMinutes, MinIntervalMinutes, MaxIntervalMinutes)
	}

	return nil
}

// SlotCount returns the number of slots whose full interval fits the window.
func (c GridConfig) SlotCount() int {
	if c.IntervalMinutes <= 0 {
		return 0
	}

	return c.WindowMinutes() / c.IntervalMinutes
}

// Slots enumerates all grid slots of the day in order.
func (c GridConfig) Slots() []Slot {
	count := c.SlotCount()
	if count <= 0 {
		return nil
	}

	slots := make([]Slot, 0, count)
	for i := 0; i < count; i++ {
		offset := i * c.IntervalMinutes
		slots = append(slots, Slot{
			MinutesFromDayStart: offset,
			Label:               c.LabelAt(offset),
		})
	}

	return slots
}

// LabelAt returns the wall-clock label "HH:MM" for the given offset.
// Offsets past midnight wrap around: with a 10:00 day start, offset 900
// labels as "01:00".
func (c GridConfig) LabelAt(offsetMinutes int) string {
	total := (c.DayStartHour*60 + offsetMinutes) % minutesPerDay

	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// SlotOffset maps a wall-clock time onto the window as minutes from the
// day start. Returns false if the time lies outside the window.
// Времена до полуночи и после полуночи различаются именно здесь:
// для окна 10:00–02:00 время "01:30" дает offset 930.
func (c GridConfig) SlotOffset(t types.TimeString) (int, bool) {
	offset := (t.MinutesFromMidnight() - c.DayStartHour*60 + minutesPerDay) % minutesPerDay

	return offset, offset < c.WindowMinutes()
}

// AlignedToGrid returns true if the offset lands exactly on a slot start.
func (c GridConfig) AlignedToGrid(offsetMinutes int) bool {
	if c.IntervalMinutes <= 0 {
		return false
	}

	return offsetMinutes%c.IntervalMinutes == 0
}

// SlotIndex returns the index of the slot containing the offset.
func (c GridConfig) SlotIndex(offsetMinutes int) int {
	if c.IntervalMinutes <= 0 {
		return 0
	}

	return offsetMinutes / c.IntervalMinutes
}

// FitsWindow returns true if an appointment starting at offsetMinutes
// with the given duration ends within the working window.
func (c GridConfig) FitsWindow(offsetMinutes, durationMinutes int) bool {
	return offsetMinutes >= 0 && offsetMinutes+durationMinutes <= c.WindowMinutes()
}

// SpanSlots returns how many grid cells an appointment of the given
// duration occupies. Durations are rounded up to whole cells: 90 minutes
// on a 30-minute grid span 3 cells, 100 minutes span 4.
func SpanSlots(durationMinutes, intervalMinutes int) int {
	if intervalMinutes <= 0 || durationMinutes <= 0 {
		return 0
	}

	return (durationMinutes + intervalMinutes - 1) / intervalMinutes
}
