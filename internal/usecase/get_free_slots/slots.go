package get_free_slots

import (
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// collectFreeSlots перебирает все ячейки сетки и оставляет те, с которых
// запись заданной длительности целиком помещается в рабочее окно и не
// пересекается с существующими записями. Записи, граничащие с кандидатом
// вплотную, пересечением не считаются.
//
// Прошедшие по настенным часам ячейки не скрываются: администраторы
// оформляют записи задним числом.
func collectFreeSlots(grid domain.GridConfig, appointments []*domain.Appointment, durationMinutes int) []Slot {
	slots := make([]Slot, 0, grid.SlotCount())

	for _, gridSlot := range grid.Slots() {
		offset := gridSlot.MinutesFromDayStart

		if !grid.FitsWindow(offset, durationMinutes) {
			continue
		}

		if domain.FindConflict(appointments, grid, offset, durationMinutes, 0) != nil {
			continue
		}

		start := types.TimeString(gridSlot.Label)
		end, err := start.AddMinutes(durationMinutes)
		if err != nil {
			continue
		}

		slots = append(slots, Slot{StartTime: start, EndTime: end})
	}

	return slots
}
