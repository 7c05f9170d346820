package domain

// CellState describes what a single grid cell holds.
type CellState string

const (
	// CellFree - слот свободен
	CellFree CellState = "free"
	// CellStart - в этом слоте начинается запись
	CellStart CellState = "start"
	// CellCovered - слот занят продолжением записи, начавшейся раньше
	CellCovered CellState = "covered"
)

// Cell is one resolved grid cell of a staff column.
type Cell struct {
	State         CellState
	AppointmentID int64 // 0 when the cell is free
}

// OverlapWarning flags a data inconsistency discovered while resolving
// occupancy: two stored appointments overlap, or an appointment lies
// outside the configured working window (BlockingAppointmentID == 0).
type OverlapWarning struct {
	SlotLabel             string
	AppointmentID         int64
	BlockingAppointmentID int64
}

// StaffDayOccupancy is the resolved view of one staff column for one day.
type StaffDayOccupancy struct {
	StaffID  int64
	Cells    []Cell
	Warnings []OverlapWarning
}

// blockedRange returns the half-open cell index range [start, end)
// occupied by the appointment on the given grid. Appointments whose
// stored start no longer aligns to the grid still land in the cell
// containing their start instant; covered cells are every cell the
// interval [start, start+duration) touches.
func blockedRange(a *Appointment, grid GridConfig) (int, int, bool) {
	offset, inWindow := grid.SlotOffset(a.StartTime)
	if !inWindow || grid.IntervalMinutes <= 0 {
		return 0, 0, false
	}

	startIdx := grid.SlotIndex(offset)

	duration := a.DurationMinutes
	if duration <= 0 {
		duration = 1
	}

	endIdx := (offset + duration + grid.IntervalMinutes - 1) / grid.IntervalMinutes
	if max := grid.SlotCount(); endIdx > max {
		endIdx = max
	}
	if endIdx <= startIdx {
		endIdx = startIdx + 1
	}

	return startIdx, endIdx, true
}

// ResolveOccupancy classifies every grid cell of a staff day as free,
// start or covered. A cell is covered when any earlier appointment spans
// it, no matter how many cells back it starts. Overlapping stored
// appointments do not crash the resolver: both stay visible and a
// warning is recorded for the pair.
func ResolveOccupancy(staffID int64, appointments []*Appointment, grid GridConfig) *StaffDayOccupancy {
	occupancy := &StaffDayOccupancy{
		StaffID: staffID,
		Cells:   make([]Cell, grid.SlotCount()),
	}

	for i := range occupancy.Cells {
		occupancy.Cells[i].State = CellFree
	}

	seenPairs := make(map[[2]int64]bool)

	for _, a := range appointments {
		startIdx, endIdx, ok := blockedRange(a, grid)
		if !ok {
			occupancy.Warnings = append(occupancy.Warnings, OverlapWarning{
				SlotLabel:     a.StartTime.String(),
				AppointmentID: a.ID,
			})
			continue
		}

		for idx := startIdx; idx < endIdx; idx++ {
			cell := &occupancy.Cells[idx]

			if cell.State != CellFree {
				// Две записи претендуют на одну ячейку - фиксируем пару
				// один раз и не затираем уже отрисованную запись.
				pair := [2]int64{cell.AppointmentID, a.ID}
				if pair[0] > pair[1] {
					pair[0], pair[1] = pair[1], pair[0]
				}
				if !seenPairs[pair] {
					seenPairs[pair] = true
					occupancy.Warnings = append(occupancy.Warnings, OverlapWarning{
						SlotLabel:             grid.LabelAt(idx * grid.IntervalMinutes),
						AppointmentID:         a.ID,
						BlockingAppointmentID: cell.AppointmentID,
					})
				}
				continue
			}

			cell.AppointmentID = a.ID
			if idx == startIdx {
				cell.State = CellStart
			} else {
				cell.State = CellCovered
			}
		}
	}

	return occupancy
}

// FindConflict returns the first stored appointment whose blocked cells
// intersect a candidate placement at offsetMinutes with the given
// duration. The appointment with ID excludeID is skipped, so a move can
// validate against the day without colliding with itself. Appointments
// that merely touch at a boundary do not conflict.
func FindConflict(appointments []*Appointment, grid GridConfig, offsetMinutes, durationMinutes int, excludeID int64) *Appointment {
	if grid.IntervalMinutes <= 0 {
		return nil
	}

	candidateStart := grid.SlotIndex(offsetMinutes)
	candidateEnd := (offsetMinutes + durationMinutes + grid.IntervalMinutes - 1) / grid.IntervalMinutes
	if candidateEnd <= candidateStart {
		candidateEnd = candidateStart + 1
	}

	for _, a := range appointments {
		if excludeID != 0 && a.ID == excludeID {
			continue
		}

		startIdx, endIdx, ok := blockedRange(a, grid)
		if !ok {
			continue
		}

		if candidateStart < endIdx && startIdx < candidateEnd {
			return a
		}
	}

	return nil
}
