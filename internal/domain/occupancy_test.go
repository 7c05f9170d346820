package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

func testAppointment(id int64, start types.TimeString, durationMinutes int) *Appointment {
	return &Appointment{
		ID:              id,
		StaffID:         1,
		ClientName:      "Amal",
		BoardDate:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		StartTime:       start,
		DurationMinutes: durationMinutes,
	}
}

func TestResolveOccupancy_MultiSlotAppointment(t *testing.T) {
	grid := defaultGrid()

	// Запись на 90 минут в 10:00 занимает три ячейки
	appointments := []*Appointment{testAppointment(7, "10:00", 90)}

	occupancy := ResolveOccupancy(1, appointments, grid)
	require.Len(t, occupancy.Cells, 32)
	assert.Empty(t, occupancy.Warnings)

	assert.Equal(t, CellStart, occupancy.Cells[0].State, "10:00 is the start cell")
	assert.Equal(t, int64(7), occupancy.Cells[0].AppointmentID)

	assert.Equal(t, CellCovered, occupancy.Cells[1].State, "10:30 is covered")
	assert.Equal(t, int64(7), occupancy.Cells[1].AppointmentID)

	assert.Equal(t, CellCovered, occupancy.Cells[2].State, "11:00 is covered")
	assert.Equal(t, int64(7), occupancy.Cells[2].AppointmentID)

	assert.Equal(t, CellFree, occupancy.Cells[3].State, "11:30 is free again")
	assert.Zero(t, occupancy.Cells[3].AppointmentID)
}

func TestResolveOccupancy_CoveredByDistantStart(t *testing.T) {
	grid := defaultGrid()

	// Ячейка занята записью, начавшейся за несколько слотов до нее,
	// а не только в соседнем слоте
	appointments := []*Appointment{testAppointment(3, "12:00", 120)}

	occupancy := ResolveOccupancy(1, appointments, grid)

	// 12:00 - индекс 4; 13:30 - индекс 7, последняя накрытая ячейка
	assert.Equal(t, CellStart, occupancy.Cells[4].State)
	assert.Equal(t, CellCovered, occupancy.Cells[7].State)
	assert.Equal(t, CellFree, occupancy.Cells[8].State)
}

func TestResolveOccupancy_PastMidnight(t *testing.T) {
	grid := defaultGrid()

	appointments := []*Appointment{testAppointment(9, "01:00", 60)}

	occupancy := ResolveOccupancy(1, appointments, grid)

	// 01:00 - offset 900, индекс 30; запись доходит ровно до конца окна
	assert.Equal(t, CellStart, occupancy.Cells[30].State)
	assert.Equal(t, CellCovered, occupancy.Cells[31].State)
	assert.Empty(t, occupancy.Warnings)
}

func TestResolveOccupancy_OverlappingAppointmentsWarn(t *testing.T) {
	grid := defaultGrid()

	appointments := []*Appointment{
		testAppointment(1, "10:00", 90),
		testAppointment(2, "10:30", 60),
	}

	occupancy := ResolveOccupancy(1, appointments, grid)

	// Обе записи остаются видимыми: первая занимает свои ячейки,
	// вторая - только свободный хвост
	assert.Equal(t, CellStart, occupancy.Cells[0].State)
	assert.Equal(t, int64(1), occupancy.Cells[1].AppointmentID)
	assert.Equal(t, int64(2), occupancy.Cells[3].AppointmentID)

	require.Len(t, occupancy.Warnings, 1, "one warning per overlapping pair")
	assert.Equal(t, int64(2), occupancy.Warnings[0].AppointmentID)
	assert.Equal(t, int64(1), occupancy.Warnings[0].BlockingAppointmentID)
}

func TestResolveOccupancy_OutsideWindowWarns(t *testing.T) {
	grid := defaultGrid()

	appointments := []*Appointment{testAppointment(4, "05:00", 30)}

	occupancy := ResolveOccupancy(1, appointments, grid)

	for _, cell := range occupancy.Cells {
		assert.Equal(t, CellFree, cell.State)
	}

	require.Len(t, occupancy.Warnings, 1)
	assert.Equal(t, int64(4), occupancy.Warnings[0].AppointmentID)
	assert.Zero(t, occupancy.Warnings[0].BlockingAppointmentID)
}

func TestResolveOccupancy_MisalignedStartStillRenders(t *testing.T) {
	// Интервал сетки поменяли с 30 на 45 минут, запись в 10:30 осталась
	grid := GridConfig{DayStartHour: 10, DayEndHour: 22, IntervalMinutes: 45}

	appointments := []*Appointment{testAppointment(5, "10:30", 60)}

	occupancy := ResolveOccupancy(1, appointments, grid)

	// Старт попадает в ячейку, содержащую 10:30 (индекс 0), интервал
	// [30, 90) задевает и вторую ячейку
	assert.Equal(t, CellStart, occupancy.Cells[0].State)
	assert.Equal(t, CellCovered, occupancy.Cells[1].State)
	assert.Equal(t, CellFree, occupancy.Cells[2].State)
	assert.Empty(t, occupancy.Warnings)
}

func TestFindConflict(t *testing.T) {
	grid := defaultGrid()

	day := []*Appointment{testAppointment(7, "10:00", 90)}

	t.Run("inside blocked span conflicts", func(t *testing.T) {
		offset, ok := grid.SlotOffset("11:00")
		require.True(t, ok)

		conflict := FindConflict(day, grid, offset, 30, 0)
		require.NotNil(t, conflict)
		assert.Equal(t, int64(7), conflict.ID)
	})

	t.Run("first free cell does not conflict", func(t *testing.T) {
		offset, ok := grid.SlotOffset("11:30")
		require.True(t, ok)

		assert.Nil(t, FindConflict(day, grid, offset, 30, 0))
	})

	t.Run("boundary touch is not a conflict", func(t *testing.T) {
		offset, ok := grid.SlotOffset("08:00")
		require.False(t, ok)
		_ = offset

		// Запись до 11:30, кандидат ровно с 11:30 - границы соприкасаются
		offset, ok = grid.SlotOffset("11:30")
		require.True(t, ok)
		assert.Nil(t, FindConflict(day, grid, offset, 60, 0))
	})

	t.Run("excluded appointment is skipped", func(t *testing.T) {
		offset, ok := grid.SlotOffset("10:00")
		require.True(t, ok)

		// Перенос записи на ее собственное место не конфликтует с ней самой
		assert.Nil(t, FindConflict(day, grid, offset, 90, 7))
	})

	t.Run("longer candidate overlapping tail conflicts", func(t *testing.T) {
		offset, ok := grid.SlotOffset("09:00")
		require.False(t, ok)
		_ = offset

		offset, ok = grid.SlotOffset("10:30")
		require.True(t, ok)
		conflict := FindConflict(day, grid, offset, 120, 0)
		require.NotNil(t, conflict)
		assert.Equal(t, int64(7), conflict.ID)
	})
}

func TestFindConflict_DurationRoundsUpToCells(t *testing.T) {
	grid := defaultGrid()

	// 100 минут занимают 4 ячейки: до 12:00 исключительно
	day := []*Appointment{testAppointment(1, "10:00", 100)}

	offset, ok := grid.SlotOffset("11:30")
	require.True(t, ok)
	require.NotNil(t, FindConflict(day, grid, offset, 30, 0))

	offset, ok = grid.SlotOffset("12:00")
	require.True(t, ok)
	assert.Nil(t, FindConflict(day, grid, offset, 30, 0))
}
