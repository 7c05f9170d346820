package get_free_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/boardconfig"
	staffRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByStaffAndDate(_ context.Context, staffID int64, date time.Time) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, appointment := range f.appointments {
		if appointment.StaffID == staffID && appointment.BoardDate.Equal(date) {
			result = append(result, appointment)
		}
	}
	return result, nil
}

type fakeConfigRepo struct{}

func (fakeConfigRepo) Get(_ context.Context) (*domain.BoardConfig, error) {
	return nil, configRepo.ErrConfigNotFound // доска работает на дефолтах 10:00-02:00/30
}

type fakeStaffRepo struct {
	staff map[int64]*domain.Staff
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id int64) (*domain.Staff, error) {
	staff, ok := f.staff[id]
	if !ok {
		return nil, staffRepo.ErrStaffNotFound
	}
	return staff, nil
}

type fakeServiceRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeServiceRepo) GetByIDs(_ context.Context, ids []int64) (map[int64]*domain.Service, error) {
	result := make(map[int64]*domain.Service)
	for _, id := range ids {
		if svc, ok := f.services[id]; ok {
			result[id] = svc
		}
	}
	return result, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func boardDate() time.Time {
	return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
}

func testAppointment(id int64, start string, durationMinutes int) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		StaffID:         1,
		ClientName:      "Мадина",
		BoardDate:       boardDate(),
		StartTime:       types.TimeString(start),
		DurationMinutes: durationMinutes,
	}
}

func newUseCase(appointments ...*domain.Appointment) *UseCase {
	return NewUseCase(
		&fakeAppointmentRepo{appointments: appointments},
		fakeConfigRepo{},
		&fakeStaffRepo{staff: map[int64]*domain.Staff{
			1: {ID: 1, Name: "Амаль", Active: true},
			2: {ID: 2, Name: "Сауле", Active: false},
		}},
		&fakeServiceRepo{services: map[int64]*domain.Service{
			10: {ID: 10, Name: "Стрижка", Price: 2500, DurationMinutes: 60, Active: true},
			12: {ID: 12, Name: "Укладка", Price: 1800, DurationMinutes: 30, Active: true},
			13: {ID: 13, Name: "Архивная услуга", Price: 1000, DurationMinutes: 30, Active: false},
		}},
		noopLogger{},
	)
}

func slotStarts(slots []Slot) []types.TimeString {
	starts := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		starts = append(starts, slot.StartTime)
	}
	return starts
}

func TestUseCase_Execute(t *testing.T) {
	t.Run("пустой день дает все ячейки под один интервал", func(t *testing.T) {
		uc := newUseCase()

		resp, err := uc.Execute(context.Background(), &Request{StaffID: 1, Date: boardDate()})
		require.NoError(t, err)

		assert.Equal(t, 30, resp.DurationMinutes)
		require.Len(t, resp.Slots, 32)
		assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].StartTime)
		assert.Equal(t, types.TimeString("10:30"), resp.Slots[0].EndTime)
		assert.Equal(t, types.TimeString("01:30"), resp.Slots[31].StartTime)
		assert.Equal(t, types.TimeString("02:00"), resp.Slots[31].EndTime)
	})

	t.Run("хвост сетки отсекается для длинной записи", func(t *testing.T) {
		uc := newUseCase()

		resp, err := uc.Execute(context.Background(), &Request{
			StaffID:    1,
			Date:       boardDate(),
			ServiceIDs: []int64{10}, // 60 минут
		})
		require.NoError(t, err)

		assert.Equal(t, 60, resp.DurationMinutes)
		// Последняя ячейка 01:30 не вмещает 60 минут до конца окна
		require.Len(t, resp.Slots, 31)
		last := resp.Slots[30]
		assert.Equal(t, types.TimeString("01:00"), last.StartTime)
		assert.Equal(t, types.TimeString("02:00"), last.EndTime)
	})

	t.Run("занятые ячейки исключаются", func(t *testing.T) {
		uc := newUseCase(testAppointment(1, "10:00", 90))

		resp, err := uc.Execute(context.Background(), &Request{StaffID: 1, Date: boardDate()})
		require.NoError(t, err)

		starts := slotStarts(resp.Slots)
		assert.NotContains(t, starts, types.TimeString("10:00"))
		assert.NotContains(t, starts, types.TimeString("10:30"))
		assert.NotContains(t, starts, types.TimeString("11:00"))
		assert.Contains(t, starts, types.TimeString("11:30"))
	})

	t.Run("граничное касание с записью не мешает", func(t *testing.T) {
		uc := newUseCase(testAppointment(1, "12:00", 60))

		resp, err := uc.Execute(context.Background(), &Request{
			StaffID:         1,
			Date:            boardDate(),
			DurationMinutes: 60,
		})
		require.NoError(t, err)

		starts := slotStarts(resp.Slots)
		// 11:00-12:00 и 13:00-14:00 граничат с записью вплотную
		assert.Contains(t, starts, types.TimeString("11:00"))
		assert.Contains(t, starts, types.TimeString("13:00"))
		assert.NotContains(t, starts, types.TimeString("11:30"))
		assert.NotContains(t, starts, types.TimeString("12:00"))
		assert.NotContains(t, starts, types.TimeString("12:30"))
	})

	t.Run("длительность складывается по корзине услуг", func(t *testing.T) {
		uc := newUseCase()

		resp, err := uc.Execute(context.Background(), &Request{
			StaffID:    1,
			Date:       boardDate(),
			ServiceIDs: []int64{10, 12}, // 60 + 30
		})
		require.NoError(t, err)

		assert.Equal(t, 90, resp.DurationMinutes)
		assert.Equal(t, types.TimeString("11:30"), resp.Slots[0].EndTime)
	})

	t.Run("сместившаяся запись блокирует задетые ячейки", func(t *testing.T) {
		// Запись 10:10 хранится с тех времен, когда сетка была другой
		uc := newUseCase(testAppointment(1, "10:10", 30))

		resp, err := uc.Execute(context.Background(), &Request{StaffID: 1, Date: boardDate()})
		require.NoError(t, err)

		starts := slotStarts(resp.Slots)
		assert.NotContains(t, starts, types.TimeString("10:00"))
		assert.NotContains(t, starts, types.TimeString("10:30"))
		assert.Contains(t, starts, types.TimeString("11:00"))
	})

	t.Run("явная длительность и услуги вместе не принимаются", func(t *testing.T) {
		uc := newUseCase()

		_, err := uc.Execute(context.Background(), &Request{
			StaffID:         1,
			Date:            boardDate(),
			ServiceIDs:      []int64{10},
			DurationMinutes: 45,
		})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("деактивированный мастер отклоняется", func(t *testing.T) {
		uc := newUseCase()

		_, err := uc.Execute(context.Background(), &Request{StaffID: 2, Date: boardDate()})
		require.ErrorIs(t, err, ErrStaffInactive)
	})

	t.Run("несуществующий мастер", func(t *testing.T) {
		uc := newUseCase()

		_, err := uc.Execute(context.Background(), &Request{StaffID: 99, Date: boardDate()})
		require.ErrorIs(t, err, ErrStaffNotFound)
	})

	t.Run("несуществующая услуга", func(t *testing.T) {
		uc := newUseCase()

		_, err := uc.Execute(context.Background(), &Request{
			StaffID:    1,
			Date:       boardDate(),
			ServiceIDs: []int64{10, 99},
		})
		require.ErrorIs(t, err, ErrServiceNotFound)
		assert.Contains(t, err.Error(), "id = 99")
	})

	t.Run("архивная услуга", func(t *testing.T) {
		uc := newUseCase()

		_, err := uc.Execute(context.Background(), &Request{
			StaffID:    1,
			Date:       boardDate(),
			ServiceIDs: []int64{13},
		})
		require.ErrorIs(t, err, ErrServiceInactive)
	})

	t.Run("чужие записи не влияют на колонку мастера", func(t *testing.T) {
		other := testAppointment(1, "10:00", 480)
		other.StaffID = 3

		uc := newUseCase(other)

		resp, err := uc.Execute(context.Background(), &Request{StaffID: 1, Date: boardDate()})
		require.NoError(t, err)
		require.Len(t, resp.Slots, 32)
	})
}
