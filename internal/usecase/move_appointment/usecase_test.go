package move_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/appointment"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/boardconfig"
	staffRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
	placements   int
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appointment, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *appointment
	return &copied, nil
}

func (f *fakeAppointmentRepo) GetByStaffAndDate(_ context.Context, staffID int64, date time.Time) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, appointment := range f.appointments {
		if appointment.StaffID == staffID && appointment.BoardDate.Equal(date) {
			copied := *appointment
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeAppointmentRepo) UpdatePlacement(_ context.Context, id, staffID int64, date time.Time, startTime types.TimeString) error {
	appointment, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appointment.StaffID = staffID
	appointment.BoardDate = date
	appointment.StartTime = startTime
	f.placements++
	return nil
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

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCache struct {
	invalidated []string
}

func (f *fakeCache) Invalidate(_ context.Context, dates ...string) error {
	f.invalidated = append(f.invalidated, dates...)
	return nil
}

type fakeMetrics struct {
	moved     int
	conflicts int
}

func (f *fakeMetrics) IncAppointmentMoved() { f.moved++ }
func (f *fakeMetrics) IncSlotConflict()     { f.conflicts++ }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func boardDate() time.Time {
	return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
}

func testAppointment(id, staffID int64, start string, durationMinutes int) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		StaffID:         staffID,
		ClientName:      "Мадина",
		BoardDate:       boardDate(),
		StartTime:       types.TimeString(start),
		DurationMinutes: durationMinutes,
		Items: []domain.AppointmentItem{
			{ID: id, AppointmentID: id, ServiceID: 10, ServiceName: "Стрижка", Price: 2500, DurationMinutes: durationMinutes},
		},
	}
}

type fixture struct {
	uc           *UseCase
	appointments *fakeAppointmentRepo
	cache        *fakeCache
	metrics      *fakeMetrics
}

func newFixture(appointments ...*domain.Appointment) *fixture {
	repo := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{}}
	for _, appointment := range appointments {
		repo.appointments[appointment.ID] = appointment
	}

	cache := &fakeCache{}
	metrics := &fakeMetrics{}

	uc := NewUseCase(
		repo,
		fakeConfigRepo{},
		&fakeStaffRepo{staff: map[int64]*domain.Staff{
			1: {ID: 1, Name: "Амаль", Active: true},
			2: {ID: 2, Name: "Дана", Active: true},
			3: {ID: 3, Name: "Сауле", Active: false},
		}},
		fakeTxManager{},
		nil,
		cache,
		metrics,
		noopLogger{},
	)

	return &fixture{uc: uc, appointments: repo, cache: cache, metrics: metrics}
}

func TestUseCase_Execute(t *testing.T) {
	t.Run("перенос в свободную ячейку другой колонки", func(t *testing.T) {
		f := newFixture(testAppointment(1, 1, "10:00", 60))

		resp, err := f.uc.Execute(context.Background(), &Request{
			AppointmentID: 1,
			StaffID:       2,
			StartTime:     types.TimeString("12:00"),
		})
		require.NoError(t, err)

		assert.Equal(t, int64(2), resp.StaffID)
		assert.Equal(t, types.TimeString("12:00"), resp.StartTime)
		assert.Equal(t, types.TimeString("13:00"), resp.EndTime)
		assert.Equal(t, 1, f.metrics.moved)
		assert.Equal(t, []string{"2025-03-01"}, f.cache.invalidated)
	})

	t.Run("перенос на занятый интервал отклоняется", func(t *testing.T) {
		f := newFixture(
			testAppointment(1, 1, "10:00", 60),
			testAppointment(2, 2, "12:00", 90), // у Даны занято 12:00-13:30
		)

		_, err := f.uc.Execute(context.Background(), &Request{
			AppointmentID: 1,
			StaffID:       2,
			StartTime:     types.TimeString("13:00"),
		})
		require.ErrorIs(t, err, ErrSlotConflict)
		assert.Equal(t, 1, f.metrics.conflicts)
		assert.Equal(t, 0, f.appointments.placements)
	})

	t.Run("запись не конфликтует сама с собой", func(t *testing.T) {
		f := newFixture(testAppointment(1, 1, "10:00", 90))

		// Сдвиг на полслота вперед внутри собственного интервала
		resp, err := f.uc.Execute(context.Background(), &Request{
			AppointmentID: 1,
			StaffID:       1,
			StartTime:     types.TimeString("10:30"),
		})
		require.NoError(t, err)
		assert.Equal(t, types.TimeString("10:30"), resp.StartTime)
	})

	t.Run("перенос в собственную ячейку - no-op успех", func(t *testing.T) {
		f := newFixture(testAppointment(1, 1, "10:00", 60))

		resp, err := f.uc.Execute(context.Background(), &Request{
			AppointmentID: 1,
			StaffID:       1,
			StartTime:     types.TimeString("10:00"),
		})
		require.NoError(t, err)
		assert.Equal(t, types.TimeString("10:00"), resp.StartTime)

		// Записи в БД не было: ни переноса, ни сброса кеша, ни метрик
		assert.Equal(t, 0, f.appointments.placements)
		assert.Empty(t, f.cache.invalidated)
		assert.Equal(t, 0, f.metrics.moved)
	})

	t.Run("перенос на другую дату сбрасывает кеш обеих дат", func(t *testing.T) {
		f := newFixture(testAppointment(1, 1, "10:00", 60))

		_, err := f.uc.Execute(context.Background(), &Request{
			AppointmentID: 1,
			StaffID:       1,
			Date:          boardDate().AddDate(0, 0, 1),
			StartTime:     types.TimeString("10:00"),
		})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"2025-03-01", "2025-03-02"}, f.cache.invalidated)
	})

	t.Run("перенос к неактивному мастеру отклоняется", func(t *testing.T) {
		f := newFixture(testAppointment(1, 1, "10:00", 60))

		_, err := f.uc.Execute(context.Background(), &Request{
			AppointmentID: 1,
			StaffID:       3,
			StartTime:     types.TimeString("12:00"),
		})
		require.ErrorIs(t, err, ErrStaffInactive)
	})

	t.Run("перенос внутри колонки неактивного мастера разрешен", func(t *testing.T) {
		f := newFixture(testAppointment(1, 3, "10:00", 60))

		resp, err := f.uc.Execute(context.Background(), &Request{
			AppointmentID: 1,
			StaffID:       3,
			StartTime:     types.TimeString("14:00"),
		})
		require.NoError(t, err)
		assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
	})

	t.Run("целевое время мимо сетки отклоняется", func(t *testing.T) {
		f := newFixture(testAppointment(1, 1, "10:00", 60))

		_, err := f.uc.Execute(context.Background(), &Request{
			AppointmentID: 1,
			StaffID:       1,
			StartTime:     types.TimeString("12:10"),
		})
		require.ErrorIs(t, err, ErrInvalidSlot)
	})

	t.Run("выход за конец окна отклоняется", func(t *testing.T) {
		f := newFixture(testAppointment(1, 1, "10:00", 90))

		// 01:00 + 90 минут = 02:30, окно заканчивается в 02:00
		_, err := f.uc.Execute(context.Background(), &Request{
			AppointmentID: 1,
			StaffID:       1,
			StartTime:     types.TimeString("01:00"),
		})
		require.ErrorIs(t, err, ErrInvalidSlot)
	})

	t.Run("перенос за полночь разрешен", func(t *testing.T) {
		f := newFixture(testAppointment(1, 1, "10:00", 60))

		resp, err := f.uc.Execute(context.Background(), &Request{
			AppointmentID: 1,
			StaffID:       1,
			StartTime:     types.TimeString("00:30"),
		})
		require.NoError(t, err)
		assert.Equal(t, types.TimeString("01:30"), resp.EndTime)
	})

	t.Run("запись не найдена", func(t *testing.T) {
		f := newFixture()

		_, err := f.uc.Execute(context.Background(), &Request{
			AppointmentID: 99,
			StaffID:       1,
			StartTime:     types.TimeString("12:00"),
		})
		require.ErrorIs(t, err, ErrAppointmentNotFound)
	})

	t.Run("целевой мастер не найден", func(t *testing.T) {
		f := newFixture(testAppointment(1, 1, "10:00", 60))

		_, err := f.uc.Execute(context.Background(), &Request{
			AppointmentID: 1,
			StaffID:       99,
			StartTime:     types.TimeString("12:00"),
		})
		require.ErrorIs(t, err, ErrStaffNotFound)
	})
}
