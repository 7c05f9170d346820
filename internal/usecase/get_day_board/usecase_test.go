package get_day_board

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/boardconfig"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type fakeAppointmentRepo struct {
	byDate map[string][]*domain.Appointment
	calls  int
}

func (f *fakeAppointmentRepo) GetByDate(_ context.Context, date time.Time) ([]*domain.Appointment, error) {
	f.calls++
	return f.byDate[date.Format(domain.DateFormat)], nil
}

type fakeConfigRepo struct {
	config *domain.BoardConfig
}

func (f *fakeConfigRepo) Get(_ context.Context) (*domain.BoardConfig, error) {
	if f.config == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return f.config, nil
}

type fakeStaffRepo struct {
	staff []*domain.Staff
}

func (f *fakeStaffRepo) List(_ context.Context, activeOnly bool) ([]*domain.Staff, error) {
	if !activeOnly {
		return f.staff, nil
	}
	var result []*domain.Staff
	for _, s := range f.staff {
		if s.Active {
			result = append(result, s)
		}
	}
	return result, nil
}

type fakeCache struct {
	payloads map[string]string
	sets     int
}

func (f *fakeCache) Get(_ context.Context, date string) (string, bool, error) {
	payload, ok := f.payloads[date]
	return payload, ok, nil
}

func (f *fakeCache) Set(_ context.Context, date, payload string) error {
	f.payloads[date] = payload
	f.sets++
	return nil
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

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
		PriceTotal:      2500,
		Items: []domain.AppointmentItem{
			{ID: id, AppointmentID: id, ServiceID: 10, Position: 1, ServiceName: "Стрижка", Price: 2500, DurationMinutes: durationMinutes},
		},
	}
}

type fixture struct {
	uc           *UseCase
	appointments *fakeAppointmentRepo
	cache        *fakeCache
}

func newFixture(staff []*domain.Staff, appointments ...*domain.Appointment) *fixture {
	repo := &fakeAppointmentRepo{byDate: map[string][]*domain.Appointment{}}
	for _, appointment := range appointments {
		key := appointment.BoardDate.Format(domain.DateFormat)
		repo.byDate[key] = append(repo.byDate[key], appointment)
	}

	cache := &fakeCache{payloads: map[string]string{}}

	uc := NewUseCase(
		repo,
		&fakeConfigRepo{}, // дефолтная сетка 10:00-02:00/30
		&fakeStaffRepo{staff: staff},
		cache,
		noopLogger{},
	)
	// Днем 1 марта доска этого дня является текущей
	uc.timeProvider = &fakeClock{now: time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)}

	return &fixture{uc: uc, appointments: repo, cache: cache}
}

func defaultStaff() []*domain.Staff {
	return []*domain.Staff{
		{ID: 1, Name: "Амаль", Color: "#7C3AED", Active: true},
		{ID: 2, Name: "Дана", Color: "#0EA5E9", Active: true},
	}
}

func cellStates(cells []BoardCell, from, to int) []string {
	states := make([]string, 0, to-from)
	for _, cell := range cells[from:to] {
		states = append(states, cell.State)
	}
	return states
}

func TestUseCase_Execute(t *testing.T) {
	t.Run("запись на 90 минут занимает ячейку старта и две продолжения", func(t *testing.T) {
		f := newFixture(defaultStaff(), testAppointment(1, 1, "10:00", 90))

		date := boardDate()
		resp, err := f.uc.Execute(context.Background(), &Request{Date: &date})
		require.NoError(t, err)

		require.Len(t, resp.Columns, 2)
		column := resp.Columns[0]
		assert.Equal(t, int64(1), column.StaffID)
		assert.Equal(t, "Амаль", column.StaffName)

		require.Len(t, column.Cells, 32)
		assert.Equal(t, []string{"start", "covered", "covered", "free"}, cellStates(column.Cells, 0, 4))
		assert.Equal(t, int64(1), column.Cells[0].AppointmentID)
		assert.Equal(t, int64(1), column.Cells[2].AppointmentID)
		assert.Equal(t, int64(0), column.Cells[3].AppointmentID)

		// Колонка соседнего мастера полностью свободна
		for _, cell := range resp.Columns[1].Cells {
			assert.Equal(t, "free", cell.State)
		}
		assert.Empty(t, resp.Warnings)
	})

	t.Run("сетка и записи колонки", func(t *testing.T) {
		f := newFixture(defaultStaff(), testAppointment(1, 1, "01:00", 30))

		date := boardDate()
		resp, err := f.uc.Execute(context.Background(), &Request{Date: &date})
		require.NoError(t, err)

		assert.Equal(t, 10, resp.Grid.DayStartHour)
		assert.Equal(t, 26, resp.Grid.DayEndHour)
		assert.Equal(t, 30, resp.Grid.IntervalMinutes)
		require.Len(t, resp.Grid.SlotLabels, 32)
		assert.Equal(t, "10:00", resp.Grid.SlotLabels[0])
		assert.Equal(t, "01:30", resp.Grid.SlotLabels[31])

		// Ночная запись лежит в хвосте сетки той же доски
		column := resp.Columns[0]
		assert.Equal(t, "start", column.Cells[30].State)
		require.Len(t, column.Appointments, 1)
		assert.Equal(t, types.TimeString("01:00"), column.Appointments[0].StartTime)
		assert.Equal(t, types.TimeString("01:30"), column.Appointments[0].EndTime)
		assert.Equal(t, "Стрижка", column.Appointments[0].ServiceSummary)
	})

	t.Run("пересекающиеся записи дают предупреждение", func(t *testing.T) {
		f := newFixture(defaultStaff(),
			testAppointment(1, 1, "10:00", 90),
			testAppointment(2, 1, "11:00", 60),
		)

		date := boardDate()
		resp, err := f.uc.Execute(context.Background(), &Request{Date: &date})
		require.NoError(t, err)

		require.Len(t, resp.Warnings, 1)
		warning := resp.Warnings[0]
		assert.Equal(t, int64(1), warning.StaffID)
		assert.Equal(t, "11:00", warning.SlotLabel)
		assert.Equal(t, int64(2), warning.AppointmentID)
		assert.Equal(t, int64(1), warning.BlockingAppointmentID)

		// Обе записи остаются видимыми в колонке
		require.Len(t, resp.Columns[0].Appointments, 2)
	})

	t.Run("запись вне рабочего окна попадает в предупреждения", func(t *testing.T) {
		f := newFixture(defaultStaff(), testAppointment(1, 1, "05:00", 60))

		date := boardDate()
		resp, err := f.uc.Execute(context.Background(), &Request{Date: &date})
		require.NoError(t, err)

		require.Len(t, resp.Warnings, 1)
		assert.Equal(t, "05:00", resp.Warnings[0].SlotLabel)
		assert.Equal(t, int64(1), resp.Warnings[0].AppointmentID)
		assert.Equal(t, int64(0), resp.Warnings[0].BlockingAppointmentID)

		// На ячейки такая запись не раскладывается, но в списке остается
		for _, cell := range resp.Columns[0].Cells {
			assert.Equal(t, "free", cell.State)
		}
		require.Len(t, resp.Columns[0].Appointments, 1)
	})

	t.Run("деактивированный мастер без записей не попадает в доску", func(t *testing.T) {
		staff := append(defaultStaff(), &domain.Staff{ID: 3, Name: "Сауле", Active: false})
		f := newFixture(staff)

		date := boardDate()
		resp, err := f.uc.Execute(context.Background(), &Request{Date: &date})
		require.NoError(t, err)

		require.Len(t, resp.Columns, 2)
		for _, column := range resp.Columns {
			assert.NotEqual(t, int64(3), column.StaffID)
		}
	})

	t.Run("деактивированный мастер с записями остается в исторической доске", func(t *testing.T) {
		staff := append(defaultStaff(), &domain.Staff{ID: 3, Name: "Сауле", Active: false})
		f := newFixture(staff, testAppointment(1, 3, "12:00", 60))

		date := boardDate()
		resp, err := f.uc.Execute(context.Background(), &Request{Date: &date})
		require.NoError(t, err)

		require.Len(t, resp.Columns, 3)
		column := resp.Columns[2]
		assert.Equal(t, int64(3), column.StaffID)
		assert.False(t, column.Active)
		assert.Equal(t, "start", column.Cells[4].State)
	})

	t.Run("без даты показывается текущий рабочий день", func(t *testing.T) {
		f := newFixture(defaultStaff(), testAppointment(1, 1, "01:00", 30))
		// Ночь с 1 на 2 марта, 01:30 - до переката еще рабочий день 1 марта
		f.uc.timeProvider = &fakeClock{now: time.Date(2025, 3, 2, 1, 30, 0, 0, time.UTC)}

		resp, err := f.uc.Execute(context.Background(), &Request{})
		require.NoError(t, err)

		assert.Equal(t, boardDate(), resp.Date)
		assert.True(t, resp.IsToday)
		assert.Equal(t, "start", resp.Columns[0].Cells[30].State)
	})

	t.Run("после переката та же доска перестает быть текущей", func(t *testing.T) {
		f := newFixture(defaultStaff())
		f.uc.timeProvider = &fakeClock{now: time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)}

		date := boardDate()
		resp, err := f.uc.Execute(context.Background(), &Request{Date: &date})
		require.NoError(t, err)

		assert.False(t, resp.IsToday)
	})

	t.Run("собранная доска сохраняется в кеш", func(t *testing.T) {
		f := newFixture(defaultStaff(), testAppointment(1, 1, "10:00", 60))

		date := boardDate()
		_, err := f.uc.Execute(context.Background(), &Request{Date: &date})
		require.NoError(t, err)

		assert.Equal(t, 1, f.cache.sets)
		require.Contains(t, f.cache.payloads, "2025-03-01")

		var cached Response
		require.NoError(t, json.Unmarshal([]byte(f.cache.payloads["2025-03-01"]), &cached))
		assert.Equal(t, "start", cached.Columns[0].Cells[0].State)
	})

	t.Run("повторный запрос отдается из кеша без похода в базу", func(t *testing.T) {
		f := newFixture(defaultStaff(), testAppointment(1, 1, "10:00", 60))

		date := boardDate()
		first, err := f.uc.Execute(context.Background(), &Request{Date: &date})
		require.NoError(t, err)
		require.Equal(t, 1, f.appointments.calls)

		second, err := f.uc.Execute(context.Background(), &Request{Date: &date})
		require.NoError(t, err)

		assert.Equal(t, 1, f.appointments.calls)
		assert.Equal(t, first.Columns, second.Columns)
	})

	t.Run("кешированная доска пересчитывает признак текущего дня", func(t *testing.T) {
		f := newFixture(defaultStaff(), testAppointment(1, 1, "10:00", 60))

		date := boardDate()
		resp, err := f.uc.Execute(context.Background(), &Request{Date: &date})
		require.NoError(t, err)
		require.True(t, resp.IsToday)

		// Перекат в 02:00 случился внутри TTL кеша
		f.uc.timeProvider = &fakeClock{now: time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)}

		resp, err = f.uc.Execute(context.Background(), &Request{Date: &date})
		require.NoError(t, err)
		assert.False(t, resp.IsToday)
	})

	t.Run("поврежденный кеш игнорируется", func(t *testing.T) {
		f := newFixture(defaultStaff(), testAppointment(1, 1, "10:00", 60))
		f.cache.payloads["2025-03-01"] = "{not json"

		date := boardDate()
		resp, err := f.uc.Execute(context.Background(), &Request{Date: &date})
		require.NoError(t, err)

		assert.Equal(t, 1, f.appointments.calls)
		assert.Equal(t, "start", resp.Columns[0].Cells[0].State)
	})

	t.Run("работает без кеша", func(t *testing.T) {
		f := newFixture(defaultStaff(), testAppointment(1, 1, "10:00", 60))
		f.uc.cache = nil

		date := boardDate()
		resp, err := f.uc.Execute(context.Background(), &Request{Date: &date})
		require.NoError(t, err)
		assert.Equal(t, "start", resp.Columns[0].Cells[0].State)
	})
}
