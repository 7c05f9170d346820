package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/appointment"
	clientRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/client"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/loyaltyservice"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
	setPaidCalls int
	deleteCalls  int
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appointment, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *appointment
	return &copied, nil
}

func (f *fakeAppointmentRepo) GetWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, appointment := range f.appointments {
		if filter.ClientID != nil {
			if appointment.ClientID == nil || *appointment.ClientID != *filter.ClientID {
				continue
			}
		}
		if filter.StaffID != nil && appointment.StaffID != *filter.StaffID {
			continue
		}
		result = append(result, appointment)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) SetPaid(_ context.Context, id int64, paid bool) error {
	appointment, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appointment.Paid = paid
	f.setPaidCalls++
	return nil
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.appointments[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	delete(f.appointments, id)
	f.deleteCalls++
	return nil
}

type fakeClientRepo struct {
	clients     map[int64]*domain.Client
	visitCalls  []appliedVisit
	failOnApply error
}

type appliedVisit struct {
	clientID int64
	amount   float64
	points   int
}

func (f *fakeClientRepo) GetByID(_ context.Context, id int64) (*domain.Client, error) {
	client, ok := f.clients[id]
	if !ok {
		return nil, clientRepo.ErrClientNotFound
	}
	return client, nil
}

func (f *fakeClientRepo) ApplyVisit(_ context.Context, id int64, amount float64, points int) error {
	if f.failOnApply != nil {
		return f.failOnApply
	}
	f.visitCalls = append(f.visitCalls, appliedVisit{clientID: id, amount: amount, points: points})
	return nil
}

type fakeLoyaltyClient struct {
	visits []loyaltyservice.VisitEvent
	err    error
}

func (f *fakeLoyaltyClient) RecordPaidVisitWithGracefulDegradation(_ context.Context, visit loyaltyservice.VisitEvent) error {
	if f.err != nil {
		return f.err
	}
	f.visits = append(f.visits, visit)
	return nil
}

type fakePublisher struct {
	published []events.BoardEvent
}

func (f *fakePublisher) PublishBoardEvent(_ context.Context, event events.BoardEvent) error {
	f.published = append(f.published, event)
	return nil
}

type fakeCache struct {
	invalidated []string
}

func (f *fakeCache) Invalidate(_ context.Context, dates ...string) error {
	f.invalidated = append(f.invalidated, dates...)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func paidTestAppointment(id int64, clientID *int64, price float64, paid bool) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		StaffID:         1,
		ClientID:        clientID,
		ClientName:      "Амаль",
		BoardDate:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("11:30"),
		DurationMinutes: 60,
		PriceTotal:      price,
		Paid:            paid,
		Items: []domain.AppointmentItem{
			{ID: 1, AppointmentID: id, ServiceID: 10, Position: 0, ServiceName: "Стрижка", Price: price, DurationMinutes: 60},
		},
	}
}

func newTestService(repo *fakeAppointmentRepo, clients *fakeClientRepo, loyalty *fakeLoyaltyClient) (*Service, *fakePublisher, *fakeCache) {
	producer := &fakePublisher{}
	cache := &fakeCache{}
	svc := NewService(repo, clients, loyalty, fakeTxManager{}, producer, cache, noopLogger{})
	return svc, producer, cache
}

func TestService_SetPaid(t *testing.T) {
	clientID := int64(42)

	t.Run("отметка об оплате начисляет баллы и уведомляет CRM", func(t *testing.T) {
		repo := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{
			1: paidTestAppointment(1, &clientID, 2500, false),
		}}
		clients := &fakeClientRepo{clients: map[int64]*domain.Client{}}
		loyalty := &fakeLoyaltyClient{}
		svc, producer, cache := newTestService(repo, clients, loyalty)

		resp, err := svc.SetPaid(context.Background(), 1, true)
		require.NoError(t, err)
		assert.True(t, resp.Paid)

		require.Len(t, clients.visitCalls, 1)
		assert.Equal(t, clientID, clients.visitCalls[0].clientID)
		assert.Equal(t, 2500.0, clients.visitCalls[0].amount)
		assert.Equal(t, 250, clients.visitCalls[0].points)

		require.Len(t, loyalty.visits, 1)
		assert.Equal(t, "2025-03-01", loyalty.visits[0].VisitDate)
		assert.Equal(t, int64(1), loyalty.visits[0].AppointmentID)

		require.Len(t, producer.published, 1)
		assert.Equal(t, events.EventPaymentUpdated, producer.published[0].Type)
		assert.Equal(t, []string{"2025-03-01"}, cache.invalidated)
	})

	t.Run("повторная отметка не задваивает начисление", func(t *testing.T) {
		repo := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{
			1: paidTestAppointment(1, &clientID, 2500, true),
		}}
		clients := &fakeClientRepo{clients: map[int64]*domain.Client{}}
		loyalty := &fakeLoyaltyClient{}
		svc, producer, _ := newTestService(repo, clients, loyalty)

		resp, err := svc.SetPaid(context.Background(), 1, true)
		require.NoError(t, err)
		assert.True(t, resp.Paid)

		assert.Empty(t, clients.visitCalls)
		assert.Empty(t, loyalty.visits)
		assert.Empty(t, producer.published)
		assert.Equal(t, 0, repo.setPaidCalls)
	})

	t.Run("снятие отметки не откатывает баллы", func(t *testing.T) {
		repo := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{
			1: paidTestAppointment(1, &clientID, 2500, true),
		}}
		clients := &fakeClientRepo{clients: map[int64]*domain.Client{}}
		loyalty := &fakeLoyaltyClient{}
		svc, _, _ := newTestService(repo, clients, loyalty)

		resp, err := svc.SetPaid(context.Background(), 1, false)
		require.NoError(t, err)
		assert.False(t, resp.Paid)

		assert.Empty(t, clients.visitCalls)
		assert.Empty(t, loyalty.visits)
		assert.Equal(t, 1, repo.setPaidCalls)
	})

	t.Run("запись без клиента оплачивается без начислений", func(t *testing.T) {
		repo := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{
			1: paidTestAppointment(1, nil, 1800, false),
		}}
		clients := &fakeClientRepo{clients: map[int64]*domain.Client{}}
		loyalty := &fakeLoyaltyClient{}
		svc, _, _ := newTestService(repo, clients, loyalty)

		resp, err := svc.SetPaid(context.Background(), 1, true)
		require.NoError(t, err)
		assert.True(t, resp.Paid)
		assert.Empty(t, clients.visitCalls)
		assert.Empty(t, loyalty.visits)
	})

	t.Run("деградация сервиса лояльности не ломает оплату", func(t *testing.T) {
		repo := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{
			1: paidTestAppointment(1, &clientID, 2500, false),
		}}
		clients := &fakeClientRepo{clients: map[int64]*domain.Client{}}
		loyalty := &fakeLoyaltyClient{err: loyaltyservice.ErrServiceDegraded}
		svc, _, _ := newTestService(repo, clients, loyalty)

		resp, err := svc.SetPaid(context.Background(), 1, true)
		require.NoError(t, err)
		assert.True(t, resp.Paid)
		require.Len(t, clients.visitCalls, 1)
	})

	t.Run("запись не найдена", func(t *testing.T) {
		repo := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{}}
		svc, _, _ := newTestService(repo, &fakeClientRepo{}, &fakeLoyaltyClient{})

		_, err := svc.SetPaid(context.Background(), 99, true)
		require.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("удаление сбрасывает кеш и публикует событие", func(t *testing.T) {
		repo := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{
			1: paidTestAppointment(1, nil, 1800, false),
		}}
		svc, producer, cache := newTestService(repo, &fakeClientRepo{}, &fakeLoyaltyClient{})

		err := svc.Delete(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, 1, repo.deleteCalls)

		require.Len(t, producer.published, 1)
		assert.Equal(t, events.EventAppointmentDeleted, producer.published[0].Type)
		assert.Equal(t, []string{"2025-03-01"}, cache.invalidated)
	})

	t.Run("запись не найдена", func(t *testing.T) {
		repo := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{}}
		svc, _, _ := newTestService(repo, &fakeClientRepo{}, &fakeLoyaltyClient{})

		err := svc.Delete(context.Background(), 99)
		require.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestService_GetClientAppointments(t *testing.T) {
	clientID := int64(42)
	otherClient := int64(7)

	repo := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{
		1: paidTestAppointment(1, &clientID, 2500, true),
		2: paidTestAppointment(2, &otherClient, 1200, false),
		3: paidTestAppointment(3, &clientID, 900, false),
	}}
	svc, _, _ := newTestService(repo, &fakeClientRepo{}, &fakeLoyaltyClient{})

	resp, err := svc.GetClientAppointments(context.Background(), clientID)
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 2)
	for _, appointment := range resp.Appointments {
		require.NotNil(t, appointment.ClientID)
		assert.Equal(t, clientID, *appointment.ClientID)
	}
}
