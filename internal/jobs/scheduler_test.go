package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/infra/events"
	boardconfigModels "github.com/m04kA/SMC-ScheduleService/internal/service/boardconfig/models"
	inventoryModels "github.com/m04kA/SMC-ScheduleService/internal/service/inventory/models"
)

type fakeConfigService struct {
	rolloverHour int
	err          error
}

func (f *fakeConfigService) Get(_ context.Context) (*boardconfigModels.ConfigResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &boardconfigModels.ConfigResponse{
		DayStartHour:    domain.DefaultDayStartHour,
		DayEndHour:      domain.DefaultDayEndHour,
		IntervalMinutes: domain.DefaultIntervalMinutes,
		RolloverHour:    f.rolloverHour,
	}, nil
}

type fakeInventoryService struct {
	products []inventoryModels.ProductResponse
	err      error
}

func (f *fakeInventoryService) ListLowStock(_ context.Context) (*inventoryModels.ProductListResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &inventoryModels.ProductListResponse{Products: f.products}, nil
}

type fakeBoardCache struct {
	invalidatedAll bool
}

func (f *fakeBoardCache) InvalidateAll(_ context.Context) error {
	f.invalidatedAll = true
	return nil
}

type fakeEventPublisher struct {
	published []events.BoardEvent
}

func (f *fakeEventPublisher) PublishBoardEvent(_ context.Context, event events.BoardEvent) error {
	f.published = append(f.published, event)
	return nil
}

type fakeMetrics struct {
	lowStock int
	set      bool
}

func (f *fakeMetrics) SetLowStockProducts(n int) {
	f.lowStock = n
	f.set = true
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestScheduler(
	configService ConfigService,
	inventory InventoryService,
	cache BoardCache,
	producer EventPublisher,
	metrics MetricsCollector,
) *Scheduler {
	return NewScheduler("0 2 * * *", "0 21 * * *", configService, inventory, cache, producer, metrics, nopLogger{})
}

func TestScheduler_RunRollover(t *testing.T) {
	configService := &fakeConfigService{rolloverHour: 2}
	cache := &fakeBoardCache{}
	producer := &fakeEventPublisher{}

	scheduler := newTestScheduler(configService, &fakeInventoryService{}, cache, producer, nil)

	scheduler.runRollover()

	assert.True(t, cache.invalidatedAll)

	require.Len(t, producer.published, 1)
	event := producer.published[0]
	assert.Equal(t, events.EventDayRolledOver, event.Type)

	expectedDate := domain.WorkDayOf(time.Now(), 2).Format(domain.DateFormat)
	assert.Equal(t, expectedDate, event.BoardDate)
}

func TestScheduler_RunRollover_ConfigError_FallsBackToDefault(t *testing.T) {
	configService := &fakeConfigService{err: errors.New("db down")}
	cache := &fakeBoardCache{}
	producer := &fakeEventPublisher{}

	scheduler := newTestScheduler(configService, &fakeInventoryService{}, cache, producer, nil)

	scheduler.runRollover()

	// Перекат не должен срываться из-за недоступной конфигурации
	assert.True(t, cache.invalidatedAll)
	require.Len(t, producer.published, 1)

	expectedDate := domain.WorkDayOf(time.Now(), domain.DefaultRolloverHour).Format(domain.DateFormat)
	assert.Equal(t, expectedDate, producer.published[0].BoardDate)
}

func TestScheduler_RunRollover_WithoutOptionalDeps(t *testing.T) {
	scheduler := newTestScheduler(&fakeConfigService{rolloverHour: 2}, &fakeInventoryService{}, nil, nil, nil)

	// Кеш и продюсер не подключены - задача просто логирует перекат
	assert.NotPanics(t, func() {
		scheduler.runRollover()
	})
}

func TestScheduler_RunLowStockSweep(t *testing.T) {
	inventory := &fakeInventoryService{
		products: []inventoryModels.ProductResponse{
			{ID: 1, Name: "Воск для усов", Quantity: 1, LowStockThreshold: 2, LowStock: true},
			{ID: 2, Name: "Шампунь", Quantity: 0, LowStockThreshold: 3, LowStock: true},
		},
	}
	metrics := &fakeMetrics{}

	scheduler := newTestScheduler(&fakeConfigService{rolloverHour: 2}, inventory, nil, nil, metrics)

	scheduler.runLowStockSweep()

	assert.True(t, metrics.set)
	assert.Equal(t, 2, metrics.lowStock)
}

func TestScheduler_RunLowStockSweep_RepositoryError(t *testing.T) {
	inventory := &fakeInventoryService{err: errors.New("db down")}
	metrics := &fakeMetrics{}

	scheduler := newTestScheduler(&fakeConfigService{rolloverHour: 2}, inventory, nil, nil, metrics)

	scheduler.runLowStockSweep()

	// Метрика не трогается, если склад недоступен
	assert.False(t, metrics.set)
}

func TestScheduler_StartRejectsBadSpec(t *testing.T) {
	scheduler := NewScheduler("not a spec", "0 21 * * *",
		&fakeConfigService{rolloverHour: 2}, &fakeInventoryService{}, nil, nil, nil, nopLogger{})

	err := scheduler.Start()
	require.Error(t, err)
}

func TestScheduler_StartAndStop(t *testing.T) {
	scheduler := newTestScheduler(&fakeConfigService{rolloverHour: 2}, &fakeInventoryService{}, nil, nil, nil)

	require.NoError(t, scheduler.Start())
	scheduler.Stop()
}
