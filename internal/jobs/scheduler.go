package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/infra/events"
)

// Scheduler запускает фоновые задачи по крон-расписанию:
// перекат рабочего дня и вечернюю сверку остатков склада.
type Scheduler struct {
	cron *cron.Cron

	rolloverSpec string
	lowStockSpec string

	configService ConfigService
	inventory     InventoryService
	cache         BoardCache
	producer      EventPublisher
	metrics       MetricsCollector
	logger        Logger
}

func NewScheduler(
	rolloverSpec string,
	lowStockSpec string,
	configService ConfigService,
	inventory InventoryService,
	cache BoardCache,
	producer EventPublisher,
	metrics MetricsCollector,
	logger Logger,
) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		rolloverSpec:  rolloverSpec,
		lowStockSpec:  lowStockSpec,
		configService: configService,
		inventory:     inventory,
		cache:         cache,
		producer:      producer,
		metrics:       metrics,
		logger:        logger,
	}
}

// Start регистрирует задачи и запускает планировщик
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.rolloverSpec, s.runRollover); err != nil {
		return fmt.Errorf("register rollover job: %w", err)
	}

	if _, err := s.cron.AddFunc(s.lowStockSpec, s.runLowStockSweep); err != nil {
		return fmt.Errorf("register low stock job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started: rollover %q, low stock sweep %q", s.rolloverSpec, s.lowStockSpec)

	return nil
}

// Stop останавливает планировщик, дожидаясь завершения запущенных задач
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}

// runRollover выполняется в час переката: вчерашняя доска закрывается,
// "сегодня" на доске становится новая бизнес-дата. Кеш сбрасывается
// целиком, подписчики узнают о перекате из события.
func (s *Scheduler) runRollover() {
	ctx := context.Background()

	rolloverHour := domain.DefaultRolloverHour
	if config, err := s.configService.Get(ctx); err != nil {
		s.logger.Error("Rollover: failed to load board config: %v", err)
	} else {
		rolloverHour = config.RolloverHour
	}

	boardDate := domain.WorkDayOf(time.Now(), rolloverHour).Format(domain.DateFormat)

	if s.cache != nil {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			s.logger.Warn("Rollover: failed to invalidate board cache: %v", err)
		}
	}

	if s.producer != nil {
		event := events.BoardEvent{
			Type:      events.EventDayRolledOver,
			BoardDate: boardDate,
		}
		if err := s.producer.PublishBoardEvent(ctx, event); err != nil {
			s.logger.Warn("Rollover: failed to publish event: %v", err)
		}
	}

	s.logger.Info("Rollover: board rolled over to %s", boardDate)
}

// runLowStockSweep вечерняя сверка склада: пишет в лог товары на исходе,
// чтобы администратор успел дозаказать расходники
func (s *Scheduler) runLowStockSweep() {
	ctx := context.Background()

	resp, err := s.inventory.ListLowStock(ctx)
	if err != nil {
		s.logger.Error("LowStockSweep: failed to list products: %v", err)
		return
	}

	for _, product := range resp.Products {
		s.logger.Warn("LowStockSweep: product %q is low on stock: %d left (threshold %d)",
			product.Name, product.Quantity, product.LowStockThreshold)
	}

	if s.metrics != nil {
		s.metrics.SetLowStockProducts(len(resp.Products))
	}

	s.logger.Info("LowStockSweep: done, %d products below threshold", len(resp.Products))
}
