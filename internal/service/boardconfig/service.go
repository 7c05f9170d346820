package boardconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/infra/events"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/boardconfig"
	"github.com/m04kA/SMC-ScheduleService/internal/service/boardconfig/models"
)

// Service сервис конфигурации доски: рабочее окно, интервал сетки,
// час переката рабочего дня
type Service struct {
	configRepo ConfigRepository
	producer   EventPublisher
	cache      BoardCache
	logger     Logger
}

func NewService(
	configRepo ConfigRepository,
	producer EventPublisher,
	cache BoardCache,
	logger Logger,
) *Service {
	return &Service{
		configRepo: configRepo,
		producer:   producer,
		cache:      cache,
		logger:     logger,
	}
}

// Get возвращает текущую конфигурацию доски.
// Если конфигурация еще не сохранялась, отдает значения по умолчанию.
func (s *Service) Get(ctx context.Context) (*models.ConfigResponse, error) {
	config, err := s.getOrDefault(ctx)
	if err != nil {
		s.logger.Error("Get: failed to load config: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(config), nil
}

// Slots возвращает упорядоченное перечисление ячеек сетки текущей
// конфигурации. Метки - настенное время: для окна 10:00-02:00 последняя
// ячейка при 30-минутной сетке помечена "01:30".
func (s *Service) Slots(ctx context.Context) (*models.SlotsResponse, error) {
	config, err := s.getOrDefault(ctx)
	if err != nil {
		s.logger.Error("Slots: failed to load config: %v", err)
		return nil, fmt.Errorf("%w: Slots - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlots(config, config.Grid().Slots()), nil
}

// Update меняет конфигурацию доски. Поддерживает частичное обновление.
// Уже размещенные записи не трогаются: при смене интервала их начала
// могут перестать попадать на границы новой сетки, доска отметит такие
// ячейки предупреждением.
func (s *Service) Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	// 1. Получаем текущее состояние (или дефолт, если конфигурации еще нет)
	config, err := s.getOrDefault(ctx)
	if err != nil {
		s.logger.Error("Update: failed to load config: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 2. Применяем изменения к копии и валидируем результат
	updated := *config
	req.ApplyToConfig(&updated)

	if err := updated.Validate(); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Сохраняем
	saved, err := s.configRepo.Upsert(ctx, &updated)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: board config updated: window %02d:00-%02d:00, interval %d min, rollover %02d:00",
		saved.DayStartHour, saved.DayEndHour%24, saved.IntervalMinutes, saved.RolloverHour)

	// 4. Сбрасываем кеш доски на все даты: сетка поменялась везде
	if s.cache != nil {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			s.logger.Warn("Update: failed to invalidate board cache: %v", err)
		}
	}

	if s.producer != nil {
		event := events.BoardEvent{Type: events.EventBoardConfigUpdated}
		if err := s.producer.PublishBoardEvent(ctx, event); err != nil {
			s.logger.Warn("Update: failed to publish config event: %v", err)
		}
	}

	return models.FromDomainConfig(saved), nil
}

func (s *Service) getOrDefault(ctx context.Context) (*domain.BoardConfig, error) {
	config, err := s.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return domain.DefaultBoardConfig(), nil
		}
		return nil, err
	}

	return config, nil
}
