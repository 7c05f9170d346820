package move_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/appointment"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/boardconfig"
	staffRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/staff"
)

// UseCase use case переноса записи в другую ячейку доски.
// Проверка занятости целевого интервала исключает саму переносимую
// запись: запись не конфликтует сама с собой. Остатки товаров не
// перепроверяются - перенос не является повторным оказанием услуг.
type UseCase struct {
	appointmentRepo AppointmentRepository
	configRepo      ConfigRepository
	staffRepo       StaffRepository
	txManager       TransactionManager
	producer        EventPublisher
	cache           BoardCache
	metrics         MetricsCollector
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	configRepo ConfigRepository,
	staffRepo StaffRepository,
	txManager TransactionManager,
	producer EventPublisher,
	cache BoardCache,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		configRepo:      configRepo,
		staffRepo:       staffRepo,
		txManager:       txManager,
		producer:        producer,
		cache:           cache,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case переноса записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MoveAppointment: id=%d, target staff=%d, date=%s, time=%s",
		req.AppointmentID, req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("MoveAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем переносимую запись
	appointment, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("MoveAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, fmt.Errorf("%w: id = %d", ErrAppointmentNotFound, req.AppointmentID)
		}
		uc.logger.Error("MoveAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 3. Целевая дата: нулевая дата в запросе означает ту же доску
	targetDate := appointment.BoardDate
	if !req.Date.IsZero() {
		targetDate = domain.BeginningOfDay(req.Date)
	}

	// 4. Перенос в собственную ячейку - no-op успех
	if req.StaffID == appointment.StaffID &&
		targetDate.Equal(appointment.BoardDate) &&
		req.StartTime == appointment.StartTime {
		uc.logger.Info("MoveAppointment: appointment id=%d already at target cell", req.AppointmentID)
		return buildResponse(appointment), nil
	}

	// 5. Проверяем целевого мастера. Перенос внутри своей колонки не
	// требует активности: записи деактивированного мастера можно двигать
	// по времени, но нельзя переносить новые записи в его колонку.
	if req.StaffID != appointment.StaffID {
		staff, err := uc.staffRepo.GetByID(ctx, req.StaffID)
		if err != nil {
			if errors.Is(err, staffRepo.ErrStaffNotFound) {
				uc.logger.Warn("MoveAppointment: staff id=%d not found", req.StaffID)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("MoveAppointment: failed to get staff id=%d: %v", req.StaffID, err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
		if !staff.CanTakeAppointments() {
			uc.logger.Warn("MoveAppointment: staff id=%d is inactive", req.StaffID)
			return nil, ErrStaffInactive
		}
	}

	oldDate := appointment.BoardDate

	// 6. Выполняем проверки и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Конфигурация доски
		config, err := uc.configRepo.Get(txCtx)
		if err != nil {
			if !errors.Is(err, configRepo.ErrConfigNotFound) {
				uc.logger.Error("MoveAppointment: failed to get board config: %v", err)
				return fmt.Errorf("%w: failed to get board config: %v", ErrInternal, err)
			}
			config = domain.DefaultBoardConfig()
		}
		grid := config.Grid()

		// 6.2. Проверяем целевой слот
		offset, inWindow := grid.SlotOffset(req.StartTime)
		if !inWindow {
			uc.logger.Warn("MoveAppointment: %s is outside the working window", req.StartTime)
			return fmt.Errorf("%w: %s is outside the %s-%s working window",
				ErrInvalidSlot, req.StartTime, grid.LabelAt(0), grid.LabelAt(grid.WindowMinutes()))
		}
		if !grid.AlignedToGrid(offset) {
			uc.logger.Warn("MoveAppointment: %s is not aligned to the grid", req.StartTime)
			return fmt.Errorf("%w: %s is not aligned to the %d-minute grid",
				ErrInvalidSlot, req.StartTime, grid.IntervalMinutes)
		}
		if !grid.FitsWindow(offset, appointment.DurationMinutes) {
			uc.logger.Warn("MoveAppointment: appointment does not fit the window at %s", req.StartTime)
			return fmt.Errorf("%w: %d-minute appointment at %s runs past the %s window end",
				ErrInvalidSlot, appointment.DurationMinutes, req.StartTime, grid.LabelAt(grid.WindowMinutes()))
		}

		// 6.3. Читаем записи целевой колонки с блокировкой
		appointments, err := uc.appointmentRepo.GetByStaffAndDate(txCtx, req.StaffID, targetDate)
		if err != nil {
			uc.logger.Error("MoveAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 6.4. Проверяем конфликт, исключая саму переносимую запись
		if conflicting := domain.FindConflict(appointments, grid, offset, appointment.DurationMinutes, appointment.ID); conflicting != nil {
			uc.logger.Warn("MoveAppointment: target slot %s is taken by appointment id=%d",
				req.StartTime, conflicting.ID)
			if uc.metrics != nil {
				uc.metrics.IncSlotConflict()
			}
			return fmt.Errorf("%w: %s-%s is taken by appointment id=%d (%s)",
				ErrSlotConflict, conflicting.StartTime, conflicting.EndTime(), conflicting.ID, conflicting.ClientName)
		}

		// 6.5. Сохраняем новое размещение
		if err := uc.appointmentRepo.UpdatePlacement(txCtx, appointment.ID, req.StaffID, targetDate, req.StartTime); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("MoveAppointment: appointment id=%d vanished during move", appointment.ID)
				return fmt.Errorf("%w: id = %d", ErrAppointmentNotFound, appointment.ID)
			}
			uc.logger.Error("MoveAppointment: failed to update placement: %v", err)
			return fmt.Errorf("%w: failed to update placement: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	appointment.StaffID = req.StaffID
	appointment.BoardDate = targetDate
	appointment.StartTime = req.StartTime

	uc.logger.Info("MoveAppointment: successfully moved appointment id=%d to staff=%d, %s %s",
		appointment.ID, appointment.StaffID, targetDate.Format(domain.DateFormat), appointment.StartTime)

	// 7. Метрики, кеш, события - вне транзакции
	if uc.metrics != nil {
		uc.metrics.IncAppointmentMoved()
	}

	if uc.cache != nil {
		dates := []string{targetDate.Format(domain.DateFormat)}
		if !oldDate.Equal(targetDate) {
			dates = append(dates, oldDate.Format(domain.DateFormat))
		}
		if err := uc.cache.Invalidate(ctx, dates...); err != nil {
			uc.logger.Warn("MoveAppointment: failed to invalidate board cache: %v", err)
		}
	}

	if uc.producer != nil {
		event := events.BoardEvent{
			Type:          events.EventAppointmentMoved,
			BoardDate:     targetDate.Format(domain.DateFormat),
			StaffID:       appointment.StaffID,
			AppointmentID: appointment.ID,
		}
		if err := uc.producer.PublishBoardEvent(ctx, event); err != nil {
			uc.logger.Warn("MoveAppointment: failed to publish event: %v", err)
		}
	}

	return buildResponse(appointment), nil
}
