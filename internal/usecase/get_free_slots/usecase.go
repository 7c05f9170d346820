package get_free_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/boardconfig"
	staffRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/staff"
)

// UseCase use case подбора свободных слотов для новой записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	configRepo      ConfigRepository
	staffRepo       StaffRepository
	serviceRepo     ServiceRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	configRepo ConfigRepository,
	staffRepo StaffRepository,
	serviceRepo ServiceRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		configRepo:      configRepo,
		staffRepo:       staffRepo,
		serviceRepo:     serviceRepo,
		logger:          logger,
	}
}

// Execute выполняет use case подбора свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetFreeSlots: staff=%d, date=%s, services=%v, duration=%d",
		req.StaffID, req.Date.Format(domain.DateFormat), req.ServiceIDs, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetFreeSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем мастера
	staff, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("GetFreeSlots: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetFreeSlots: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.CanTakeAppointments() {
		uc.logger.Warn("GetFreeSlots: staff id=%d is inactive", req.StaffID)
		return nil, ErrStaffInactive
	}

	// 3. Конфигурация сетки
	config, err := uc.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			config = domain.DefaultBoardConfig()
		} else {
			uc.logger.Error("GetFreeSlots: failed to get board config: %v", err)
			return nil, fmt.Errorf("%w: failed to get board config: %v", ErrInternal, err)
		}
	}

	// 4. Длительность будущей записи
	durationMinutes, err := uc.resolveDuration(ctx, req, config)
	if err != nil {
		return nil, err
	}

	// 5. Записи мастера на эту дату
	boardDate := domain.BeginningOfDay(req.Date)

	appointments, err := uc.appointmentRepo.GetByStaffAndDate(ctx, req.StaffID, boardDate)
	if err != nil {
		uc.logger.Error("GetFreeSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 6. Отбор свободных ячеек
	slots := collectFreeSlots(config.Grid(), appointments, durationMinutes)

	uc.logger.Info("GetFreeSlots: staff=%d, date=%s - найдено %d свободных слотов под %d минут",
		req.StaffID, boardDate.Format(domain.DateFormat), len(slots), durationMinutes)

	return &Response{
		StaffID:         req.StaffID,
		Date:            boardDate,
		DurationMinutes: durationMinutes,
		Slots:           slots,
	}, nil
}

// resolveDuration вычисляет длительность будущей записи: по составу услуг,
// по явному значению или, если не задано ни то ни другое, по одной ячейке
// сетки.
func (uc *UseCase) resolveDuration(ctx context.Context, req *Request, config *domain.BoardConfig) (int, error) {
	if len(req.ServiceIDs) == 0 {
		if req.DurationMinutes > 0 {
			return req.DurationMinutes, nil
		}
		return config.IntervalMinutes, nil
	}

	servicesByID, err := uc.serviceRepo.GetByIDs(ctx, req.ServiceIDs)
	if err != nil {
		uc.logger.Error("GetFreeSlots: failed to get services: %v", err)
		return 0, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	orderedServices := make([]*domain.Service, 0, len(req.ServiceIDs))
	for _, serviceID := range req.ServiceIDs {
		svc, ok := servicesByID[serviceID]
		if !ok {
			uc.logger.Warn("GetFreeSlots: service id=%d not found", serviceID)
			return 0, fmt.Errorf("%w: id = %d", ErrServiceNotFound, serviceID)
		}
		if !svc.Active {
			uc.logger.Warn("GetFreeSlots: service id=%d is inactive", serviceID)
			return 0, fmt.Errorf("%w: id = %d (%s)", ErrServiceInactive, serviceID, svc.Name)
		}
		orderedServices = append(orderedServices, svc)
	}

	cart := domain.BuildCart(orderedServices)

	durationMinutes := cart.TotalDurationMinutes()
	if durationMinutes > domain.MaxAppointmentDurationMinutes {
		uc.logger.Warn("GetFreeSlots: cart duration %d exceeds %d minutes",
			durationMinutes, domain.MaxAppointmentDurationMinutes)
		return 0, fmt.Errorf("%w: total duration %d exceeds %d minutes",
			ErrInvalidInput, durationMinutes, domain.MaxAppointmentDurationMinutes)
	}

	return durationMinutes, nil
}
