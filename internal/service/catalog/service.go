package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/catalog"
	productRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/product"
	staffRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-ScheduleService/internal/service/catalog/models"
)

// Service сервис справочников: мастера и каталог услуг
type Service struct {
	staffRepo   StaffRepository
	serviceRepo ServiceRepository
	productRepo ProductRepository
	logger      Logger
}

func NewService(
	staffRepo StaffRepository,
	serviceRepo ServiceRepository,
	productRepo ProductRepository,
	logger Logger,
) *Service {
	return &Service{
		staffRepo:   staffRepo,
		serviceRepo: serviceRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Мастера

// CreateStaff добавляет нового мастера (колонку на доске)
func (s *Service) CreateStaff(ctx context.Context, req *models.CreateStaffRequest) (*models.StaffResponse, error) {
	if err := s.validateStaffData(req.Name, req.Color); err != nil {
		s.logger.Warn("CreateStaff: validation failed: %v", err)
		return nil, err
	}

	created, err := s.staffRepo.Create(ctx, req.ToDomainStaff())
	if err != nil {
		s.logger.Error("CreateStaff: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateStaff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateStaff: created staff id=%d, name=%s", created.ID, created.Name)
	return models.FromDomainStaff(created), nil
}

// GetStaff получает мастера по ID
func (s *Service) GetStaff(ctx context.Context, id int64) (*models.StaffResponse, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("GetStaff: staff id=%d not found", id)
			return nil, fmt.Errorf("%w: id = %d", ErrStaffNotFound, id)
		}
		s.logger.Error("GetStaff: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetStaff - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStaff(staff), nil
}

// ListStaff возвращает список мастеров.
// activeOnly=true отдает только активных - так строятся колонки доски.
func (s *Service) ListStaff(ctx context.Context, activeOnly bool) (*models.StaffListResponse, error) {
	staff, err := s.staffRepo.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("ListStaff: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListStaff - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStaffList(staff), nil
}

// UpdateStaff обновляет мастера. Поддерживает частичное обновление.
func (s *Service) UpdateStaff(ctx context.Context, id int64, req *models.UpdateStaffRequest) (*models.StaffResponse, error) {
	// 1. Получаем текущее состояние
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("UpdateStaff: staff id=%d not found", id)
			return nil, fmt.Errorf("%w: id = %d", ErrStaffNotFound, id)
		}
		s.logger.Error("UpdateStaff: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStaff - repository error: %v", ErrInternal, err)
	}

	// 2. Применяем изменения к копии и валидируем результат
	updated := *staff
	req.ApplyToStaff(&updated)

	if err := s.validateStaffData(updated.Name, updated.Color); err != nil {
		s.logger.Warn("UpdateStaff: validation failed for id=%d: %v", id, err)
		return nil, err
	}

	// 3. Сохраняем
	if err := s.staffRepo.Update(ctx, &updated); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("UpdateStaff: staff id=%d not found on update", id)
			return nil, fmt.Errorf("%w: id = %d", ErrStaffNotFound, id)
		}
		s.logger.Error("UpdateStaff: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStaff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStaff: updated staff id=%d", id)
	return models.FromDomainStaff(&updated), nil
}

// DeactivateStaff скрывает мастера с доски. Физическое удаление не
// используется: на мастера ссылаются исторические записи.
func (s *Service) DeactivateStaff(ctx context.Context, id int64) error {
	if err := s.staffRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("DeactivateStaff: staff id=%d not found", id)
			return fmt.Errorf("%w: id = %d", ErrStaffNotFound, id)
		}
		s.logger.Error("DeactivateStaff: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeactivateStaff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeactivateStaff: deactivated staff id=%d", id)
	return nil
}

// Услуги

// CreateService добавляет услугу в каталог
func (s *Service) CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	// 1. Валидируем входные данные
	if err := s.validateServiceData(req.Name, req.Price, req.DurationMinutes); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}

	// 2. Если указан товар для списания, проверяем его существование
	if req.LinkedProductID != nil {
		if err := s.checkLinkedProduct(ctx, *req.LinkedProductID); err != nil {
			s.logger.Warn("CreateService: linked product check failed: %v", err)
			return nil, err
		}
	}

	// 3. Создаем услугу
	created, err := s.serviceRepo.Create(ctx, req.ToDomainService())
	if err != nil {
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: created service id=%d, name=%s", created.ID, created.Name)
	return models.FromDomainService(created), nil
}

// GetService получает услугу по ID
func (s *Service) GetService(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("GetService: service id=%d not found", id)
			return nil, fmt.Errorf("%w: id = %d", ErrServiceNotFound, id)
		}
		s.logger.Error("GetService: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetService - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(service), nil
}

// ListServices возвращает каталог услуг.
// activeOnly=true отдает только активные - из них собирается корзина записи.
func (s *Service) ListServices(ctx context.Context, activeOnly bool) (*models.ServiceListResponse, error) {
	services, err := s.serviceRepo.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// UpdateService обновляет услугу. Поддерживает частичное обновление.
// Изменение цены или длительности не затрагивает уже размещенные записи:
// их позиции хранят копии значений на момент создания.
func (s *Service) UpdateService(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	// 1. Получаем текущее состояние
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("UpdateService: service id=%d not found", id)
			return nil, fmt.Errorf("%w: id = %d", ErrServiceNotFound, id)
		}
		s.logger.Error("UpdateService: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	// 2. Применяем изменения к копии и валидируем результат
	updated := *service
	req.ApplyToService(&updated)

	if err := s.validateServiceData(updated.Name, updated.Price, updated.DurationMinutes); err != nil {
		s.logger.Warn("UpdateService: validation failed for id=%d: %v", id, err)
		return nil, err
	}

	// 3. Если привязка товара поменялась на новую, проверяем товар
	if updated.LinkedProductID != nil && (service.LinkedProductID == nil || *service.LinkedProductID != *updated.LinkedProductID) {
		if err := s.checkLinkedProduct(ctx, *updated.LinkedProductID); err != nil {
			s.logger.Warn("UpdateService: linked product check failed for id=%d: %v", id, err)
			return nil, err
		}
	}

	// 4. Сохраняем
	if err := s.serviceRepo.Update(ctx, &updated); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("UpdateService: service id=%d not found on update", id)
			return nil, fmt.Errorf("%w: id = %d", ErrServiceNotFound, id)
		}
		s.logger.Error("UpdateService: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateService: updated service id=%d", id)
	return models.FromDomainService(&updated), nil
}

// DeleteService удаляет услугу из каталога. Исторические записи не
// страдают: позиции записей хранят имя и цену денормализованно.
func (s *Service) DeleteService(ctx context.Context, id int64) error {
	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("DeleteService: service id=%d not found", id)
			return fmt.Errorf("%w: id = %d", ErrServiceNotFound, id)
		}
		s.logger.Error("DeleteService: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteService: deleted service id=%d", id)
	return nil
}

// Валидация

func (s *Service) validateStaffData(name, color string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: staff name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxStaffNameLength {
		return fmt.Errorf("%w: staff name exceeds %d characters", ErrInvalidInput, domain.MaxStaffNameLength)
	}
	if len(color) > domain.MaxColorLength {
		return fmt.Errorf("%w: color exceeds %d characters", ErrInvalidInput, domain.MaxColorLength)
	}

	return nil
}

func (s *Service) validateServiceData(name string, price float64, durationMinutes int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: service name exceeds %d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if durationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	if durationMinutes > domain.MaxAppointmentDurationMinutes {
		return fmt.Errorf("%w: duration exceeds %d minutes", ErrInvalidInput, domain.MaxAppointmentDurationMinutes)
	}

	return nil
}

func (s *Service) checkLinkedProduct(ctx context.Context, productID int64) error {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			return fmt.Errorf("%w: id = %d", ErrProductNotFound, productID)
		}
		return fmt.Errorf("%w: checkLinkedProduct - repository error: %v", ErrInternal, err)
	}

	return nil
}
