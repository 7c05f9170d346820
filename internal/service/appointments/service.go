package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/appointment"
	clientRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/client"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/loyaltyservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/appointments/models"
)

// Service сервис для работы с записями: просмотр, история, оплата, удаление.
// Размещение и перенос записей вынесены в соответствующие usecase-слои.
type Service struct {
	repo          AppointmentRepository
	clientRepo    ClientRepository
	loyaltyClient LoyaltyClient
	txManager     TransactionManager
	producer      EventPublisher
	cache         BoardCache
	logger        Logger
}

func NewService(
	repo AppointmentRepository,
	clientRepo ClientRepository,
	loyaltyClient LoyaltyClient,
	txManager TransactionManager,
	producer EventPublisher,
	cache BoardCache,
	logger Logger,
) *Service {
	return &Service{
		repo:          repo,
		clientRepo:    clientRepo,
		loyaltyClient: loyaltyClient,
		txManager:     txManager,
		producer:      producer,
		cache:         cache,
		logger:        logger,
	}
}

// GetByID возвращает запись со всеми позициями услуг
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment not found: id=%d", id)
			return nil, fmt.Errorf("%w: id = %d", ErrAppointmentNotFound, id)
		}
		s.logger.Error("GetByID: failed to get appointment: id=%d, error=%v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appointment), nil
}

// List возвращает записи по фильтру (мастер, клиент, период, оплата)
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	if req == nil {
		req = &models.ListAppointmentsRequest{}
	}

	appointments, err := s.repo.GetWithFilter(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: failed to list appointments: error=%v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(appointments), nil
}

// GetClientAppointments возвращает историю посещений клиента
func (s *Service) GetClientAppointments(ctx context.Context, clientID int64) (*models.AppointmentListResponse, error) {
	appointments, err := s.repo.GetWithFilter(ctx, domain.AppointmentsFilter{ClientID: &clientID})
	if err != nil {
		s.logger.Error("GetClientAppointments: failed to list appointments: clientID=%d, error=%v", clientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: found %d appointments for clientID=%d", len(appointments), clientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// SetPaid меняет признак оплаты записи.
// При отметке об оплате начисляет бонусные баллы клиенту (если запись привязана
// к клиенту) и уведомляет сервис лояльности. Снятие отметки баллы не откатывает:
// корректировки начислений делаются на стороне CRM.
func (s *Service) SetPaid(ctx context.Context, id int64, paid bool) (*models.AppointmentResponse, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("SetPaid: appointment not found: id=%d", id)
			return nil, fmt.Errorf("%w: id = %d", ErrAppointmentNotFound, id)
		}
		s.logger.Error("SetPaid: failed to get appointment: id=%d, error=%v", id, err)
		return nil, fmt.Errorf("%w: SetPaid - repository error: %v", ErrInternal, err)
	}

	// Повторная установка того же признака - no-op, чтобы не задвоить начисление баллов
	if appointment.Paid == paid {
		s.logger.Info("SetPaid: appointment already in target state: id=%d, paid=%v", id, paid)
		return models.FromDomainAppointment(appointment), nil
	}

	awardLoyalty := paid && appointment.ClientID != nil
	points := domain.LoyaltyPointsFor(appointment.PriceTotal)

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.repo.SetPaid(txCtx, id, paid); err != nil {
			return fmt.Errorf("update payment flag: %w", err)
		}

		if awardLoyalty {
			if err := s.clientRepo.ApplyVisit(txCtx, *appointment.ClientID, appointment.PriceTotal, points); err != nil {
				return fmt.Errorf("apply visit to client: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("SetPaid: client not found: id=%d, clientID=%d", id, *appointment.ClientID)
			return nil, fmt.Errorf("%w: id = %d", ErrClientNotFound, *appointment.ClientID)
		}
		s.logger.Error("SetPaid: transaction failed: id=%d, error=%v", id, err)
		return nil, fmt.Errorf("%w: SetPaid - transaction error: %v", ErrInternal, err)
	}

	appointment.Paid = paid
	s.logger.Info("SetPaid: payment flag updated: id=%d, paid=%v", id, paid)

	// Уведомляем сервис лояльности. Деградация внешнего сервиса не откатывает
	// оплату: баллы уже начислены локально, CRM догонит по событию.
	if awardLoyalty && s.loyaltyClient != nil {
		visit := loyaltyservice.VisitEvent{
			ClientID:      *appointment.ClientID,
			AppointmentID: appointment.ID,
			Amount:        appointment.PriceTotal,
			Points:        points,
			VisitDate:     appointment.BoardDate.Format(domain.DateFormat),
		}
		if err := s.loyaltyClient.RecordPaidVisitWithGracefulDegradation(ctx, visit); err != nil {
			if errors.Is(err, loyaltyservice.ErrServiceDegraded) {
				s.logger.Warn("SetPaid: loyalty service degraded, visit recorded locally only: id=%d", id)
			} else {
				s.logger.Warn("SetPaid: loyalty notification failed: id=%d, error=%v", id, err)
			}
		}
	}

	s.publishEvent(ctx, events.EventPaymentUpdated, appointment)
	s.invalidateBoard(ctx, appointment.BoardDate.Format(domain.DateFormat))

	return models.FromDomainAppointment(appointment), nil
}

// Delete удаляет запись вместе с позициями услуг
func (s *Service) Delete(ctx context.Context, id int64) error {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment not found: id=%d", id)
			return fmt.Errorf("%w: id = %d", ErrAppointmentNotFound, id)
		}
		s.logger.Error("Delete: failed to get appointment: id=%d, error=%v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment already deleted: id=%d", id)
			return fmt.Errorf("%w: id = %d", ErrAppointmentNotFound, id)
		}
		s.logger.Error("Delete: failed to delete appointment: id=%d, error=%v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: appointment deleted: id=%d, staffID=%d, date=%s",
		id, appointment.StaffID, appointment.BoardDate.Format(domain.DateFormat))

	s.publishEvent(ctx, events.EventAppointmentDeleted, appointment)
	s.invalidateBoard(ctx, appointment.BoardDate.Format(domain.DateFormat))

	return nil
}

// publishEvent отправляет событие доски в Kafka. Producer опционален.
func (s *Service) publishEvent(ctx context.Context, eventType string, appointment *domain.Appointment) {
	if s.producer == nil {
		return
	}

	event := events.BoardEvent{
		Type:          eventType,
		BoardDate:     appointment.BoardDate.Format(domain.DateFormat),
		StaffID:       appointment.StaffID,
		AppointmentID: appointment.ID,
	}
	if err := s.producer.PublishBoardEvent(ctx, event); err != nil {
		s.logger.Warn("publishEvent: failed to publish %s: appointmentID=%d, error=%v", eventType, appointment.ID, err)
	}
}

// invalidateBoard сбрасывает кеш доски на дату. Кеш опционален.
func (s *Service) invalidateBoard(ctx context.Context, dates ...string) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Invalidate(ctx, dates...); err != nil {
		s.logger.Warn("invalidateBoard: failed to invalidate cache: dates=%v, error=%v", dates, err)
	}
}
