package place_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/infra/events"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/boardconfig"
	clientRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/client"
	productRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/product"
	staffRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/staff"
)

// UseCase use case размещения записи на доске.
// Проверка конфликтов и остатков выполняется в сериализуемой транзакции:
// два администратора, целящиеся в одну ячейку или в один товар, не могут
// пройти проверку по устаревшему снимку - проигравший получает отказ.
type UseCase struct {
	appointmentRepo AppointmentRepository
	configRepo      ConfigRepository
	staffRepo       StaffRepository
	serviceRepo     ServiceRepository
	productRepo     ProductRepository
	clientRepo      ClientRepository
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
	serviceRepo ServiceRepository,
	productRepo ProductRepository,
	clientRepo ClientRepository,
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
		serviceRepo:     serviceRepo,
		productRepo:     productRepo,
		clientRepo:      clientRepo,
		txManager:       txManager,
		producer:        producer,
		cache:           cache,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case размещения записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PlaceAppointment: staff=%d, date=%s, time=%s, services=%v",
		req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("PlaceAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем мастера
	staff, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("PlaceAppointment: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("PlaceAppointment: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.CanTakeAppointments() {
		uc.logger.Warn("PlaceAppointment: staff id=%d is inactive", req.StaffID)
		return nil, ErrStaffInactive
	}

	// 3. Собираем корзину: услуги в порядке, выбранном администратором
	servicesByID, err := uc.serviceRepo.GetByIDs(ctx, req.ServiceIDs)
	if err != nil {
		uc.logger.Error("PlaceAppointment: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	orderedServices := make([]*domain.Service, 0, len(req.ServiceIDs))
	for _, serviceID := range req.ServiceIDs {
		svc, ok := servicesByID[serviceID]
		if !ok {
			uc.logger.Warn("PlaceAppointment: service id=%d not found", serviceID)
			return nil, fmt.Errorf("%w: id = %d", ErrServiceNotFound, serviceID)
		}
		if !svc.Active {
			uc.logger.Warn("PlaceAppointment: service id=%d is inactive", serviceID)
			return nil, fmt.Errorf("%w: id = %d (%s)", ErrServiceInactive, serviceID, svc.Name)
		}
		orderedServices = append(orderedServices, svc)
	}

	cart := domain.BuildCart(orderedServices)
	durationMinutes := cart.TotalDurationMinutes()
	if durationMinutes > domain.MaxAppointmentDurationMinutes {
		uc.logger.Warn("PlaceAppointment: cart duration %d exceeds %d minutes",
			durationMinutes, domain.MaxAppointmentDurationMinutes)
		return nil, fmt.Errorf("%w: total duration %d exceeds %d minutes",
			ErrInvalidInput, durationMinutes, domain.MaxAppointmentDurationMinutes)
	}

	// 4. Клиент: записи на имя из CRM берут имя из справочника
	clientName := strings.TrimSpace(req.ClientName)
	if req.ClientID != nil {
		client, err := uc.clientRepo.GetByID(ctx, *req.ClientID)
		if err != nil {
			if errors.Is(err, clientRepo.ErrClientNotFound) {
				uc.logger.Warn("PlaceAppointment: client id=%d not found", *req.ClientID)
				return nil, fmt.Errorf("%w: id = %d", ErrClientNotFound, *req.ClientID)
			}
			uc.logger.Error("PlaceAppointment: failed to get client id=%d: %v", *req.ClientID, err)
			return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
		}
		if clientName == "" {
			clientName = client.Name
		}
	}

	boardDate := domain.BeginningOfDay(req.Date)

	// Переменная для хранения результата
	var result *domain.Appointment

	// 5. Выполняем проверки и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Конфигурация доски (или дефолт, если еще не сохранялась)
		config, err := uc.configRepo.Get(txCtx)
		if err != nil {
			if !errors.Is(err, configRepo.ErrConfigNotFound) {
				uc.logger.Error("PlaceAppointment: failed to get board config: %v", err)
				return fmt.Errorf("%w: failed to get board config: %v", ErrInternal, err)
			}
			config = domain.DefaultBoardConfig()
			uc.logger.Info("PlaceAppointment: using default board config")
		}
		grid := config.Grid()

		// 5.2. Проверяем слот: попадание на сетку и в рабочее окно
		offset, err := validateSlot(grid, req, durationMinutes)
		if err != nil {
			uc.logger.Warn("PlaceAppointment: slot validation failed: %v", err)
			return err
		}

		// 5.3. Читаем записи колонки с блокировкой: конкурирующее размещение
		// в ту же колонку будет ждать или отступит
		appointments, err := uc.appointmentRepo.GetByStaffAndDate(txCtx, req.StaffID, boardDate)
		if err != nil {
			uc.logger.Error("PlaceAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 5.4. Проверяем конфликт интервалов
		if conflicting := domain.FindConflict(appointments, grid, offset, durationMinutes, 0); conflicting != nil {
			uc.logger.Warn("PlaceAppointment: slot %s is taken by appointment id=%d",
				req.StartTime, conflicting.ID)
			uc.incSlotConflict()
			return fmt.Errorf("%w: %s-%s is taken by appointment id=%d (%s)",
				ErrSlotConflict, conflicting.StartTime, conflicting.EndTime(), conflicting.ID, conflicting.ClientName)
		}

		// 5.5. Остатки: сначала проверяем все товары корзины, списываем
		// только когда каждый прошел проверку
		productIDs, demand := collectDemand(orderedServices)
		if len(productIDs) > 0 {
			products, err := uc.productRepo.GetByIDsForUpdate(txCtx, productIDs)
			if err != nil {
				uc.logger.Error("PlaceAppointment: failed to lock products: %v", err)
				return fmt.Errorf("%w: failed to lock products: %v", ErrInternal, err)
			}

			for _, productID := range productIDs {
				product, ok := products[productID]
				if !ok {
					uc.logger.Error("PlaceAppointment: linked product id=%d is missing", productID)
					return fmt.Errorf("%w: linked product id=%d is missing", ErrInternal, productID)
				}
				if !product.HasStock(demand[productID]) {
					uc.logger.Warn("PlaceAppointment: product id=%d (%s) has %d left, need %d",
						productID, product.Name, product.Quantity, demand[productID])
					uc.incStockRejection()
					return fmt.Errorf("%w: product %q has %d left, need %d",
						ErrInsufficientStock, product.Name, product.Quantity, demand[productID])
				}
			}
		}

		// 5.6. Создаем запись с денормализованными позициями корзины
		items := make([]domain.AppointmentItem, 0, len(cart.Items))
		for _, item := range cart.Items {
			items = append(items, domain.AppointmentItem{
				ServiceID:       item.ServiceID,
				ServiceName:     item.ServiceName,
				Price:           item.Price,
				DurationMinutes: item.DurationMinutes,
			})
		}

		appointment := &domain.Appointment{
			StaffID:         req.StaffID,
			ClientID:        req.ClientID,
			ClientName:      clientName,
			BoardDate:       boardDate,
			StartTime:       req.StartTime,
			DurationMinutes: durationMinutes,
			PriceTotal:      cart.TotalPrice(),
			Notes:           req.Notes,
			Items:           items,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("PlaceAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		// 5.7. Списываем товары и пишем движения в журнал
		for _, productID := range productIDs {
			remaining, err := uc.productRepo.DecrementQuantity(txCtx, productID, demand[productID])
			if err != nil {
				if errors.Is(err, productRepo.ErrInsufficientStock) {
					uc.incStockRejection()
					return fmt.Errorf("%w: product id=%d", ErrInsufficientStock, productID)
				}
				uc.logger.Error("PlaceAppointment: failed to decrement product id=%d: %v", productID, err)
				return fmt.Errorf("%w: failed to decrement product: %v", ErrInternal, err)
			}

			_, err = uc.productRepo.CreateMovement(txCtx, &domain.StockMovement{
				ProductID:     productID,
				AppointmentID: &created.ID,
				Type:          domain.MovementConsumption,
				Delta:         -demand[productID],
				QuantityAfter: remaining,
			})
			if err != nil {
				uc.logger.Error("PlaceAppointment: failed to record movement for product id=%d: %v", productID, err)
				return fmt.Errorf("%w: failed to record stock movement: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("PlaceAppointment: successfully placed appointment id=%d: staff=%d, %s %s-%s, total=%.2f",
		result.ID, result.StaffID, result.BoardDate.Format(domain.DateFormat),
		result.StartTime, result.EndTime(), result.PriceTotal)

	// 6. Метрики, кеш, события - вне транзакции
	if uc.metrics != nil {
		uc.metrics.IncAppointmentPlaced()
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, result.BoardDate.Format(domain.DateFormat)); err != nil {
			uc.logger.Warn("PlaceAppointment: failed to invalidate board cache: %v", err)
		}
	}

	if uc.producer != nil {
		event := events.BoardEvent{
			Type:          events.EventAppointmentPlaced,
			BoardDate:     result.BoardDate.Format(domain.DateFormat),
			StaffID:       result.StaffID,
			AppointmentID: result.ID,
		}
		if err := uc.producer.PublishBoardEvent(ctx, event); err != nil {
			uc.logger.Warn("PlaceAppointment: failed to publish event: %v", err)
		}
	}

	return buildResponse(result), nil
}

func (uc *UseCase) incSlotConflict() {
	if uc.metrics != nil {
		uc.metrics.IncSlotConflict()
	}
}

func (uc *UseCase) incStockRejection() {
	if uc.metrics != nil {
		uc.metrics.IncStockRejection()
	}
}
