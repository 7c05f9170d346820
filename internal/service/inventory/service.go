package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	productRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/product"
	"github.com/m04kA/SMC-ScheduleService/internal/service/inventory/models"
)

// Service сервис склада: товары, остатки, журнал движений.
// Автоматическое списание при размещении записи живет в usecase размещения,
// здесь - ручное управление остатками.
type Service struct {
	productRepo ProductRepository
	txManager   TransactionManager
	metrics     MetricsCollector
	logger      Logger
}

func NewService(
	productRepo ProductRepository,
	txManager TransactionManager,
	metrics MetricsCollector,
	logger Logger,
) *Service {
	return &Service{
		productRepo: productRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// CreateProduct добавляет товар на склад
func (s *Service) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.ProductResponse, error) {
	if err := s.validateProductData(req.Name, req.Quantity, req.LowStockThreshold); err != nil {
		s.logger.Warn("CreateProduct: validation failed: %v", err)
		return nil, err
	}

	created, err := s.productRepo.Create(ctx, req.ToDomainProduct())
	if err != nil {
		s.logger.Error("CreateProduct: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateProduct - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateProduct: created product id=%d, name=%s, quantity=%d",
		created.ID, created.Name, created.Quantity)
	return models.FromDomainProduct(created), nil
}

// GetProduct получает товар по ID
func (s *Service) GetProduct(ctx context.Context, id int64) (*models.ProductResponse, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			s.logger.Warn("GetProduct: product id=%d not found", id)
			return nil, fmt.Errorf("%w: id = %d", ErrProductNotFound, id)
		}
		s.logger.Error("GetProduct: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetProduct - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProduct(product), nil
}

// ListProducts возвращает все товары склада
func (s *Service) ListProducts(ctx context.Context) (*models.ProductListResponse, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListProducts: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListProducts - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProductList(products), nil
}

// ListLowStock возвращает товары с остатком на пороге или ниже
func (s *Service) ListLowStock(ctx context.Context) (*models.ProductListResponse, error) {
	products, err := s.productRepo.ListLowStock(ctx)
	if err != nil {
		s.logger.Error("ListLowStock: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListLowStock - repository error: %v", ErrInternal, err)
	}

	if s.metrics != nil {
		s.metrics.SetLowStockProducts(len(products))
	}

	return models.FromDomainProductList(products), nil
}

// AdjustStock меняет остаток товара вручную и пишет движение в журнал.
// Положительная delta фиксируется как пополнение, отрицательная - как
// корректировка. Остаток не может уйти в минус.
func (s *Service) AdjustStock(ctx context.Context, id int64, req *models.AdjustStockRequest) (*models.ProductResponse, error) {
	// 1. Валидируем входные данные
	if req.Delta == 0 {
		s.logger.Warn("AdjustStock: zero delta for product id=%d", id)
		return nil, fmt.Errorf("%w: delta must not be zero", ErrInvalidInput)
	}

	// 2. Получаем товар и проверяем, что остаток не уйдет в минус
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			s.logger.Warn("AdjustStock: product id=%d not found", id)
			return nil, fmt.Errorf("%w: id = %d", ErrProductNotFound, id)
		}
		s.logger.Error("AdjustStock: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: AdjustStock - repository error: %v", ErrInternal, err)
	}

	if product.Quantity+req.Delta < 0 {
		s.logger.Warn("AdjustStock: negative result for product id=%d: quantity=%d, delta=%d",
			id, product.Quantity, req.Delta)
		return nil, fmt.Errorf("%w: quantity %d, requested delta %d", ErrInsufficientStock, product.Quantity, req.Delta)
	}

	movementType := domain.MovementRestock
	if req.Delta < 0 {
		movementType = domain.MovementAdjustment
	}

	// 3. Меняем остаток и пишем журнал в одной транзакции
	var remaining int
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		quantityAfter, err := s.productRepo.AdjustQuantity(txCtx, id, req.Delta)
		if err != nil {
			return fmt.Errorf("adjust quantity: %w", err)
		}

		_, err = s.productRepo.CreateMovement(txCtx, &domain.StockMovement{
			ProductID:     id,
			Type:          movementType,
			Delta:         req.Delta,
			QuantityAfter: quantityAfter,
		})
		if err != nil {
			return fmt.Errorf("create movement: %w", err)
		}

		remaining = quantityAfter
		return nil
	})
	if err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			s.logger.Warn("AdjustStock: product id=%d not found in transaction", id)
			return nil, fmt.Errorf("%w: id = %d", ErrProductNotFound, id)
		}
		s.logger.Error("AdjustStock: transaction failed for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: AdjustStock - transaction error: %v", ErrInternal, err)
	}

	product.Quantity = remaining
	s.logger.Info("AdjustStock: product id=%d adjusted by %d, remaining=%d", id, req.Delta, remaining)

	if product.IsLowStock() {
		s.logger.Warn("AdjustStock: product id=%d (%s) is low on stock: %d left (threshold %d)",
			id, product.Name, product.Quantity, product.LowStockThreshold)
	}

	return models.FromDomainProduct(product), nil
}

// ListMovements возвращает журнал движений остатков товара, сначала новые
func (s *Service) ListMovements(ctx context.Context, productID int64) (*models.StockMovementListResponse, error) {
	// Проверяем существование товара, чтобы отличить пустой журнал от опечатки в ID
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			s.logger.Warn("ListMovements: product id=%d not found", productID)
			return nil, fmt.Errorf("%w: id = %d", ErrProductNotFound, productID)
		}
		s.logger.Error("ListMovements: repository error for id=%d: %v", productID, err)
		return nil, fmt.Errorf("%w: ListMovements - repository error: %v", ErrInternal, err)
	}

	movements, err := s.productRepo.ListMovements(ctx, productID)
	if err != nil {
		s.logger.Error("ListMovements: repository error for id=%d: %v", productID, err)
		return nil, fmt.Errorf("%w: ListMovements - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainMovementList(movements), nil
}

// Валидация

func (s *Service) validateProductData(name string, quantity, threshold int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxProductNameLength {
		return fmt.Errorf("%w: product name exceeds %d characters", ErrInvalidInput, domain.MaxProductNameLength)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}
	if threshold < 0 {
		return fmt.Errorf("%w: low stock threshold must not be negative", ErrInvalidInput)
	}

	return nil
}
