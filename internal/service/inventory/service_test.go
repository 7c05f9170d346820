package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	productRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/product"
	"github.com/m04kA/SMC-ScheduleService/internal/service/inventory/models"
)

type fakeProductRepo struct {
	products  map[int64]*domain.Product
	movements []*domain.StockMovement
	nextID    int64
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: map[int64]*domain.Product{}, nextID: 1}
	for _, product := range products {
		if product.ID >= f.nextID {
			f.nextID = product.ID + 1
		}
		f.products[product.ID] = product
	}
	return f
}

func (f *fakeProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	created := *product
	created.ID = f.nextID
	f.nextID++
	f.products[created.ID] = &created
	copied := created
	return &copied, nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, productRepo.ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

func (f *fakeProductRepo) List(_ context.Context) ([]*domain.Product, error) {
	var result []*domain.Product
	for id := int64(1); id < f.nextID; id++ {
		if product, ok := f.products[id]; ok {
			copied := *product
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeProductRepo) ListLowStock(_ context.Context) ([]*domain.Product, error) {
	var result []*domain.Product
	for id := int64(1); id < f.nextID; id++ {
		if product, ok := f.products[id]; ok && product.IsLowStock() {
			copied := *product
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeProductRepo) AdjustQuantity(_ context.Context, id int64, delta int) (int, error) {
	product, ok := f.products[id]
	if !ok {
		return 0, productRepo.ErrProductNotFound
	}
	product.Quantity += delta
	return product.Quantity, nil
}

func (f *fakeProductRepo) CreateMovement(_ context.Context, movement *domain.StockMovement) (*domain.StockMovement, error) {
	created := *movement
	created.ID = int64(len(f.movements) + 1)
	f.movements = append(f.movements, &created)
	return &created, nil
}

func (f *fakeProductRepo) ListMovements(_ context.Context, productID int64) ([]*domain.StockMovement, error) {
	var result []*domain.StockMovement
	for i := len(f.movements) - 1; i >= 0; i-- {
		if f.movements[i].ProductID == productID {
			result = append(result, f.movements[i])
		}
	}
	return result, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetrics struct {
	lowStock int
}

func (f *fakeMetrics) SetLowStockProducts(n int) { f.lowStock = n }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestService_AdjustStock(t *testing.T) {
	t.Run("пополнение пишет движение restock", func(t *testing.T) {
		repo := newFakeProductRepo(&domain.Product{ID: 1, Name: "Краска для волос", Quantity: 4, LowStockThreshold: 3})
		svc := NewService(repo, fakeTxManager{}, nil, noopLogger{})

		resp, err := svc.AdjustStock(context.Background(), 1, &models.AdjustStockRequest{Delta: 10})
		require.NoError(t, err)
		assert.Equal(t, 14, resp.Quantity)
		assert.False(t, resp.LowStock)

		require.Len(t, repo.movements, 1)
		assert.Equal(t, domain.MovementRestock, repo.movements[0].Type)
		assert.Equal(t, 10, repo.movements[0].Delta)
		assert.Equal(t, 14, repo.movements[0].QuantityAfter)
		assert.Nil(t, repo.movements[0].AppointmentID)
	})

	t.Run("отрицательная delta пишет движение adjustment", func(t *testing.T) {
		repo := newFakeProductRepo(&domain.Product{ID: 1, Name: "Краска для волос", Quantity: 4, LowStockThreshold: 3})
		svc := NewService(repo, fakeTxManager{}, nil, noopLogger{})

		resp, err := svc.AdjustStock(context.Background(), 1, &models.AdjustStockRequest{Delta: -2})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Quantity)
		assert.True(t, resp.LowStock)

		require.Len(t, repo.movements, 1)
		assert.Equal(t, domain.MovementAdjustment, repo.movements[0].Type)
	})

	t.Run("уход в минус отклоняется", func(t *testing.T) {
		repo := newFakeProductRepo(&domain.Product{ID: 1, Name: "Краска для волос", Quantity: 4, LowStockThreshold: 3})
		svc := NewService(repo, fakeTxManager{}, nil, noopLogger{})

		_, err := svc.AdjustStock(context.Background(), 1, &models.AdjustStockRequest{Delta: -5})
		require.ErrorIs(t, err, ErrInsufficientStock)
		assert.Empty(t, repo.movements)
	})

	t.Run("нулевая delta отклоняется", func(t *testing.T) {
		repo := newFakeProductRepo(&domain.Product{ID: 1, Name: "Краска для волос", Quantity: 4, LowStockThreshold: 3})
		svc := NewService(repo, fakeTxManager{}, nil, noopLogger{})

		_, err := svc.AdjustStock(context.Background(), 1, &models.AdjustStockRequest{Delta: 0})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("товар не найден", func(t *testing.T) {
		repo := newFakeProductRepo()
		svc := NewService(repo, fakeTxManager{}, nil, noopLogger{})

		_, err := svc.AdjustStock(context.Background(), 99, &models.AdjustStockRequest{Delta: 1})
		require.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_ListLowStock(t *testing.T) {
	repo := newFakeProductRepo(
		&domain.Product{ID: 1, Name: "Краска для волос", Quantity: 2, LowStockThreshold: 3},
		&domain.Product{ID: 2, Name: "Шампунь", Quantity: 20, LowStockThreshold: 5},
		&domain.Product{ID: 3, Name: "Воск", Quantity: 5, LowStockThreshold: 5},
	)
	metrics := &fakeMetrics{}
	svc := NewService(repo, fakeTxManager{}, metrics, noopLogger{})

	resp, err := svc.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Products, 2)
	assert.Equal(t, "Краска для волос", resp.Products[0].Name)
	assert.Equal(t, "Воск", resp.Products[1].Name)
	assert.Equal(t, 2, metrics.lowStock)
}

func TestService_ListMovements(t *testing.T) {
	t.Run("журнал отдается от новых к старым", func(t *testing.T) {
		repo := newFakeProductRepo(&domain.Product{ID: 1, Name: "Краска для волос", Quantity: 10, LowStockThreshold: 3})
		svc := NewService(repo, fakeTxManager{}, nil, noopLogger{})

		_, err := svc.AdjustStock(context.Background(), 1, &models.AdjustStockRequest{Delta: 5})
		require.NoError(t, err)
		_, err = svc.AdjustStock(context.Background(), 1, &models.AdjustStockRequest{Delta: -3})
		require.NoError(t, err)

		resp, err := svc.ListMovements(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, resp.Movements, 2)
		assert.Equal(t, -3, resp.Movements[0].Delta)
		assert.Equal(t, 5, resp.Movements[1].Delta)
	})

	t.Run("товар не найден", func(t *testing.T) {
		repo := newFakeProductRepo()
		svc := NewService(repo, fakeTxManager{}, nil, noopLogger{})

		_, err := svc.ListMovements(context.Background(), 99)
		require.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_CreateProduct(t *testing.T) {
	t.Run("создание товара", func(t *testing.T) {
		repo := newFakeProductRepo()
		svc := NewService(repo, fakeTxManager{}, nil, noopLogger{})

		resp, err := svc.CreateProduct(context.Background(), &models.CreateProductRequest{
			Name:              "Краска для волос",
			Quantity:          12,
			LowStockThreshold: 3,
		})
		require.NoError(t, err)
		assert.Equal(t, 12, resp.Quantity)
		assert.False(t, resp.LowStock)
	})

	t.Run("отрицательный остаток отклоняется", func(t *testing.T) {
		repo := newFakeProductRepo()
		svc := NewService(repo, fakeTxManager{}, nil, noopLogger{})

		_, err := svc.CreateProduct(context.Background(), &models.CreateProductRequest{
			Name:     "Краска для волос",
			Quantity: -1,
		})
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}
