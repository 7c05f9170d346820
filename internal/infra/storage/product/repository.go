package product

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

var productColumns = []string{
	"id",
	"name",
	"quantity",
	"low_stock_threshold",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со складом товаров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория склада
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает товар
func (r *Repository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("products").
		Columns("name", "quantity", "low_stock_threshold").
		Values(product.Name, product.Quantity, product.LowStockThreshold).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&product.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	product.CreatedAt = createdAt.Time
	product.UpdatedAt = updatedAt.Time

	return product, nil
}

// GetByID получает товар по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(productColumns...).
		From("products").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var product domain.Product
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&product.ID,
		&product.Name,
		&product.Quantity,
		&product.LowStockThreshold,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan product: %v", ErrScanRow, err)
	}

	product.CreatedAt = createdAt.Time
	product.UpdatedAt = updatedAt.Time

	return &product, nil
}

// GetByIDsForUpdate получает товары по списку ID с блокировкой строк.
// Сортировка по id фиксирует порядок взятия блокировок, чтобы
// конкурентные размещения не взаимоблокировались.
func (r *Repository) GetByIDsForUpdate(ctx context.Context, ids []int64) (map[int64]*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if len(ids) == 0 {
		return map[int64]*domain.Product{}, nil
	}

	selectBuilder := psqlbuilder.Select(productColumns...).
		From("products").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDsForUpdate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDsForUpdate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	products, err := r.scanProducts(rows)
	if err != nil {
		return nil, err
	}

	result := make(map[int64]*domain.Product, len(products))
	for _, product := range products {
		result[product.ID] = product
	}

	return result, nil
}

// List получает товары склада
func (r *Repository) List(ctx context.Context) ([]*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(productColumns...).
		From("products").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanProducts(rows)
}

// ListLowStock получает товары с остатком на уровне порога или ниже
func (r *Repository) ListLowStock(ctx context.Context) ([]*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(productColumns...).
		From("products").
		Where(squirrel.Expr("quantity <= low_stock_threshold")).
		OrderBy("quantity ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListLowStock - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLowStock - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanProducts(rows)
}

// DecrementQuantity списывает n единиц товара.
// Условие quantity >= n защищает от ухода в минус даже вне транзакции:
// ноль затронутых строк при существующем товаре означает нехватку остатка.
func (r *Repository) DecrementQuantity(ctx context.Context, id int64, n int) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("products").
		Set("quantity", squirrel.Expr("quantity - ?", n)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.GtOrEq{"quantity": n}).
		Suffix("RETURNING quantity").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DecrementQuantity - build update query: %v", ErrBuildQuery, err)
	}

	var remaining int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&remaining)

	if err == sql.ErrNoRows {
		// Либо товара нет, либо остатка не хватает - различаем по наличию строки
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return 0, getErr
		}
		return 0, ErrInsufficientStock
	}
	if err != nil {
		return 0, fmt.Errorf("%w: DecrementQuantity - execute update: %v", ErrExecQuery, err)
	}

	return remaining, nil
}

// AdjustQuantity изменяет остаток на delta (может быть отрицательным)
func (r *Repository) AdjustQuantity(ctx context.Context, id int64, delta int) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("products").
		Set("quantity", squirrel.Expr("quantity + ?", delta)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING quantity").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: AdjustQuantity - build update query: %v", ErrBuildQuery, err)
	}

	var remaining int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&remaining)

	if err == sql.ErrNoRows {
		return 0, ErrProductNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: AdjustQuantity - execute update: %v", ErrExecQuery, err)
	}

	return remaining, nil
}

// CreateMovement добавляет запись в журнал движений остатков
func (r *Repository) CreateMovement(ctx context.Context, movement *domain.StockMovement) (*domain.StockMovement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("stock_movements").
		Columns("product_id", "appointment_id", "movement_type", "delta", "quantity_after").
		Values(movement.ProductID, movement.AppointmentID, movement.Type, movement.Delta, movement.QuantityAfter).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateMovement - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&movement.ID, &createdAt)

	if err != nil {
		return nil, fmt.Errorf("%w: CreateMovement - execute insert: %v", ErrExecQuery, err)
	}

	movement.CreatedAt = createdAt.Time

	return movement, nil
}

// ListMovements получает журнал движений по товару, сначала новые
func (r *Repository) ListMovements(ctx context.Context, productID int64) ([]*domain.StockMovement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"product_id",
		"appointment_id",
		"movement_type",
		"delta",
		"quantity_after",
		"created_at",
	).
		From("stock_movements").
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListMovements - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListMovements - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	movements := make([]*domain.StockMovement, 0)
	for rows.Next() {
		var movement domain.StockMovement
		var createdAt sql.NullTime

		err := rows.Scan(
			&movement.ID,
			&movement.ProductID,
			&movement.AppointmentID,
			&movement.Type,
			&movement.Delta,
			&movement.QuantityAfter,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListMovements - scan row: %v", ErrScanRow, err)
		}

		movement.CreatedAt = createdAt.Time

		movements = append(movements, &movement)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListMovements - rows error: %v", ErrScanRow, err)
	}

	return movements, nil
}

// scanProducts сканирует результаты запроса в слайс товаров
func (r *Repository) scanProducts(rows *sql.Rows) ([]*domain.Product, error) {
	products := make([]*domain.Product, 0)

	for rows.Next() {
		var product domain.Product
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Quantity,
			&product.LowStockThreshold,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanProducts - scan row: %v", ErrScanRow, err)
		}

		product.CreatedAt = createdAt.Time
		product.UpdatedAt = updatedAt.Time

		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanProducts - rows error: %v", ErrScanRow, err)
	}

	return products, nil
}
