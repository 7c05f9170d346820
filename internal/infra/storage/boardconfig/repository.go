package boardconfig

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// Repository репозиторий конфигурации доски.
// Таблица хранит одну строку; Get берет строку с минимальным id.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает сохраненную конфигурацию доски
func (r *Repository) Get(ctx context.Context) (*domain.BoardConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"day_start_hour",
		"day_end_hour",
		"interval_minutes",
		"rollover_hour",
		"created_at",
		"updated_at",
	).
		From("board_config").
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var config domain.BoardConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&config.DayStartHour,
		&config.DayEndHour,
		&config.IntervalMinutes,
		&config.RolloverHour,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %v", ErrScanRow, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

// Upsert сохраняет конфигурацию доски: обновляет существующую строку
// или создает первую
func (r *Repository) Upsert(ctx context.Context, config *domain.BoardConfig) (*domain.BoardConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	current, err := r.Get(ctx)
	if err != nil && err != ErrConfigNotFound {
		return nil, err
	}

	if current == nil {
		query, args, err := psqlbuilder.Insert("board_config").
			Columns("day_start_hour", "day_end_hour", "interval_minutes", "rollover_hour").
			Values(config.DayStartHour, config.DayEndHour, config.IntervalMinutes, config.RolloverHour).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()

		if err != nil {
			return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
		}

		var createdAt, updatedAt sql.NullTime
		err = executor.QueryRowContext(ctx, query, args...).Scan(&config.ID, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
		}

		config.CreatedAt = createdAt.Time
		config.UpdatedAt = updatedAt.Time

		return config, nil
	}

	query, args, err := psqlbuilder.Update("board_config").
		Set("day_start_hour", config.DayStartHour).
		Set("day_end_hour", config.DayEndHour).
		Set("interval_minutes", config.IntervalMinutes).
		Set("rollover_hour", config.RolloverHour).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": current.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute update: %v", ErrExecQuery, err)
	}

	config.ID = current.ID
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}
