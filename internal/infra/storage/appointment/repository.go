package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

var appointmentColumns = []string{
	"id",
	"staff_id",
	"client_id",
	"client_name",
	"board_date",
	"start_time",
	"duration_minutes",
	"price_total",
	"paid",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями доски
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись вместе с ее составом.
// Если в контексте передана активная транзакция, обе вставки уходят в нее -
// так размещение с проверкой слота остается атомарным.
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"staff_id",
			"client_id",
			"client_name",
			"board_date",
			"start_time",
			"duration_minutes",
			"price_total",
			"paid",
			"notes",
		).
		Values(
			appointment.StaffID,
			appointment.ClientID,
			appointment.ClientName,
			appointment.BoardDate,
			appointment.StartTime,
			appointment.DurationMinutes,
			appointment.PriceTotal,
			appointment.Paid,
			appointment.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	if err := r.insertItems(ctx, executor, appointment); err != nil {
		return nil, err
	}

	return appointment, nil
}

// insertItems вставляет состав записи одним запросом, сохраняя порядок услуг
func (r *Repository) insertItems(ctx context.Context, executor DBExecutor, appointment *domain.Appointment) error {
	if len(appointment.Items) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("appointment_items").
		Columns(
			"appointment_id",
			"service_id",
			"position",
			"service_name",
			"price",
			"duration_minutes",
		)

	for i := range appointment.Items {
		item := &appointment.Items[i]
		item.AppointmentID = appointment.ID
		item.Position = i

		insertBuilder = insertBuilder.Values(
			item.AppointmentID,
			item.ServiceID,
			item.Position,
			item.ServiceName,
			item.Price,
			item.DurationMinutes,
		)
	}

	query, args, err := insertBuilder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertItems - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: insertItems - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	idx := 0
	for rows.Next() {
		if idx >= len(appointment.Items) {
			break
		}
		if err := rows.Scan(&appointment.Items[idx].ID); err != nil {
			return fmt.Errorf("%w: insertItems - scan id: %v", ErrScanRow, err)
		}
		idx++
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: insertItems - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// GetByID получает запись по ID вместе с составом
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := r.scanAppointmentRow(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, executor, []*domain.Appointment{appointment}); err != nil {
		return nil, err
	}

	return appointment, nil
}

// GetByStaffAndDate получает записи одного сотрудника на бизнес-дату,
// отсортированные по времени начала.
// Внутри транзакции строки блокируются через FOR UPDATE - это основа
// проверки занятости слота при размещении и переносе.
func (r *Repository) GetByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"board_date": date}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments, err := r.scanAppointments(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, executor, appointments); err != nil {
		return nil, err
	}

	return appointments, nil
}

// GetByDate получает записи всех сотрудников на бизнес-дату (для доски)
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"board_date": date}).
		OrderBy("staff_id ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments, err := r.scanAppointments(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, executor, appointments); err != nil {
		return nil, err
	}

	return appointments, nil
}

// GetWithFilter получает записи с гибкой фильтрацией по сотруднику,
// клиенту, периоду и признаку оплаты
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments")

	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.ClientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}
	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"board_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"board_date": *filter.DateTo})
	}
	if filter.Paid != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"paid": *filter.Paid})
	}

	// Для конкретной даты сортируем по времени начала, для периода -
	// сначала новые
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.Equal(*filter.DateTo) {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("board_date DESC, start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments, err := r.scanAppointments(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, executor, appointments); err != nil {
		return nil, err
	}

	return appointments, nil
}

// UpdatePlacement переносит запись на другого сотрудника, дату или время
func (r *Repository) UpdatePlacement(ctx context.Context, id, staffID int64, date time.Time, startTime types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("staff_id", staffID).
		Set("board_date", date).
		Set("start_time", startTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePlacement - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePlacement - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePlacement - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// SetPaid обновляет признак оплаты записи
func (r *Repository) SetPaid(ctx context.Context, id int64, paid bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("paid", paid).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetPaid - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetPaid - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Delete удаляет запись; состав удаляется каскадно по внешнему ключу
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// loadItems подгружает состав для набора записей одним запросом
func (r *Repository) loadItems(ctx context.Context, executor DBExecutor, appointments []*domain.Appointment) error {
	if len(appointments) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(appointments))
	byID := make(map[int64]*domain.Appointment, len(appointments))
	for _, a := range appointments {
		ids = append(ids, a.ID)
		byID[a.ID] = a
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"appointment_id",
		"service_id",
		"position",
		"service_name",
		"price",
		"duration_minutes",
	).
		From("appointment_items").
		Where(squirrel.Eq{"appointment_id": ids}).
		OrderBy("appointment_id ASC, position ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.AppointmentItem

		err := rows.Scan(
			&item.ID,
			&item.AppointmentID,
			&item.ServiceID,
			&item.Position,
			&item.ServiceName,
			&item.Price,
			&item.DurationMinutes,
		)
		if err != nil {
			return fmt.Errorf("%w: loadItems - scan row: %v", ErrScanRow, err)
		}

		if appointment, ok := byID[item.AppointmentID]; ok {
			appointment.Items = append(appointment.Items, item)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadItems - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// scanAppointmentRow сканирует одну строку записи
func (r *Repository) scanAppointmentRow(row *sql.Row) (*domain.Appointment, error) {
	var appointment domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appointment.ID,
		&appointment.StaffID,
		&appointment.ClientID,
		&appointment.ClientName,
		&appointment.BoardDate,
		&appointment.StartTime,
		&appointment.DurationMinutes,
		&appointment.PriceTotal,
		&appointment.Paid,
		&appointment.Notes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanAppointmentRow - scan appointment: %v", ErrScanRow, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return &appointment, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appointment domain.Appointment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&appointment.ID,
			&appointment.StaffID,
			&appointment.ClientID,
			&appointment.ClientName,
			&appointment.BoardDate,
			&appointment.StartTime,
			&appointment.DurationMinutes,
			&appointment.PriceTotal,
			&appointment.Paid,
			&appointment.Notes,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		appointment.CreatedAt = createdAt.Time
		appointment.UpdatedAt = updatedAt.Time

		appointments = append(appointments, &appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
