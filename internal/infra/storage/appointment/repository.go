package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/pgerr"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"business_id",
	"employee_id",
	"service_id",
	"client_id",
	"start_at",
	"end_at",
	"status",
	"canceled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет запись.
// Пересечение с неотменённой записью того же сотрудника отсекается exclusion-ограничением
// appointments_no_overlap и возвращается как ErrOverlap.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"business_id",
			"employee_id",
			"service_id",
			"client_id",
			"start_at",
			"end_at",
			"status",
		).
		Values(
			a.BusinessID,
			a.EmployeeID,
			a.ServiceID,
			a.ClientID,
			a.Start,
			a.End,
			a.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if pgerr.Is(err, pgerr.ExclusionViolation) {
			return nil, fmt.Errorf("%w: %w", ErrOverlap, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return a, nil
}

// GetByID получает запись бизнеса по ID
func (r *Repository) GetByID(ctx context.Context, businessID, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"id": id, "business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return a, nil
}

// ListOccupyingByEmployee возвращает неотменённые записи сотрудника, пересекающие [from, to).
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельное бронирование ждало нас.
func (r *Repository) ListOccupyingByEmployee(ctx context.Context, businessID, employeeID int64, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{
			"business_id": businessID,
			"employee_id": employeeID,
			"status":      domain.OccupyingStatuses,
		}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupyingByEmployee - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupyingByEmployee - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// CountOpenByClient считает открытые (scheduled, confirmed) записи клиента, начинающиеся не раньше from
func (r *Repository) CountOpenByClient(ctx context.Context, businessID, clientID int64, from time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{
			"business_id": businessID,
			"client_id":   clientID,
			"status":      domain.OpenStatuses,
		}).
		Where(squirrel.GtOrEq{"start_at": from}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountOpenByClient - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountOpenByClient - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// Cancel переводит запись в canceled одним условным UPDATE.
// Если запись не в отменяемом статусе (или её статус только что изменили), возвращает ErrStatusConflict.
func (r *Repository) Cancel(ctx context.Context, businessID, id int64, canceledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCanceled).
		Set("canceled_at", canceledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":          id,
			"business_id": businessID,
			"status":      domain.OpenStatuses,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var clientID sql.NullInt64
	var canceledAt sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.BusinessID,
		&a.EmployeeID,
		&a.ServiceID,
		&clientID,
		&a.Start,
		&a.End,
		&a.Status,
		&canceledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if clientID.Valid {
		id := clientID.Int64
		a.ClientID = &id
	}
	if canceledAt.Valid {
		t := canceledAt.Time
		a.CanceledAt = &t
	}
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %w", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}
