package employee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/types"
)

// Repository читает сотрудников вместе со сменами и списком услуг
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает активного сотрудника бизнеса.
// Расписание проверяется здесь, дальше по коду смены считаются корректными.
func (r *Repository) GetByID(ctx context.Context, businessID, employeeID int64) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "business_id", "name").
		From("employees").
		Where(squirrel.Eq{"id": employeeID, "business_id": businessID, "is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var e domain.Employee
	err = executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.BusinessID, &e.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan employee: %w", ErrScanRow, err)
	}

	if e.Shifts, err = r.listShifts(ctx, executor, employeeID); err != nil {
		return nil, err
	}
	if e.ServiceIDs, err = r.listServiceIDs(ctx, executor, employeeID); err != nil {
		return nil, err
	}

	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	return &e, nil
}

func (r *Repository) listShifts(ctx context.Context, executor dbmetrics.DBExecutor, employeeID int64) ([]domain.Shift, error) {
	// TIME приводится к тексту: lib/pq не умеет отдавать 24:00 как время суток
	query, args, err := psqlbuilder.Select(
		"day_of_week",
		"start_time::text",
		"end_time::text",
		"lunch_start::text",
		"lunch_end::text",
	).
		From("employee_shifts").
		Where(squirrel.Eq{"employee_id": employeeID}).
		OrderBy("day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listShifts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listShifts - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	shifts := make([]domain.Shift, 0, 7)
	for rows.Next() {
		var (
			day                  int
			sh                   domain.Shift
			lunchStart, lunchEnd types.TimeString
		)
		if err := rows.Scan(&day, &sh.StartTime, &sh.EndTime, &lunchStart, &lunchEnd); err != nil {
			return nil, fmt.Errorf("%w: listShifts - scan row: %w", ErrScanRow, err)
		}
		sh.DayOfWeek = time.Weekday(day)
		if !lunchStart.IsZero() {
			sh.LunchStart = &lunchStart
		}
		if !lunchEnd.IsZero() {
			sh.LunchEnd = &lunchEnd
		}
		shifts = append(shifts, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listShifts - rows error: %w", ErrScanRow, err)
	}

	return shifts, nil
}

func (r *Repository) listServiceIDs(ctx context.Context, executor dbmetrics.DBExecutor, employeeID int64) ([]int64, error) {
	query, args, err := psqlbuilder.Select("service_id").
		From("employee_services").
		Where(squirrel.Eq{"employee_id": employeeID}).
		OrderBy("service_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listServiceIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listServiceIDs - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: listServiceIDs - scan row: %w", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listServiceIDs - rows error: %w", ErrScanRow, err)
	}

	return ids, nil
}
