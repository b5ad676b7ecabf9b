package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/types"
)

// Repository репозиторий праздников и выходных бизнеса
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория праздников
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByDate возвращает все праздники бизнеса на дату, включая неактивные.
// Активный праздник с некорректными данными возвращается ошибкой ErrInvalidHoliday.
func (r *Repository) ListByDate(ctx context.Context, businessID int64, date time.Time) ([]*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"date",
		"name",
		"blocking_type",
		"custom_start::text",
		"custom_end::text",
		"is_active",
	).
		From("holidays").
		Where(squirrel.Eq{"business_id": businessID, "date": date.Format(domain.DateFormat)}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	holidays := make([]*domain.Holiday, 0)
	for rows.Next() {
		var (
			h                      domain.Holiday
			customStart, customEnd types.TimeString
		)
		err := rows.Scan(
			&h.ID,
			&h.BusinessID,
			&h.Date,
			&h.Name,
			&h.BlockingType,
			&customStart,
			&customEnd,
			&h.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByDate - scan row: %w", ErrScanRow, err)
		}
		if !customStart.IsZero() {
			h.CustomStart = &customStart
		}
		if !customEnd.IsZero() {
			h.CustomEnd = &customEnd
		}
		if h.IsActive {
			if err := h.Validate(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidHoliday, err)
			}
		}
		holidays = append(holidays, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDate - rows error: %w", ErrScanRow, err)
	}

	return holidays, nil
}
