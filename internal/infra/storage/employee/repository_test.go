package employee

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentEngine/pkg/dbmetrics"
)

var shiftColumns = []string{"day_of_week", "start_time", "end_time", "lunch_start", "lunch_end"}

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return NewRepository(dbmetrics.Wrap(sqlDB, nil)), mock
}

func TestGetByID_LoadsScheduleAndServices(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT id, business_id, name FROM employees`).
		WithArgs(int64(1), int64(7), true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "business_id", "name"}).AddRow(int64(7), int64(1), "Anna"))
	mock.ExpectQuery(`FROM employee_shifts WHERE employee_id = \$1 ORDER BY day_of_week ASC`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(shiftColumns).
			AddRow(1, "09:00:00", "18:00:00", "12:00:00", "13:00:00").
			AddRow(6, "10:00:00", "24:00:00", nil, nil))
	mock.ExpectQuery(`SELECT service_id FROM employee_services`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"service_id"}).AddRow(int64(3)).AddRow(int64(4)))

	e, err := repo.GetByID(context.Background(), 1, 7)
	require.NoError(t, err)

	require.Len(t, e.Shifts, 2)
	assert.Equal(t, time.Monday, e.Shifts[0].DayOfWeek)
	require.True(t, e.Shifts[0].HasLunch())
	assert.Equal(t, "12:00", e.Shifts[0].LunchStart.String())
	assert.Equal(t, "24:00", e.Shifts[1].EndTime.String())
	assert.False(t, e.Shifts[1].HasLunch())
	assert.True(t, e.Performs(4))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_RejectsBrokenSchedule(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM employees`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "business_id", "name"}).AddRow(int64(7), int64(1), "Anna"))
	mock.ExpectQuery(`FROM employee_shifts`).
		WillReturnRows(sqlmock.NewRows(shiftColumns).AddRow(1, "09:00:00", "18:00:00", "17:30:00", "18:30:00"))
	mock.ExpectQuery(`FROM employee_services`).
		WillReturnRows(sqlmock.NewRows([]string{"service_id"}))

	_, err := repo.GetByID(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM employees`).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}
