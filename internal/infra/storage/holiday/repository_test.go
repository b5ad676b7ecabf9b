package holiday

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/dbmetrics"
)

func TestListByDate(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	repo := NewRepository(dbmetrics.Wrap(sqlDB, nil))

	date := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM holidays WHERE business_id = \$1 AND date = \$2 ORDER BY id ASC`).
		WithArgs(int64(1), "2024-03-08").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "business_id", "date", "name", "blocking_type", "custom_start", "custom_end", "is_active",
		}).
			AddRow(int64(1), int64(1), date, "Short day", "custom", "15:00:00", "24:00:00", true).
			AddRow(int64(2), int64(1), date, "Cleaning", "morning", nil, nil, false))

	list, err := repo.ListByDate(context.Background(), 1, date)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, domain.BlockingCustom, list[0].BlockingType)
	require.NotNil(t, list[0].CustomEnd)
	assert.Equal(t, "24:00", list[0].CustomEnd.String())
	assert.Nil(t, list[1].CustomStart)
	assert.False(t, list[1].IsActive)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByDate_ActiveCustomWithoutEnd(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	repo := NewRepository(dbmetrics.Wrap(sqlDB, nil))

	date := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM holidays WHERE business_id = \$1 AND date = \$2 ORDER BY id ASC`).
		WithArgs(int64(1), "2024-03-08").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "business_id", "date", "name", "blocking_type", "custom_start", "custom_end", "is_active",
		}).
			AddRow(int64(3), int64(1), date, "Inventory", "custom", "14:00:00", nil, true))

	_, err = repo.ListByDate(context.Background(), 1, date)
	assert.ErrorIs(t, err, ErrInvalidHoliday)
	assert.ErrorIs(t, err, domain.ErrInvalidHoliday)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByDate_InactiveBrokenRowIsReturned(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	repo := NewRepository(dbmetrics.Wrap(sqlDB, nil))

	date := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM holidays`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "business_id", "date", "name", "blocking_type", "custom_start", "custom_end", "is_active",
		}).
			AddRow(int64(4), int64(1), date, "Draft", "custom", nil, nil, false))

	list, err := repo.ListByDate(context.Background(), 1, date)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
