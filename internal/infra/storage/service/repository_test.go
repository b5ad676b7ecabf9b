package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentEngine/pkg/dbmetrics"
)

func TestGetByID(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	repo := NewRepository(dbmetrics.Wrap(sqlDB, nil))

	mock.ExpectQuery(`FROM services WHERE business_id = \$1 AND id = \$2`).
		WithArgs(int64(1), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "business_id", "name", "duration_minutes", "is_active"}).
			AddRow(int64(3), int64(1), "Haircut", 60, true))

	s, err := repo.GetByID(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 60, s.DurationMinutes)
	assert.True(t, s.IsActive)

	mock.ExpectQuery(`FROM services`).WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByID(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
