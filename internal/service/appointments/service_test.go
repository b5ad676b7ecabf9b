package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentEngine/internal/infra/storage/appointment"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) GetByID(ctx context.Context, businessID, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, businessID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	repo.On("GetByID", ctx, int64(1), int64(5)).Return(&domain.Appointment{
		ID: 5, BusinessID: 1, EmployeeID: 7, ServiceID: 3,
		Start:  time.Date(2024, 1, 2, 23, 0, 0, 0, time.UTC),
		End:    time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		Status: domain.StatusScheduled,
	}, nil)
	repo.On("GetByID", ctx, int64(1), int64(6)).Return(nil, appointmentRepo.ErrAppointmentNotFound)
	repo.On("GetByID", ctx, int64(1), int64(7)).Return(nil, errors.New("boom"))

	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByID(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", resp.Date)
	assert.Equal(t, "23:00", resp.StartTime)
	assert.Equal(t, "24:00", resp.EndTime)
	assert.Equal(t, "scheduled", resp.Status)

	_, err = svc.GetByID(ctx, 1, 6)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = svc.GetByID(ctx, 1, 7)
	assert.ErrorIs(t, err, ErrInternal)
}
