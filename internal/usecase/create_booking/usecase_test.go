package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
	"github.com/m04kA/SMC-AppointmentEngine/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/pgerr"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/txmanager"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/types"
)

const (
	businessID = int64(1)
	employeeID = int64(10)
	serviceID  = int64(100)
)

type env struct {
	settings     *settingsStore
	appointments *appointmentStore
	clients      *clientStore
	metrics      *outcomeRecorder
	uc           *UseCase
}

// newEnv сотрудник работает каждый день 09:00-18:00, услуга 60 минут
func newEnv(now time.Time, settings *domain.BusinessSettings) *env {
	shifts := make([]domain.Shift, 0, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		shifts = append(shifts, domain.Shift{
			DayOfWeek: day,
			StartTime: types.MustTimeString("09:00"),
			EndTime:   types.MustTimeString("18:00"),
		})
	}

	e := &env{
		settings:     &settingsStore{settings: settings},
		appointments: &appointmentStore{},
		clients:      &clientStore{},
		metrics:      &outcomeRecorder{},
	}

	avail := availability.NewService(
		&employeeStore{employee: &domain.Employee{
			ID: employeeID, BusinessID: businessID, Name: "Anna", Shifts: shifts, ServiceIDs: []int64{serviceID},
		}},
		&serviceStore{service: &domain.Service{
			ID: serviceID, BusinessID: businessID, Name: "Haircut", DurationMinutes: 60, IsActive: true,
		}},
		&holidayStore{},
		e.appointments,
		e.settings,
		nopLogger{},
	)

	e.uc = NewUseCase(avail, e.appointments, e.clients, passthroughTx{}, e.metrics, nopLogger{})
	e.uc.timeProvider = fixedClock{now: now}
	return e
}

func date(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func request(day, start, phone string) *Request {
	return &Request{
		BusinessID:  businessID,
		EmployeeID:  employeeID,
		ServiceID:   serviceID,
		ClientPhone: phone,
		ClientName:  "Ivan",
		Date:        date(day),
		StartTime:   types.MustTimeString(start),
	}
}

func TestExecute_Success(t *testing.T) {
	e := newEnv(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), nil)

	resp, err := e.uc.Execute(context.Background(), request("2024-01-01", "10:00", "+7 (900) 123-45-67"))

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), resp.Start)
	assert.Equal(t, time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC), resp.End)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, int64(1), resp.ClientID)
	assert.Equal(t, outcomeCreated, e.metrics.last())

	client, err := e.clients.Upsert(context.Background(), &domain.Client{BusinessID: businessID, Phone: "79001234567"})
	require.NoError(t, err)
	assert.Equal(t, resp.ClientID, client.ID)
}

func TestExecute_FutureLimit(t *testing.T) {
	settings := domain.DefaultSettings(businessID)
	settings.BookingFutureLimitDays = 3
	e := newEnv(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), settings)

	_, err := e.uc.Execute(context.Background(), request("2024-01-04", "10:00", "79001234567"))
	require.NoError(t, err)

	_, err = e.uc.Execute(context.Background(), request("2024-01-05", "10:00", "79001234567"))
	require.ErrorIs(t, err, domain.ErrFutureLimitExceeded)

	var limitErr *domain.FutureLimitExceededError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, 3, limitErr.LimitDays)
	assert.Equal(t, date("2024-01-04"), limitErr.MaxDate())
	assert.Equal(t, outcomeFutureLimit, e.metrics.last())
}

func TestExecute_PastDate(t *testing.T) {
	e := newEnv(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), nil)

	_, err := e.uc.Execute(context.Background(), request("2023-12-31", "10:00", "79001234567"))

	var limitErr *domain.FutureLimitExceededError
	require.True(t, errors.As(err, &limitErr))
	assert.Contains(t, limitErr.Error(), "in the past")
	assert.Equal(t, 0, e.appointments.count())
}

func TestExecute_SlotTaken(t *testing.T) {
	e := newEnv(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), nil)

	_, err := e.uc.Execute(context.Background(), request("2024-01-01", "10:00", "79001111111"))
	require.NoError(t, err)

	_, err = e.uc.Execute(context.Background(), request("2024-01-01", "10:30", "79002222222"))

	var slotErr *domain.SlotUnavailableError
	require.True(t, errors.As(err, &slotErr))
	require.NotNil(t, slotErr.Conflict)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), slotErr.Conflict.Start)
	assert.Equal(t, time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC), slotErr.Conflict.End)
	assert.Equal(t, outcomeSlotUnavailable, e.metrics.last())
	assert.Equal(t, 1, e.appointments.count())
}

func TestExecute_SlotOutsideShift(t *testing.T) {
	e := newEnv(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), nil)

	// 17:30 + 60 минут выходит за конец смены
	_, err := e.uc.Execute(context.Background(), request("2024-01-01", "17:30", "79001234567"))

	var slotErr *domain.SlotUnavailableError
	require.True(t, errors.As(err, &slotErr))
	assert.Nil(t, slotErr.Conflict)
}

func TestExecute_SlotAlreadyStartedToday(t *testing.T) {
	e := newEnv(time.Date(2024, 1, 1, 10, 15, 0, 0, time.UTC), nil)

	_, err := e.uc.Execute(context.Background(), request("2024-01-01", "10:00", "79001234567"))
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)

	_, err = e.uc.Execute(context.Background(), request("2024-01-01", "11:00", "79001234567"))
	assert.NoError(t, err)
}

func TestExecute_BusinessTimezone(t *testing.T) {
	settings := domain.DefaultSettings(businessID)
	settings.Timezone = "Europe/Moscow"
	// 06:30 UTC = 09:30 по Москве
	e := newEnv(time.Date(2024, 1, 1, 6, 30, 0, 0, time.UTC), settings)

	_, err := e.uc.Execute(context.Background(), request("2024-01-01", "09:00", "79001234567"))
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)

	resp, err := e.uc.Execute(context.Background(), request("2024-01-01", "10:00", "79001234567"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), resp.Start)
}

func TestExecute_SimultaneousLimit(t *testing.T) {
	settings := domain.DefaultSettings(businessID)
	settings.BookingSimultaneousLimit = 1
	e := newEnv(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), settings)

	_, err := e.uc.Execute(context.Background(), request("2024-01-02", "10:00", "79001234567"))
	require.NoError(t, err)

	_, err = e.uc.Execute(context.Background(), request("2024-01-03", "10:00", "79001234567"))

	var limitErr *domain.SimultaneousLimitExceededError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, 1, limitErr.Limit)
	assert.Equal(t, 1, limitErr.Active)

	// Другой клиент не ограничен чужими записями
	_, err = e.uc.Execute(context.Background(), request("2024-01-03", "10:00", "79007654321"))
	assert.NoError(t, err)
}

func TestExecute_SimultaneousLimitIgnoresPastAndCanceled(t *testing.T) {
	settings := domain.DefaultSettings(businessID)
	settings.BookingSimultaneousLimit = 1
	e := newEnv(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), settings)

	clientID := int64(1)
	_, err := e.clients.Upsert(context.Background(), &domain.Client{BusinessID: businessID, Name: "Ivan", Phone: "79001234567"})
	require.NoError(t, err)
	e.appointments.items = []*domain.Appointment{
		{ID: 1, BusinessID: businessID, EmployeeID: 99, ClientID: ptr.Ptr(clientID),
			Start: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), End: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			Status: domain.StatusScheduled},
		{ID: 2, BusinessID: businessID, EmployeeID: 99, ClientID: ptr.Ptr(clientID),
			Start: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), End: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
			Status: domain.StatusCanceled},
	}
	e.appointments.nextID = 2

	_, err = e.uc.Execute(context.Background(), request("2024-01-02", "10:00", "79001234567"))
	assert.NoError(t, err)
}

func TestExecute_InvalidInput(t *testing.T) {
	e := newEnv(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), nil)

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"short phone", func(r *Request) { r.ClientPhone = "12-34" }},
		{"empty name", func(r *Request) { r.ClientName = "   " }},
		{"no date", func(r *Request) { r.Date = time.Time{} }},
		{"no start", func(r *Request) { r.StartTime = types.TimeString{} }},
		{"bad employee", func(r *Request) { r.EmployeeID = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request("2024-01-01", "10:00", "79001234567")
			tt.mutate(req)
			_, err := e.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Equal(t, 0, e.appointments.count())
}

func TestExecute_UnknownEmployee(t *testing.T) {
	e := newEnv(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), nil)

	req := request("2024-01-01", "10:00", "79001234567")
	req.EmployeeID = 404
	_, err := e.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

// Два клиента одновременно бронируют один слот: оба видят его свободным,
// вставка проходит ровно у одного.
func TestExecute_ConcurrentBookingOfSameSlot(t *testing.T) {
	e := newEnv(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), nil)
	barrier := &sync.WaitGroup{}
	barrier.Add(2)
	e.appointments.barrier = barrier

	phones := []string{"79001111111", "79002222222"}
	errs := make([]error, len(phones))

	var wg sync.WaitGroup
	for i, phone := range phones {
		wg.Add(1)
		go func(i int, phone string) {
			defer wg.Done()
			_, errs[i] = e.uc.Execute(context.Background(), request("2024-01-01", "10:00", phone))
		}(i, phone)
	}
	wg.Wait()

	succeeded, lost := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrSlotUnavailable):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, lost)
	assert.Equal(t, 1, e.appointments.count())
}

func TestExecute_SerializationRetriesExhausted(t *testing.T) {
	e := newEnv(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), nil)
	e.uc.txManager = failingTx{err: fmt.Errorf("%w: %w", ErrInternal, &pq.Error{Code: pgerr.SerializationFailure})}

	_, err := e.uc.Execute(context.Background(), request("2024-01-01", "10:00", "79001234567"))

	require.ErrorIs(t, err, domain.ErrSlotUnavailable)
	var slotErr *domain.SlotUnavailableError
	require.True(t, errors.As(err, &slotErr))
	assert.Equal(t, "10:00", slotErr.Slot.String())
	assert.Nil(t, slotErr.Conflict)
	assert.Equal(t, outcomeSlotUnavailable, e.metrics.last())
}

func TestExecute_CommitFailure(t *testing.T) {
	e := newEnv(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), nil)
	e.uc.txManager = failingTx{err: fmt.Errorf("%w: %w", txmanager.ErrCommitTx, errors.New("connection reset"))}

	_, err := e.uc.Execute(context.Background(), request("2024-01-01", "10:00", "79001234567"))

	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, txmanager.ErrCommitTx)
	assert.Equal(t, outcomeError, e.metrics.last())
}
