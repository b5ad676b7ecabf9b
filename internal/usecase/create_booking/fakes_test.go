package create_booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentEngine/internal/infra/storage/appointment"
	employeeRepo "github.com/m04kA/SMC-AppointmentEngine/internal/infra/storage/employee"
	serviceRepo "github.com/m04kA/SMC-AppointmentEngine/internal/infra/storage/service"
)

// In-memory хранилища. appointmentStore.Create ведёт себя как exclusion constraint.

type settingsStore struct {
	settings *domain.BusinessSettings
}

func (s *settingsStore) GetSettings(_ context.Context, businessID int64) (*domain.BusinessSettings, error) {
	if s.settings == nil {
		return domain.DefaultSettings(businessID), nil
	}
	copied := *s.settings
	return &copied, nil
}

type employeeStore struct {
	employee *domain.Employee
}

func (s *employeeStore) GetByID(_ context.Context, businessID, employeeID int64) (*domain.Employee, error) {
	if s.employee == nil || s.employee.ID != employeeID || s.employee.BusinessID != businessID {
		return nil, employeeRepo.ErrEmployeeNotFound
	}
	return s.employee, nil
}

type serviceStore struct {
	service *domain.Service
}

func (s *serviceStore) GetByID(_ context.Context, businessID, serviceID int64) (*domain.Service, error) {
	if s.service == nil || s.service.ID != serviceID || s.service.BusinessID != businessID {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return s.service, nil
}

type holidayStore struct {
	holidays []*domain.Holiday
}

func (s *holidayStore) ListByDate(_ context.Context, _ int64, date time.Time) ([]*domain.Holiday, error) {
	var out []*domain.Holiday
	for _, h := range s.holidays {
		if h.OnDate(date) {
			out = append(out, h)
		}
	}
	return out, nil
}

type appointmentStore struct {
	mu      sync.Mutex
	items   []*domain.Appointment
	nextID  int64
	barrier *sync.WaitGroup // все читатели ждут друг друга после чтения
}

func (s *appointmentStore) ListOccupyingByEmployee(_ context.Context, businessID, employeeID int64, from, to time.Time) ([]*domain.Appointment, error) {
	s.mu.Lock()
	var out []*domain.Appointment
	window := domain.TimeRange{Start: from, End: to}
	for _, a := range s.items {
		if a.BusinessID == businessID && a.EmployeeID == employeeID && a.OccupiesTime() && a.Range().Overlaps(window) {
			copied := *a
			out = append(out, &copied)
		}
	}
	s.mu.Unlock()

	if s.barrier != nil {
		s.barrier.Done()
		s.barrier.Wait()
	}
	return out, nil
}

func (s *appointmentStore) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.EmployeeID == a.EmployeeID && existing.OccupiesTime() && existing.Range().Overlaps(a.Range()) {
			return nil, fmt.Errorf("%w: appointment %d", appointmentRepo.ErrOverlap, existing.ID)
		}
	}

	s.nextID++
	created := *a
	created.ID = s.nextID
	s.items = append(s.items, &created)
	return &created, nil
}

func (s *appointmentStore) CountOpenByClient(_ context.Context, businessID, clientID int64, from time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, a := range s.items {
		if a.BusinessID == businessID && a.ClientID != nil && *a.ClientID == clientID && a.IsOpen() && !a.Start.Before(from) {
			n++
		}
	}
	return n, nil
}

func (s *appointmentStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

type clientStore struct {
	mu      sync.Mutex
	byPhone map[string]*domain.Client
	nextID  int64
}

func (s *clientStore) Upsert(_ context.Context, c *domain.Client) (*domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.byPhone == nil {
		s.byPhone = make(map[string]*domain.Client)
	}
	if existing, ok := s.byPhone[c.Phone]; ok {
		copied := *existing
		return &copied, nil
	}
	s.nextID++
	created := *c
	created.ID = s.nextID
	s.byPhone[c.Phone] = &created
	copied := created
	return &copied, nil
}

// passthroughTx выполняет fn без транзакции
type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// failingTx не выполняет fn и возвращает ошибку менеджера транзакций
type failingTx struct {
	err error
}

func (f failingTx) DoSerializable(context.Context, func(ctx context.Context) error) error {
	return f.err
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type outcomeRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *outcomeRecorder) RecordBooking(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func (r *outcomeRecorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.outcomes) == 0 {
		return ""
	}
	return r.outcomes[len(r.outcomes)-1]
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
