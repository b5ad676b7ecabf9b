package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
	employeeRepo "github.com/m04kA/SMC-AppointmentEngine/internal/infra/storage/employee"
	serviceRepo "github.com/m04kA/SMC-AppointmentEngine/internal/infra/storage/service"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/types"
)

// Service собирает доступные слоты сотрудника из смен, праздников, политики бизнеса и существующих записей
type Service struct {
	employees    EmployeeRepository
	services     ServiceRepository
	holidays     HolidayRepository
	appointments AppointmentRepository
	settings     SettingsProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	employees EmployeeRepository,
	services ServiceRepository,
	holidays HolidayRepository,
	appointments AppointmentRepository,
	settings SettingsProvider,
	logger Logger,
) *Service {
	return &Service{
		employees:    employees,
		services:     services,
		holidays:     holidays,
		appointments: appointments,
		settings:     settings,
		logger:       logger,
	}
}

// Query параметры расчёта
type Query struct {
	BusinessID int64
	EmployeeID int64
	ServiceID  int64
	Date       time.Time     // полночь даты в локальном времени бизнеса
	Period     domain.Period // пусто = весь день
}

// Result доступные слоты и данные, из которых они посчитаны
type Result struct {
	Slots        []types.TimeString
	Settings     *domain.BusinessSettings
	Employee     *domain.Employee
	Service      *domain.Service
	Appointments []*domain.Appointment
	HasShift     bool
}

// Compute считает доступные слоты на дату.
// Внутри транзакции (шаг 1 бронирования) все чтения идут через неё, записи сотрудника блокируются.
func (s *Service) Compute(ctx context.Context, q Query) (*Result, error) {
	date := domain.DateOf(q.Date)

	// 1. Политика бизнеса
	settings, err := s.settings.GetSettings(ctx, q.BusinessID)
	if err != nil {
		s.logger.Error("Availability.Compute: failed to get settings for business=%d: %v", q.BusinessID, err)
		return nil, fmt.Errorf("%w: get settings: %w", ErrInternal, err)
	}

	// 2. Сотрудник и услуга
	employee, err := s.employees.GetByID(ctx, q.BusinessID, q.EmployeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("Availability.Compute: failed to get employee id=%d: %v", q.EmployeeID, err)
		return nil, fmt.Errorf("%w: get employee: %w", ErrInternal, err)
	}

	service, err := s.services.GetByID(ctx, q.BusinessID, q.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Availability.Compute: failed to get service id=%d: %v", q.ServiceID, err)
		return nil, fmt.Errorf("%w: get service: %w", ErrInternal, err)
	}
	if !service.IsActive {
		return nil, ErrServiceInactive
	}
	if !employee.Performs(service.ID) {
		return nil, ErrServiceNotOffered
	}

	result := &Result{
		Slots:    []types.TimeString{},
		Settings: settings,
		Employee: employee,
		Service:  service,
	}

	// 3. Рабочее окно. Нет смены - нет слотов.
	window, ok := ResolveWindow(employee, date)
	if !ok {
		return result, nil
	}
	result.HasShift = true

	// 4. Праздники
	holidays, err := s.holidays.ListByDate(ctx, q.BusinessID, date)
	if err != nil {
		s.logger.Error("Availability.Compute: failed to list holidays for business=%d date=%s: %v",
			q.BusinessID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: list holidays: %w", ErrInternal, err)
	}

	// 5. Кандидаты
	candidates, err := GenerateSlots(SlotParams{
		Window:             window,
		Blocked:            BlockedIntervals(holidays, date),
		GranularityMinutes: settings.Interval(),
		DurationMinutes:    service.DurationMinutes,
		Period:             q.Period,
	})
	if err != nil {
		s.logger.Error("Availability.Compute: failed to generate slots for service=%d: %v", service.ID, err)
		return nil, fmt.Errorf("%w: generate slots: %w", ErrInternal, err)
	}

	// 6. Существующие записи сотрудника на дату
	appointments, err := s.appointments.ListOccupyingByEmployee(ctx, q.BusinessID, q.EmployeeID, date, date.AddDate(0, 0, 1))
	if err != nil {
		s.logger.Error("Availability.Compute: failed to list appointments for employee=%d: %v", q.EmployeeID, err)
		return nil, fmt.Errorf("%w: list appointments: %w", ErrInternal, err)
	}
	result.Appointments = appointments

	result.Slots = FilterBooked(date, candidates, service.DurationMinutes, appointments)
	return result, nil
}
