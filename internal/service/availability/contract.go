package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
)

// EmployeeRepository сотрудники со сменами и услугами
type EmployeeRepository interface {
	GetByID(ctx context.Context, businessID, employeeID int64) (*domain.Employee, error)
}

// ServiceRepository услуги бизнеса
type ServiceRepository interface {
	GetByID(ctx context.Context, businessID, serviceID int64) (*domain.Service, error)
}

// HolidayRepository выходные дни бизнеса
type HolidayRepository interface {
	ListByDate(ctx context.Context, businessID int64, date time.Time) ([]*domain.Holiday, error)
}

// AppointmentRepository записи сотрудника.
// Внутри транзакции строки читаются с блокировкой.
type AppointmentRepository interface {
	ListOccupyingByEmployee(ctx context.Context, businessID, employeeID int64, from, to time.Time) ([]*domain.Appointment, error)
}

// SettingsProvider политика бронирования бизнеса (с дефолтами, если не настроена)
type SettingsProvider interface {
	GetSettings(ctx context.Context, businessID int64) (*domain.BusinessSettings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
