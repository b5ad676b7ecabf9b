package cancel_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, businessID, id int64) (*domain.Appointment, error)
	Cancel(ctx context.Context, businessID, id int64, canceledAt time.Time) error
}

// SettingsProvider политика бизнеса, читается при каждой отмене
type SettingsProvider interface {
	GetSettings(ctx context.Context, businessID int64) (*domain.BusinessSettings, error)
}

// MetricsRecorder счётчик исходов отмены
type MetricsRecorder interface {
	RecordCancellation(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
