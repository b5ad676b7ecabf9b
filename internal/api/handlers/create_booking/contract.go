package create_booking

import (
	"context"

	createBooking "github.com/m04kA/SMC-AppointmentEngine/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// AttemptLimiter ограничение частоты попыток бронирования по телефону
type AttemptLimiter interface {
	Allow(ctx context.Context, businessID int64, phone string) (bool, error)
}

// RateLimitRecorder счётчик отказов лимитера
type RateLimitRecorder interface {
	RecordRateLimited(limiter string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
