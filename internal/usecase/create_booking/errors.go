package create_booking

import "errors"

var (
	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("create_booking: employee not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceNotAvailable возвращается, когда услуга неактивна или сотрудник её не оказывает
	ErrServiceNotAvailable = errors.New("create_booking: service is not available for this employee")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// Исходы бронирования для метрик
const (
	outcomeCreated           = "created"
	outcomeSlotUnavailable   = "slot_unavailable"
	outcomeFutureLimit       = "future_limit"
	outcomeSimultaneousLimit = "simultaneous_limit"
	outcomeRejected          = "rejected"
	outcomeError             = "error"
)
