package cancel_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("cancel_appointment: appointment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_appointment: internal error")
)

const (
	outcomeCanceled          = "canceled"
	outcomeWindow            = "window"
	outcomeAlreadyCanceled   = "already_canceled"
	outcomeInvalidTransition = "invalid_transition"
	outcomeError             = "error"
)
