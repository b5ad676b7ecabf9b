package availability

import "errors"

var (
	ErrInvalidGranularity = errors.New("availability: slot granularity must be positive")
	ErrInvalidDuration    = errors.New("availability: service duration must be positive")

	ErrEmployeeNotFound  = errors.New("availability: employee not found")
	ErrServiceNotFound   = errors.New("availability: service not found")
	ErrServiceInactive   = errors.New("availability: service is not active")
	ErrServiceNotOffered = errors.New("availability: employee does not perform the service")
	ErrInternal          = errors.New("availability: internal error")
)
