package domain

// Default configuration values
const (
	DefaultBookingTimeIntervalMinutes = 30
)

// Business validation constants
const (
	MaxBookingTimeIntervalMinutes = 480 // 8 hours
	MaxBookingFutureLimitDays     = 365 // 1 year
	MaxBookingCancelMinHours      = 720 // 30 days
	MinPhoneDigits                = 7
	MaxPhoneDigits                = 15
	MaxClientNameLength           = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses статусы, занимающие время сотрудника.
// Используется при выборке записей для фильтрации слотов.
var OccupyingStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusCompleted,
	StatusNoShow,
	StatusBlocked,
}

// OpenStatuses статусы открытых записей клиента.
// Используется при подсчёте лимита одновременных записей.
var OpenStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
}
