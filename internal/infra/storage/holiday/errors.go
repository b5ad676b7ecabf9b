package holiday

import "errors"

var (
	// ErrInvalidHoliday возвращается, когда активный праздник из БД не проходит проверку
	ErrInvalidHoliday = errors.New("holiday.repository: invalid holiday")

	ErrBuildQuery = errors.New("holiday.repository: failed to build query")
	ErrExecQuery  = errors.New("holiday.repository: failed to execute query")
	ErrScanRow    = errors.New("holiday.repository: failed to scan row")
)
