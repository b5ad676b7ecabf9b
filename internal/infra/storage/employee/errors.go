package employee

import "errors"

var (
	// ErrEmployeeNotFound возвращается, когда сотрудник не найден или неактивен
	ErrEmployeeNotFound = errors.New("employee.repository: employee not found")

	// ErrInvalidSchedule возвращается, когда расписание из БД нарушает инварианты смен
	ErrInvalidSchedule = errors.New("employee.repository: invalid schedule")

	ErrBuildQuery = errors.New("employee.repository: failed to build query")
	ErrExecQuery  = errors.New("employee.repository: failed to execute query")
	ErrScanRow    = errors.New("employee.repository: failed to scan row")
)
