package availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
)

// ResolveWindow возвращает рабочее окно сотрудника на дату.
// false означает, что в этот день недели смены нет: это нулевая доступность, а не ошибка.
func ResolveWindow(employee *domain.Employee, date time.Time) (domain.WorkingWindow, bool) {
	if employee == nil {
		return domain.WorkingWindow{}, false
	}

	shift, ok := employee.ShiftFor(date.Weekday())
	if !ok {
		return domain.WorkingWindow{}, false
	}

	window := domain.WorkingWindow{Start: shift.StartTime, End: shift.EndTime}
	if shift.HasLunch() {
		window.Lunch = &domain.Interval{Start: *shift.LunchStart, End: *shift.LunchEnd}
	}
	return window, true
}
