package availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/types"
)

// FilterBooked убирает слоты, пересекающиеся с любой неотменённой записью (включая блокировки).
// Пересечение полуоткрытое: запись, заканчивающаяся ровно в начале слота, его не занимает.
func FilterBooked(date time.Time, slots []types.TimeString, durationMinutes int, appointments []*domain.Appointment) []types.TimeString {
	result := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if FirstConflict(date, slot, durationMinutes, appointments) == nil {
			result = append(result, slot)
		}
	}
	return result
}

// FirstConflict возвращает первую запись, пересекающуюся со слотом, или nil
func FirstConflict(date time.Time, slot types.TimeString, durationMinutes int, appointments []*domain.Appointment) *domain.Appointment {
	candidate := SlotRange(date, slot, durationMinutes)
	for _, a := range appointments {
		if a == nil || !a.OccupiesTime() {
			continue
		}
		if candidate.Overlaps(a.Range()) {
			return a
		}
	}
	return nil
}

// SlotRange интервал [slot, slot+D) на дату
func SlotRange(date time.Time, slot types.TimeString, durationMinutes int) domain.TimeRange {
	start := slot.OnDate(domain.DateOf(date))
	return domain.TimeRange{Start: start, End: start.Add(time.Duration(durationMinutes) * time.Minute)}
}
