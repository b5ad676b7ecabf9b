package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/types"
)

var (
	dayStart = types.MustTimeString("00:00")
	midday   = types.MustTimeString("12:00")
	dayEnd   = types.MustTimeString("24:00")
)

// BlockedIntervals объединяет заблокированные праздниками интервалы даты.
// Результат отсортирован, пересекающиеся и соприкасающиеся интервалы слиты.
func BlockedIntervals(holidays []*domain.Holiday, date time.Time) []domain.Interval {
	blocked := make([]domain.Interval, 0, len(holidays))
	for _, h := range holidays {
		if h == nil || !h.IsActive || !h.OnDate(date) {
			continue
		}
		if interval, ok := holidayInterval(h); ok {
			blocked = append(blocked, interval)
		}
	}
	return mergeIntervals(blocked)
}

func holidayInterval(h *domain.Holiday) (domain.Interval, bool) {
	switch h.BlockingType {
	case domain.BlockingFullDay:
		return domain.Interval{Start: dayStart, End: dayEnd}, true
	case domain.BlockingMorning:
		return domain.Interval{Start: dayStart, End: midday}, true
	case domain.BlockingAfternoon:
		return domain.Interval{Start: midday, End: dayEnd}, true
	case domain.BlockingCustom:
		// Хранилище не отдаёт такие праздники (Holiday.Validate), в расчёте блокируем весь день
		if h.CustomStart == nil || h.CustomEnd == nil || h.CustomStart.IsZero() || h.CustomEnd.IsZero() {
			return domain.Interval{Start: dayStart, End: dayEnd}, true
		}
		start, end := *h.CustomStart, *h.CustomEnd
		// Диапазон не переходит через полночь: "22:00-02:00" блокирует до конца дня
		if !start.IsBefore(end) {
			end = dayEnd
		}
		if !start.IsBefore(end) {
			return domain.Interval{}, false
		}
		return domain.Interval{Start: start, End: end}, true
	default:
		return domain.Interval{}, false
	}
}

func mergeIntervals(intervals []domain.Interval) []domain.Interval {
	if len(intervals) == 0 {
		return []domain.Interval{}
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start.IsBefore(intervals[j].Start)
	})

	merged := []domain.Interval{intervals[0]}
	for _, cur := range intervals[1:] {
		last := &merged[len(merged)-1]
		if !last.End.IsBefore(cur.Start) {
			if cur.End.IsAfter(last.End) {
				last.End = cur.End
			}
			continue
		}
		merged = append(merged, cur)
	}
	return merged
}
