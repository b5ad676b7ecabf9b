package availability

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentEngine/internal/domain"
	"github.com/m04kA/SMC-AppointmentEngine/pkg/types"
)

// SlotParams входные данные генератора слотов
type SlotParams struct {
	Window             domain.WorkingWindow
	Blocked            []domain.Interval
	GranularityMinutes int
	DurationMinutes    int
	Period             domain.Period // пусто = весь день
}

// GenerateSlots перечисляет начала слотов с шагом G от начала смены.
// Слот s попадает в результат, только если:
//   - [s, s+D) целиком внутри смены;
//   - [s, s+D) не пересекается с обедом и заблокированными интервалами;
//   - s (только начало) попадает в период, если он задан.
func GenerateSlots(p SlotParams) ([]types.TimeString, error) {
	if p.GranularityMinutes <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGranularity, p.GranularityMinutes)
	}
	if p.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDuration, p.DurationMinutes)
	}

	slots := make([]types.TimeString, 0)
	windowEnd := p.Window.End.Minutes()

	for m := p.Window.Start.Minutes(); m+p.DurationMinutes <= windowEnd; m += p.GranularityMinutes {
		start, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromMinutes(m + p.DurationMinutes)
		if err != nil {
			return nil, err
		}
		candidate := domain.Interval{Start: start, End: end}

		if p.Window.Lunch != nil && candidate.Overlaps(*p.Window.Lunch) {
			continue
		}
		if overlapsAny(candidate, p.Blocked) {
			continue
		}
		if !p.Period.Contains(start) {
			continue
		}

		slots = append(slots, start)
	}

	return slots, nil
}

func overlapsAny(candidate domain.Interval, blocked []domain.Interval) bool {
	for _, b := range blocked {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}
