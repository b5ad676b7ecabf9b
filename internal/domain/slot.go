package domain

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentEngine/pkg/types"
)

// Interval half-open wall-clock range [Start, End) within one day.
// End may be "24:00".
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// Overlaps returns true if the intervals intersect. Touching endpoints do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.IsBefore(other.End) && other.Start.IsBefore(i.End)
}

// Contains returns true if t lies inside [Start, End)
func (i Interval) Contains(t types.TimeString) bool {
	return !t.IsBefore(i.Start) && t.IsBefore(i.End)
}

// IsEmpty returns true if the interval has no length
func (i Interval) IsEmpty() bool {
	return !i.Start.IsBefore(i.End)
}

func (i Interval) String() string {
	return fmt.Sprintf("%s-%s", i.Start, i.End)
}

// WorkingWindow рабочее окно сотрудника на конкретную дату
type WorkingWindow struct {
	Start types.TimeString
	End   types.TimeString
	Lunch *Interval
}

// Period part of the day used to narrow the slot list
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
)

// ParsePeriod parses a period name. Empty string means no filter.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "", PeriodMorning, PeriodAfternoon, PeriodEvening:
		return Period(s), nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// Range returns the fixed clock range of the period
func (p Period) Range() (Interval, bool) {
	switch p {
	case PeriodMorning:
		return Interval{Start: types.MustTimeString("00:00"), End: types.MustTimeString("12:00")}, true
	case PeriodAfternoon:
		return Interval{Start: types.MustTimeString("12:00"), End: types.MustTimeString("18:00")}, true
	case PeriodEvening:
		return Interval{Start: types.MustTimeString("18:00"), End: types.MustTimeString("24:00")}, true
	}
	return Interval{}, false
}

// Contains returns true if the slot start falls into the period.
// Periods never overlap: "12:00" belongs to afternoon only.
func (p Period) Contains(start types.TimeString) bool {
	r, ok := p.Range()
	if !ok {
		return true
	}
	return r.Contains(start)
}
