package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentEngine/pkg/types"
)

var ErrInvalidShift = errors.New("invalid shift")

// Shift рабочая смена сотрудника в определённый день недели
type Shift struct {
	DayOfWeek  time.Weekday // 0 = воскресенье
	StartTime  types.TimeString
	EndTime    types.TimeString
	LunchStart *types.TimeString
	LunchEnd   *types.TimeString
}

// HasLunch returns true if both lunch bounds are set
func (s *Shift) HasLunch() bool {
	return s.LunchStart != nil && s.LunchEnd != nil && !s.LunchStart.IsZero() && !s.LunchEnd.IsZero()
}

// Validate checks start < end and start <= lunchStart < lunchEnd <= end
func (s *Shift) Validate() error {
	if s.DayOfWeek < time.Sunday || s.DayOfWeek > time.Saturday {
		return fmt.Errorf("%w: day of week %d", ErrInvalidShift, s.DayOfWeek)
	}
	if s.StartTime.IsZero() || s.EndTime.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidShift)
	}
	if !s.StartTime.IsBefore(s.EndTime) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidShift, s.StartTime, s.EndTime)
	}

	lunchStartSet := s.LunchStart != nil && !s.LunchStart.IsZero()
	lunchEndSet := s.LunchEnd != nil && !s.LunchEnd.IsZero()
	if lunchStartSet != lunchEndSet {
		return fmt.Errorf("%w: lunch needs both start and end", ErrInvalidShift)
	}
	if !lunchStartSet {
		return nil
	}

	if s.LunchStart.IsBefore(s.StartTime) ||
		!s.LunchStart.IsBefore(*s.LunchEnd) ||
		s.LunchEnd.IsAfter(s.EndTime) {
		return fmt.Errorf("%w: lunch %s-%s must lie inside %s-%s",
			ErrInvalidShift, s.LunchStart, s.LunchEnd, s.StartTime, s.EndTime)
	}
	return nil
}

// Employee сотрудник с расписанием и списком услуг
type Employee struct {
	ID         int64
	BusinessID int64
	Name       string
	Shifts     []Shift // не больше одной смены на день недели
	ServiceIDs []int64
}

// Validate checks every shift and that no weekday has two shifts
func (e *Employee) Validate() error {
	seen := make(map[time.Weekday]bool, len(e.Shifts))
	for i := range e.Shifts {
		sh := &e.Shifts[i]
		if err := sh.Validate(); err != nil {
			return fmt.Errorf("employee %d: %w", e.ID, err)
		}
		if seen[sh.DayOfWeek] {
			return fmt.Errorf("employee %d: %w: duplicate shift for %s", e.ID, ErrInvalidShift, sh.DayOfWeek)
		}
		seen[sh.DayOfWeek] = true
	}
	return nil
}

// ShiftFor returns the shift for the weekday, if any
func (e *Employee) ShiftFor(day time.Weekday) (*Shift, bool) {
	for i := range e.Shifts {
		if e.Shifts[i].DayOfWeek == day {
			return &e.Shifts[i], true
		}
	}
	return nil, false
}

// Performs returns true if the employee provides the service
func (e *Employee) Performs(serviceID int64) bool {
	for _, id := range e.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}
