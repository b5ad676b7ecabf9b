package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCanceled  AppointmentStatus = "canceled"
	StatusNoShow    AppointmentStatus = "no_show"
	// StatusBlocked административная блокировка времени сотрудника, не является записью клиента
	StatusBlocked AppointmentStatus = "blocked"
)

// IsValid returns true for known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCanceled, StatusNoShow, StatusBlocked:
		return true
	}
	return false
}

// IsTerminal returns true if no transition out of the status is allowed
func (s AppointmentStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled: {StatusConfirmed, StatusCanceled, StatusNoShow},
	StatusConfirmed: {StatusCompleted, StatusCanceled, StatusNoShow},
}

// CanTransition returns true if the appointment may move from one status to another
func CanTransition(from, to AppointmentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Appointment represents a booked (or blocked) time range of an employee.
// Start and End are wall-clock times of the business timezone.
type Appointment struct {
	ID         int64
	BusinessID int64
	EmployeeID int64
	ServiceID  int64
	ClientID   *int64 // NULL для блокировок
	Start      time.Time
	End        time.Time
	Status     AppointmentStatus
	CanceledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns the half-open interval [Start, End)
func (a *Appointment) Range() TimeRange {
	return TimeRange{Start: a.Start, End: a.End}
}

// OccupiesTime returns true if the appointment blocks the employee's time.
// Everything except canceled occupies, blocked entries included.
func (a *Appointment) OccupiesTime() bool {
	return a.Status != StatusCanceled
}

// IsCanceled returns true if the appointment has been canceled
func (a *Appointment) IsCanceled() bool {
	return a.Status == StatusCanceled
}

// CanBeCanceled returns true if the appointment can be canceled
func (a *Appointment) CanBeCanceled() bool {
	return CanTransition(a.Status, StatusCanceled)
}

// IsOpen returns true for appointments counted against the simultaneous booking limit
func (a *Appointment) IsOpen() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// TimeRange half-open interval of wall-clock timestamps
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps returns true if the ranges intersect. Touching endpoints do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}
