package domain

import (
	"fmt"
	"time"
)

// BusinessSettings booking policy of a business (tenant).
// Managed outside the engine, read fresh for every computation.
type BusinessSettings struct {
	BusinessID                 int64
	Timezone                   string // IANA, пусто = UTC
	BookingTimeIntervalMinutes int    // 0 = DefaultBookingTimeIntervalMinutes
	BookingFutureLimitDays     int    // 0 = без ограничения
	BookingSimultaneousLimit   int    // 0 = без ограничения
	BookingCancelMinHours      int    // 0 = отмена в любой момент
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// DefaultSettings returns the policy used when a business has no settings row
func DefaultSettings(businessID int64) *BusinessSettings {
	return &BusinessSettings{
		BusinessID:                 businessID,
		BookingTimeIntervalMinutes: DefaultBookingTimeIntervalMinutes,
	}
}

// Interval returns the slot granularity in minutes
func (s *BusinessSettings) Interval() int {
	if s.BookingTimeIntervalMinutes <= 0 {
		return DefaultBookingTimeIntervalMinutes
	}
	return s.BookingTimeIntervalMinutes
}

// HasFutureLimit returns true if there's a limit on how far in advance bookings can be made
func (s *BusinessSettings) HasFutureLimit() bool {
	return s.BookingFutureLimitDays > 0
}

// HasSimultaneousLimit returns true if the number of open bookings per client is limited
func (s *BusinessSettings) HasSimultaneousLimit() bool {
	return s.BookingSimultaneousLimit > 0
}

// Location loads the business timezone
func (s *BusinessSettings) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// Validate checks configured values against business bounds
func (s *BusinessSettings) Validate() error {
	if s.BookingTimeIntervalMinutes < 0 || s.BookingTimeIntervalMinutes > MaxBookingTimeIntervalMinutes {
		return fmt.Errorf("booking time interval must be in 0..%d minutes", MaxBookingTimeIntervalMinutes)
	}
	if s.BookingFutureLimitDays < 0 || s.BookingFutureLimitDays > MaxBookingFutureLimitDays {
		return fmt.Errorf("booking future limit must be in 0..%d days", MaxBookingFutureLimitDays)
	}
	if s.BookingSimultaneousLimit < 0 {
		return fmt.Errorf("booking simultaneous limit must not be negative")
	}
	if s.BookingCancelMinHours < 0 || s.BookingCancelMinHours > MaxBookingCancelMinHours {
		return fmt.Errorf("booking cancel min hours must be in 0..%d", MaxBookingCancelMinHours)
	}
	return nil
}
