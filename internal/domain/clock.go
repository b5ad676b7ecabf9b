package domain

import "time"

// WallClock converts an instant into the wall-clock time of loc, carried in time.UTC.
// The engine compares only such values, so shifts, holidays and appointments
// stay in business local time regardless of server timezone.
func WallClock(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), time.UTC)
}

// DateOf truncates a wall-clock time to midnight
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses "YYYY-MM-DD" into a wall-clock midnight
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.UTC)
}

// FormatEnd formats the end of a range as "HH:MM", using "24:00" for a range ending at the next midnight
func FormatEnd(start, end time.Time) string {
	if end.After(start) && DateOf(end).After(DateOf(start)) && end.Equal(DateOf(end)) {
		return "24:00"
	}
	return end.Format(TimeFormat)
}
