package domain

import (
	"fmt"
	"time"
)

// Scheduling runs on a single nominal clock: wall-clock values are pinned to
// time.Local as-is, with no zone conversion and no DST arithmetic.

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// Date is a calendar date in the business's local civil time.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate accepts only the strict YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return Date{}, NewValidationError("date must be YYYY-MM-DD")
	}
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}, nil
}

func (d Date) String() string {
	return d.At(Clock{}).Format(dateLayout)
}

// At pins a wall-clock time onto the calendar date.
func (d Date) At(c Clock) time.Time {
	return time.Date(d.Year, d.Month, d.Day, c.Hour, c.Minute, 0, 0, time.Local)
}

// Clock is a wall-clock time of day.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock accepts only the strict 24-hour HH:MM form. The length check is
// needed because time.Parse tolerates single-digit hours.
func ParseClock(s string) (Clock, error) {
	if len(s) != len(clockLayout) {
		return Clock{}, NewValidationError("time must be HH:MM (24-hour)")
	}
	t, err := time.ParseInLocation(clockLayout, s, time.Local)
	if err != nil {
		return Clock{}, NewValidationError("time must be HH:MM (24-hour)")
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c Clock) MinutesSinceMidnight() int {
	return c.Hour*60 + c.Minute
}

// ToInterval converts a booking request into its half-open time interval.
func ToInterval(d Date, c Clock, durationMinutes int) (time.Time, time.Time) {
	start := d.At(c)
	return start, start.Add(time.Duration(durationMinutes) * time.Minute)
}

// DayWindow returns the bounds for day-scoped listing queries: local midnight
// through one second before the next midnight. Listings apply the half-open
// overlap test against these bounds, so a booking spilling over either edge
// still belongs to the day.
func DayWindow(d Date) (time.Time, time.Time) {
	return d.At(Clock{}), time.Date(d.Year, d.Month, d.Day, 23, 59, 59, 0, time.Local)
}
