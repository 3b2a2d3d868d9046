package types

import (
	"fmt"
	"time"
)

// DateLayout is the day/month/year text form used in rows and input.
const DateLayout = "02/01/2006"

// Date is a calendar day with no time-of-day or zone.
type Date struct {
	t time.Time
}

// NewDate returns the Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses day/month/year text. The text must be exactly ten
// characters long.
func ParseDate(s string) (Date, error) {
	if len(s) != len(DateLayout) {
		return Date{}, fmt.Errorf("date %q: expected dd/mm/yyyy", s)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// String formats the date as dd/mm/yyyy.
func (d Date) String() string { return d.t.Format(DateLayout) }

// ISO formats the date as yyyy-mm-dd.
func (d Date) ISO() string { return d.t.Format(time.DateOnly) }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// After reports whether d is strictly after o.
func (d Date) After(o Date) bool { return d.t.After(o.t) }

// DaysUntil returns the whole number of days from d to o; negative when o is
// earlier. Both values are UTC midnights, so the count is exact for any
// pair of years.
func (d Date) DaysUntil(o Date) int {
	return int((o.t.Unix() - d.t.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// Within reports whether d lies in [from, to], inclusive at both ends.
func (d Date) Within(from, to Date) bool {
	return !d.Before(from) && !d.After(to)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
