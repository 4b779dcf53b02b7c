package schengen

import (
	"fmt"
	"time"
)

// =============================================================================
// DAY - UTC-midnight calendar day (the only time granularity in this system)
// =============================================================================

// Day is a single calendar day, normalized to UTC midnight. All compliance
// arithmetic operates on Days, never on raw time.Time values, so time-of-day
// and timezone drift can never change a day count.
type Day struct {
	t time.Time
}

const dayLayout = "2006-01-02"

// Constructors
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime normalizes an arbitrary time.Time to its UTC calendar day.
func FromTime(t time.Time) Day {
	u := t.UTC()
	return NewDay(u.Year(), u.Month(), u.Day())
}

// ParseDay parses an ISO-8601 "YYYY-MM-DD" string. An empty or malformed
// string is an error, never a zero-day result: a parse failure must not
// masquerade as "no travel".
func ParseDay(s string) (Day, error) {
	if s == "" {
		return Day{}, &DateParseError{Raw: s, Reason: "empty date string"}
	}
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, &DateParseError{Raw: s, Reason: err.Error()}
	}
	return FromTime(t), nil
}

// MustDay is a test/fixture helper; panics on malformed input.
func MustDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(fmt.Sprintf("schengen: MustDay(%q): %v", s, err))
	}
	return d
}

// Today returns the current UTC calendar day. Callers pinning determinism
// (exports, tests) must pass an explicit reference date instead.
func Today() Day {
	return FromTime(time.Now())
}

// Comparison
func (d Day) Before(other Day) bool        { return d.t.Before(other.t) }
func (d Day) After(other Day) bool         { return d.t.After(other.t) }
func (d Day) Equal(other Day) bool         { return d.t.Equal(other.t) }
func (d Day) BeforeOrEqual(other Day) bool { return !d.t.After(other.t) }
func (d Day) AfterOrEqual(other Day) bool  { return !d.t.Before(other.t) }
func (d Day) IsZero() bool                 { return d.t.IsZero() }

// Arithmetic
func (d Day) AddDays(n int) Day { return Day{t: d.t.AddDate(0, 0, n)} }

// Properties
func (d Day) Year() int         { return d.t.Year() }
func (d Day) Month() time.Month { return d.t.Month() }
func (d Day) Day() int          { return d.t.Day() }
func (d Day) Time() time.Time   { return d.t }

func (d Day) String() string { return d.t.Format(dayLayout) }

// MarshalText/UnmarshalText make Day serialize as "YYYY-MM-DD" in JSON
// and usable as a map key.
func (d Day) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Day) UnmarshalText(b []byte) error {
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysBetween returns the signed number of calendar days from 'from' to 'to'.
func DaysBetween(from, to Day) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

// =============================================================================
// DAY RANGE - Inclusive [Start, End] span of calendar days
// =============================================================================

// DayRange is an inclusive span of calendar days. The rolling window and the
// vector engine's evaluation range are both DayRanges.
type DayRange struct {
	Start Day
	End   Day
}

// Contains reports whether d falls within [Start, End].
func (r DayRange) Contains(d Day) bool {
	return d.AfterOrEqual(r.Start) && d.BeforeOrEqual(r.End)
}

// Len returns the number of days in the range (both endpoints inclusive).
func (r DayRange) Len() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return DaysBetween(r.Start, r.End) + 1
}

// Days enumerates every day in the range in order.
func (r DayRange) Days() []Day {
	var days []Day
	for cur := r.Start; cur.BeforeOrEqual(r.End); cur = cur.AddDays(1) {
		days = append(days, cur)
	}
	return days
}

func (r DayRange) String() string {
	return "[" + r.Start.String() + ", " + r.End.String() + "]"
}

// MonthRange returns the inclusive range covering a calendar month.
func MonthRange(year int, month time.Month) DayRange {
	start := NewDay(year, month, 1)
	return DayRange{Start: start, End: start.AddDays(daysInMonth(year, month) - 1)}
}

// YearRange returns the inclusive range covering a calendar year.
func YearRange(year int) DayRange {
	return DayRange{
		Start: NewDay(year, time.January, 1),
		End:   NewDay(year, time.December, 31),
	}
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1).Day()
}
