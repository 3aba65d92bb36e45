package domain

import (
	"fmt"
	"regexp"
	"time"
)

// dateLayout is the textual form of a Date.
const dateLayout = "2006-01-02"

// datePattern finds YYYY-MM-DD candidates inside note identifiers.
var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// Date is a naive calendar day without time zone.
// It is comparable and can be used as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// FindDate returns the last valid YYYY-MM-DD occurring in s.
func FindDate(s string) (Date, bool) {
	matches := datePattern.FindAllString(s, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		if d, err := ParseDate(matches[i]); err == nil {
			return d, true
		}
	}
	return Date{}, false
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// In returns midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.In(time.UTC).AddDate(0, 0, n))
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// String returns the YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
