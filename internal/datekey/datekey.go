// Package datekey encodes calendar days as the MM-DD-YY keys used by the
// operator schedule.
//
// Dates are civil dates: every function returns a time.Time at midnight UTC
// and reads only the year, month and day of its input.
package datekey

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

// Layout is the time layout of a date-key.
const Layout = "01-02-06"

// MinYear and MaxYear bound the years a date-key can name.
const (
	MinYear = 2000
	MaxYear = 2099
)

var (
	// ErrInvalidFormat is returned for keys that do not match MM-DD-YY.
	ErrInvalidFormat = errors.New("datekey: date must be in MM-DD-YY format")
	// ErrInvalidDay is returned for well-formed keys naming a day that does
	// not exist, such as 02-30-24.
	ErrInvalidDay = errors.New("datekey: date is not a valid calendar day")
	// ErrOutOfRange is returned for days outside MinYear..MaxYear.
	ErrOutOfRange = errors.New("datekey: date is outside 2000-2099")
)

var keyPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])-(\d{2})$`)

// Day normalizes t to midnight UTC of its own calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Representable reports whether the year of t can be written as a key.
func Representable(t time.Time) bool {
	return t.Year() >= MinYear && t.Year() <= MaxYear
}

// Format returns the MM-DD-YY key for the calendar day of t.
func Format(t time.Time) string {
	return Day(t).Format(Layout)
}

// Parse returns the calendar day named by key. The two-digit year is
// always read as 2000+YY.
func Parse(key string) (time.Time, error) {
	m := keyPattern.FindStringSubmatch(key)
	if m == nil {
		return time.Time{}, ErrInvalidFormat
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	yy, _ := strconv.Atoi(m[3])

	t := time.Date(2000+yy, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (02-30 becomes 03-01); reject that.
	if t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, ErrInvalidDay
	}
	return t, nil
}

// Validate reports whether key is a well-formed date-key for a real day.
func Validate(key string) error {
	_, err := Parse(key)
	return err
}

// Less orders keys by the day they name. Keys that do not parse sort after
// every valid key, lexicographically among themselves.
func Less(a, b string) bool {
	ta, errA := Parse(a)
	tb, errB := Parse(b)
	switch {
	case errA == nil && errB == nil:
		if ta.Equal(tb) {
			return a < b
		}
		return ta.Before(tb)
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
