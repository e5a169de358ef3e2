package datekey

import (
	"math"
	"time"
)

// serialEpoch is day 0 of spreadsheet serial numbering. It sits two days
// before 1900-01-01: one for 1-based counting and one for the phantom
// 1900-02-29 the format inherited. Serials before 61 land a day early.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// Serials of the first day of MinYear and of the year after MaxYear.
var (
	minSerial = ToSerial(time.Date(MinYear, 1, 1, 0, 0, 0, 0, time.UTC))
	endSerial = ToSerial(time.Date(MaxYear+1, 1, 1, 0, 0, 0, 0, time.UTC))
)

// FromSerial converts a spreadsheet day serial to a calendar day. Any time
// of day carried in the fraction is dropped.
func FromSerial(serial float64) time.Time {
	return serialEpoch.AddDate(0, 0, int(math.Floor(serial)))
}

// SerialDay is FromSerial for values read from a file. NaN, infinities and
// serials of days outside MinYear..MaxYear return ErrOutOfRange.
func SerialDay(serial float64) (time.Time, error) {
	if math.IsNaN(serial) || serial < minSerial || serial >= endSerial {
		return time.Time{}, ErrOutOfRange
	}
	return FromSerial(serial), nil
}

// ToSerial converts the calendar day of t to a spreadsheet day serial.
func ToSerial(t time.Time) float64 {
	return math.Round(Day(t).Sub(serialEpoch).Hours() / 24.0)
}
