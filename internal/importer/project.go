package importer

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/queryshv/rad-report/internal/datekey"
	"github.com/queryshv/rad-report/internal/schedule"
)

// pairColumns are the (date, operator) column pairs of each data row.
var pairColumns = [][2]int{{0, 1}, {3, 4}}

// textLayouts are tried in order for dates typed as text. twoDigit marks
// layouts whose year needs the 20xx correction.
var textLayouts = []struct {
	layout   string
	twoDigit bool
}{
	{"01/02/06", true},
	{"1/2/06", true},
	{"01-02-06", true},
	{"1-2-06", true},
	{"2006-01-02", false},
}

// ErrUnrecognizedDate is returned by DateKey for cells that hold no date.
var ErrUnrecognizedDate = errors.New("unrecognized date")

// Skip records a pair that had content but could not be imported.
type Skip struct {
	Row    int    // 1-based sheet row
	Column int    // 1-based column of the date cell
	Reason string
}

// Result is the outcome of projecting a sheet.
type Result struct {
	Entries []schedule.Entry
	Skipped []Skip
}

// Empty reports whether the sheet yielded nothing to import.
func (r Result) Empty() bool {
	return len(r.Entries) == 0
}

// Project reads entries from grid. Row 0 is a header. Each later row holds up
// to two independent pairs, in columns A-B and D-E. A pair is used only when
// both cells are filled and the date can be read; anything else is skipped.
func Project(grid Grid) Result {
	var res Result
	for r := 1; r < len(grid); r++ {
		row := grid[r]
		for _, pc := range pairColumns {
			dateCell, opCell := at(row, pc[0]), at(row, pc[1])
			if dateCell.Kind == Empty && opCell.Kind == Empty {
				continue
			}
			skip := Skip{Row: r + 1, Column: pc[0] + 1}
			if dateCell.Kind == Empty || opCell.Kind == Empty {
				skip.Reason = "date or operator cell is empty"
				res.Skipped = append(res.Skipped, skip)
				continue
			}
			key, err := DateKey(dateCell)
			if err != nil {
				skip.Reason = fmt.Sprintf("date %q: %v", dateCell.Value, err)
				res.Skipped = append(res.Skipped, skip)
				continue
			}
			res.Entries = append(res.Entries, schedule.Entry{Date: key, Operator: opCell.Value})
		}
	}
	return res
}

// DateKey converts a date cell to its MM-DD-YY key. Cells that hold no date
// return ErrUnrecognizedDate; days outside the years a key can name return
// datekey.ErrOutOfRange.
func DateKey(c Cell) (string, error) {
	var day time.Time
	switch c.Kind {
	case Number:
		serial, err := strconv.ParseFloat(c.Value, 64)
		if err != nil {
			return "", ErrUnrecognizedDate
		}
		if day, err = datekey.SerialDay(serial); err != nil {
			return "", err
		}
	case Text:
		t, ok := parseText(c.Value)
		if !ok {
			return "", ErrUnrecognizedDate
		}
		day = t
	default:
		return "", ErrUnrecognizedDate
	}
	if !datekey.Representable(day) {
		return "", datekey.ErrOutOfRange
	}
	return datekey.Format(day), nil
}

func parseText(s string) (time.Time, bool) {
	for _, tl := range textLayouts {
		t, err := time.Parse(tl.layout, s)
		if err != nil {
			continue
		}
		if tl.twoDigit && t.Year() < 1970 {
			t = t.AddDate(100, 0, 0)
		}
		return t, true
	}
	return time.Time{}, false
}
