package importer

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// maxXLSRows bounds how many rows are read from a legacy .xls sheet.
const maxXLSRows = 100000

// ReadWorkbook reads the first sheet of an .xlsx or .xls file. The format is
// chosen by the file name's extension; anything other than .xls is opened as
// an Office Open XML workbook.
func ReadWorkbook(filename string, data []byte) (Grid, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		return readXLS(data)
	default:
		return readXLSX(data)
	}
}

// fullDateFormat is a user-defined format index no workbook assigns itself.
// The xls reader renders cells styled with a user-defined date format as
// RFC 3339 timestamps, while built-in date formats lose the day.
const fullDateFormat uint16 = 0xFFFF

// showFullDates restyles every built-in date format of wb as fullDateFormat
// so date cells keep their day when read.
func showFullDates(wb *xls.WorkBook) {
	if wb.Formats == nil {
		wb.Formats = make(map[uint16]*xls.Format)
	}
	wb.Formats[fullDateFormat] = &xls.Format{}
	for _, xf := range wb.Xfs {
		switch x := xf.(type) {
		case *xls.Xf8:
			if builtinDateFormat(x.Format) {
				x.Format = fullDateFormat
			}
		case *xls.Xf5:
			if builtinDateFormat(x.Format) {
				x.Format = fullDateFormat
			}
		}
	}
}

// builtinDateFormat reports whether n is one of the built-in BIFF date
// formats, including the CJK ones.
func builtinDateFormat(n uint16) bool {
	return 14 <= n && n <= 17 || n == 22 || 27 <= n && n <= 36 || 50 <= n && n <= 58
}

// xlsCell classifies a cell string as rendered by the xls reader.
func xlsCell(v string) Cell {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return TextCell(t.UTC().Format("2006-01-02"))
	}
	if isNumber(v) {
		return NumberCell(v)
	}
	return TextCell(v)
}

// xlsRow returns row r of sheet, or nil when the sheet has no such row.
func xlsRow(sheet *xls.WorkSheet, r int) (row *xls.Row) {
	// WorkSheet.Row dereferences the missing row before returning it.
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(r)
}

func readXLS(data []byte) (Grid, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	showFullDates(wb)
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("no worksheet found")
	}

	n := int(sheet.MaxRow) + 1
	if n > maxXLSRows {
		n = maxXLSRows
	}
	grid := make(Grid, n)
	for r := 0; r < n; r++ {
		row := xlsRow(sheet, r)
		if row == nil {
			continue
		}
		cells := make([]Cell, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			cells[c] = xlsCell(row.Col(c))
		}
		grid[r] = cells
	}
	return grid, nil
}
