// Package export renders the operator schedule as downloadable files.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/queryshv/rad-report/internal/schedule"
)

// File names and headers of the schedule export.
const (
	XLSXFileName = "operator_schedule_export.xlsx"
	PDFFileName  = "operator_schedule_export.pdf"
	SheetName    = "OperatorSchedule"
	HeaderDate   = "Date (MM-DD-YY)"
	HeaderOp     = "Operator"

	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	PDFContentType  = "application/pdf"
)

// XLSX renders entries as a two-column workbook: the header row followed by
// one row per entry, dates kept as their MM-DD-YY text.
func XLSX(entries []schedule.Entry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &[]any{HeaderDate, HeaderOp}); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, "A1", "B1", bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "A", "A", 18); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "B", "B", 32); err != nil {
		return nil, err
	}

	for i, e := range entries {
		row := i + 2
		if err := f.SetCellStr(SheetName, fmt.Sprintf("A%d", row), e.Date); err != nil {
			return nil, err
		}
		if err := f.SetCellStr(SheetName, fmt.Sprintf("B%d", row), e.Operator); err != nil {
			return nil, err
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
