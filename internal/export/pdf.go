package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/queryshv/rad-report/internal/schedule"
)

// PDFOptions controls the schedule PDF.
type PDFOptions struct {
	// FontPath is a UTF-8 TrueType font. Without one the core Arial font is
	// used and characters outside cp1252 render as '?'.
	FontPath string
	Title    string
}

const (
	pdfRowHeight  = 7.0
	pdfDateWidth  = 45.0
	pdfOpWidth    = 130.0
	pdfPageBottom = 280.0
)

// PDF renders entries as a bordered two-column table on A4 portrait pages,
// repeating the header on every page.
func PDF(entries []schedule.Entry, opts PDFOptions) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(false, 15)

	family := "Arial"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if opts.FontPath != "" {
		family = "schedule"
		pdf.AddUTF8Font(family, "", opts.FontPath)
		pdf.AddUTF8Font(family, "B", opts.FontPath)
		tr = func(s string) string { return s }
	}

	title := opts.Title
	if title == "" {
		title = "Operator Schedule"
	}

	header := func() {
		pdf.SetFont(family, "B", 10)
		pdf.SetFillColor(220, 220, 220)
		pdf.CellFormat(pdfDateWidth, pdfRowHeight, tr(HeaderDate), "1", 0, "L", true, 0, "")
		pdf.CellFormat(pdfOpWidth, pdfRowHeight, tr(HeaderOp), "1", 1, "L", true, 0, "")
		pdf.SetFont(family, "", 10)
		pdf.SetFillColor(255, 255, 255)
	}

	pdf.AddPage()
	pdf.SetFont(family, "B", 14)
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	header()

	for _, e := range entries {
		if pdf.GetY()+pdfRowHeight > pdfPageBottom {
			pdf.AddPage()
			header()
		}
		pdf.CellFormat(pdfDateWidth, pdfRowHeight, tr(e.Date), "1", 0, "L", false, 0, "")
		pdf.CellFormat(pdfOpWidth, pdfRowHeight, tr(e.Operator), "1", 1, "L", false, 0, "")
	}

	if len(entries) == 0 {
		pdf.SetFont(family, "", 10)
		pdf.CellFormat(pdfDateWidth+pdfOpWidth, pdfRowHeight, tr("No schedule entries"), "1", 1, "C", false, 0, "")
	}

	if pdf.Err() {
		return nil, fmt.Errorf("render pdf: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
