package export

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/queryshv/rad-report/internal/importer"
	"github.com/queryshv/rad-report/internal/schedule"
)

func TestXLSX(t *testing.T) {
	entries := schedule.Record{"05-02-24": "Dara", "05-01-24": "សុខា"}.Entries()

	data, err := XLSX(entries)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Date (MM-DD-YY)", "Operator"},
		{"05-01-24", "សុខា"},
		{"05-02-24", "Dara"},
	}, rows)
}

func TestXLSXReimportsToSameRecord(t *testing.T) {
	rec := schedule.Record{"05-01-24": "A", "12-31-24": "B", "01-01-25": "C"}
	data, err := XLSX(rec.Entries())
	require.NoError(t, err)

	grid, err := importer.ReadWorkbook(XLSXFileName, data)
	require.NoError(t, err)
	res := importer.Project(grid)

	got := schedule.Record{}
	for _, e := range res.Entries {
		got[e.Date] = e.Operator
	}
	assert.Equal(t, rec, got)
}

func TestXLSXEmpty(t *testing.T) {
	data, err := XLSX(nil)
	require.NoError(t, err)

	grid, err := importer.ReadWorkbook(XLSXFileName, data)
	require.NoError(t, err)
	assert.True(t, importer.Project(grid).Empty())
}

func TestPDF(t *testing.T) {
	var entries []schedule.Entry
	for i := 1; i <= 60; i++ {
		entries = append(entries, schedule.Entry{Date: fmt.Sprintf("05-%02d-24", i%28+1), Operator: "Operator"})
	}

	data, err := PDF(entries, PDFOptions{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	empty, err := PDF(nil, PDFOptions{Title: "Empty"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(empty, []byte("%PDF-")))
}

func TestPDFMissingFont(t *testing.T) {
	_, err := PDF(nil, PDFOptions{FontPath: "/nonexistent/font.ttf"})
	assert.Error(t, err)
}
