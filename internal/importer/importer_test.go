package importer

import (
	"testing"
	"time"

	"github.com/extrame/xls"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/queryshv/rad-report/internal/datekey"
	"github.com/queryshv/rad-report/internal/schedule"
)

func header() []Cell {
	return []Cell{TextCell("Date"), TextCell("Operator"), {}, TextCell("Date"), TextCell("Operator")}
}

func TestDateKey(t *testing.T) {
	tests := []struct {
		name    string
		cell    Cell
		want    string
		wantErr error
	}{
		{"serial", NumberCell("45413"), "05-01-24", nil},
		{"serial with time", NumberCell("45413.5"), "05-01-24", nil},
		{"zero padded slashes", TextCell("05/01/24"), "05-01-24", nil},
		{"short slashes", TextCell("5/1/24"), "05-01-24", nil},
		{"zero padded dashes", TextCell("05-01-24"), "05-01-24", nil},
		{"short dashes", TextCell("5-1-24"), "05-01-24", nil},
		{"iso", TextCell("2024-05-01"), "05-01-24", nil},
		{"two digit 69 is 2069", TextCell("1/1/69"), "01-01-69", nil},
		{"surrounding space", TextCell("  12/31/24 "), "12-31-24", nil},
		{"calendar invalid", TextCell("02/30/24"), "", ErrUnrecognizedDate},
		{"month out of range", TextCell("13/01/24"), "", ErrUnrecognizedDate},
		{"four digit year with slashes", TextCell("05/01/2024"), "", ErrUnrecognizedDate},
		{"words", TextCell("tomorrow"), "", ErrUnrecognizedDate},
		{"empty", Cell{}, "", ErrUnrecognizedDate},
		{"nan serial", NumberCell("NaN"), "", datekey.ErrOutOfRange},
		{"infinite serial", NumberCell("Inf"), "", datekey.ErrOutOfRange},
		{"huge serial", NumberCell("1e300"), "", datekey.ErrOutOfRange},
		{"negative serial", NumberCell("-5"), "", datekey.ErrOutOfRange},
		{"serial before 2000", NumberCell("36525"), "", datekey.ErrOutOfRange},
		{"serial after 2099", NumberCell("73051"), "", datekey.ErrOutOfRange},
		{"iso before 2000", TextCell("1999-05-01"), "", datekey.ErrOutOfRange},
		{"iso after 2099", TextCell("2100-05-01"), "", datekey.ErrOutOfRange},
		{"two digit 85 is 1985", TextCell("1/1/85"), "", datekey.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DateKey(tt.cell)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProjectSkipsOutOfRangeSerials(t *testing.T) {
	res := Project(Grid{
		header(),
		{NumberCell("NaN"), TextCell("A"), {}, NumberCell("-5"), TextCell("B")},
		{NumberCell("45413"), TextCell("Sokha")},
	})
	assert.Equal(t, []schedule.Entry{{Date: "05-01-24", Operator: "Sokha"}}, res.Entries)
	require.Len(t, res.Skipped, 2)
	assert.Contains(t, res.Skipped[0].Reason, "outside 2000-2099")
	assert.Equal(t, 4, res.Skipped[1].Column)
}

func TestParseTextCentury(t *testing.T) {
	got, ok := parseText("1/1/69")
	require.True(t, ok)
	assert.Equal(t, 2069, got.Year())

	got, ok = parseText("01/01/24")
	require.True(t, ok)
	assert.Equal(t, 2024, got.Year())

	got, ok = parseText("1950-06-01")
	require.True(t, ok)
	assert.Equal(t, 1950, got.Year(), "four-digit years are taken as written")
}

func TestProjectPairs(t *testing.T) {
	grid := Grid{
		header(),
		{NumberCell("45413"), TextCell("Sokha"), {}, TextCell("05/02/24"), TextCell("Dara")},
		{TextCell("5/3/24"), TextCell("Vanna")},
		{TextCell("05/04/24"), {}, {}, {}, TextCell("Orphan")},
		{TextCell("someday"), TextCell("Lost")},
		{},
		{{}, {}, {}, TextCell("2024-05-06"), TextCell("Chea")},
	}

	res := Project(grid)
	assert.Equal(t, []schedule.Entry{
		{Date: "05-01-24", Operator: "Sokha"},
		{Date: "05-02-24", Operator: "Dara"},
		{Date: "05-03-24", Operator: "Vanna"},
		{Date: "05-06-24", Operator: "Chea"},
	}, res.Entries)
	assert.False(t, res.Empty())

	require.Len(t, res.Skipped, 3)
	assert.Equal(t, Skip{Row: 4, Column: 1, Reason: "date or operator cell is empty"}, res.Skipped[0])
	assert.Equal(t, 4, res.Skipped[1].Column)
	assert.Equal(t, 5, res.Skipped[2].Row)
}

func TestProjectHeaderOnly(t *testing.T) {
	res := Project(Grid{header()})
	assert.True(t, res.Empty())
	assert.Empty(t, res.Skipped)

	res = Project(nil)
	assert.True(t, res.Empty())
}

func TestProjectEntriesPassValidation(t *testing.T) {
	grid := Grid{
		header(),
		{NumberCell("45413"), TextCell("Sokha"), {}, TextCell("5-2-24"), TextCell("Dara")},
	}
	assert.NoError(t, schedule.ValidateEntries(Project(grid).Entries))
}

func buildWorkbook(t *testing.T, rows map[string]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Date", "Operator", nil, "Date", "Operator"}))
	for cell, v := range rows {
		require.NoError(t, f.SetCellValue(sheet, cell, v))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadWorkbookXLSX(t *testing.T) {
	data := buildWorkbook(t, map[string]any{
		"A2": 45413,
		"B2": "Sokha",
		"D2": "05/02/24",
		"E2": "Dara",
		"A3": time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
		"B3": "វណ្ណា",
		"D3": "not a date",
		"E3": "Lost",
		"A4": "2024-05-04",
	})

	grid, err := ReadWorkbook("rota.xlsx", data)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(grid), 4)
	assert.Equal(t, Number, grid[1][0].Kind)
	assert.Equal(t, Text, grid[1][3].Kind)

	res := Project(grid)
	assert.Equal(t, []schedule.Entry{
		{Date: "05-01-24", Operator: "Sokha"},
		{Date: "05-02-24", Operator: "Dara"},
		{Date: "05-03-24", Operator: "វណ្ណា"},
	}, res.Entries)
	assert.Len(t, res.Skipped, 2)
}

func TestReadWorkbookHeaderOnly(t *testing.T) {
	grid, err := ReadWorkbook("empty.xlsx", buildWorkbook(t, nil))
	require.NoError(t, err)
	assert.True(t, Project(grid).Empty())
}

func TestReadWorkbookRejectsGarbage(t *testing.T) {
	_, err := ReadWorkbook("rota.xlsx", []byte("definitely not a zip"))
	assert.Error(t, err)

	_, err = ReadWorkbook("rota.xls", []byte("definitely not ole2"))
	assert.Error(t, err)
}

func TestReadEntriesLogsSkips(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	data := buildWorkbook(t, map[string]any{
		"A2": "05/01/24",
		"B2": "Sokha",
		"D2": "05/02/24",
	})

	res, err := ReadEntries("rota.xlsx", data, zap.New(core))
	require.NoError(t, err)
	assert.Len(t, res.Entries, 1)

	skipped := logs.FilterMessage("skipped schedule pair").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, int64(2), skipped[0].ContextMap()["row"])
	assert.Equal(t, 1, logs.FilterMessage("workbook read").Len())

	_, err = ReadEntries("rota.xlsx", []byte("junk"), nil)
	assert.ErrorContains(t, err, "rota.xlsx")
}

// xlsWorkbook returns a workbook with one cell style per format number.
func xlsWorkbook(formats ...uint16) *xls.WorkBook {
	wb := &xls.WorkBook{Formats: map[uint16]*xls.Format{}}
	for _, f := range formats {
		wb.Xfs = append(wb.Xfs, &xls.Xf8{Format: f})
		if f >= 164 {
			wb.Formats[f] = &xls.Format{}
		}
	}
	return wb
}

// intRK encodes n as an integer RK value.
func intRK(n uint32) xls.RK {
	return xls.RK(n<<2 | 2)
}

func TestXLSDateCells(t *testing.T) {
	const (
		general  = 0
		mdyy     = 14
		dmmmyy   = 15
		custom   = 170
		may1st24 = 45413
	)
	wb := xlsWorkbook(general, mdyy, dmmmyy, custom)
	cell := func(style uint16) string {
		rk := xls.XfRk{Index: style, Rk: intRK(may1st24)}
		return rk.String(wb)
	}

	require.Equal(t, "2024.05", cell(1), "built-in date formats render without the day")

	showFullDates(wb)
	for style := uint16(0); style < 4; style++ {
		c := xlsCell(cell(style))
		key, err := DateKey(c)
		require.NoError(t, err, "style %d rendered %q", style, cell(style))
		assert.Equal(t, "05-01-24", key, "style %d", style)
	}
	assert.Equal(t, Number, xlsCell(cell(0)).Kind)
	assert.Equal(t, Text, xlsCell(cell(1)).Kind)
}

func TestXLSShowFullDatesWithoutFormats(t *testing.T) {
	wb := &xls.WorkBook{}
	wb.Xfs = append(wb.Xfs, &xls.Xf5{Format: 22})
	showFullDates(wb)

	rk := xls.XfRk{Index: 0, Rk: intRK(45413)}
	assert.Equal(t, "2024-05-01T00:00:00Z", rk.String(wb))
}

func TestXLSCell(t *testing.T) {
	tests := []struct {
		in   string
		want Cell
	}{
		{"Sokha", Cell{Kind: Text, Value: "Sokha"}},
		{"  ", Cell{Kind: Empty}},
		{"", Cell{Kind: Empty}},
		{"45413", Cell{Kind: Number, Value: "45413"}},
		{"45413.5", Cell{Kind: Number, Value: "45413.5"}},
		{"2024-05-01T00:00:00Z", Cell{Kind: Text, Value: "2024-05-01"}},
		{"2024-05-01T18:30:00Z", Cell{Kind: Text, Value: "2024-05-01"}},
		{"05/02/24", Cell{Kind: Text, Value: "05/02/24"}},
		{"nan", Cell{Kind: Text, Value: "nan"}},
		{"inf", Cell{Kind: Text, Value: "inf"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, xlsCell(tt.in), "xlsCell(%q)", tt.in)
	}

	_, err := DateKey(xlsCell("nan"))
	assert.ErrorIs(t, err, ErrUnrecognizedDate)
	_, err = DateKey(xlsCell("2024.05"))
	assert.ErrorIs(t, err, datekey.ErrOutOfRange, "a month-only rendering never becomes a key")
}

func TestXLSRowMissing(t *testing.T) {
	assert.Nil(t, xlsRow(&xls.WorkSheet{}, 3))
}
