package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/queryshv/rad-report/internal/importer"
)

type cliEnv struct {
	dir string
}

func newCLIEnv(t *testing.T, driver string) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PORT", "")
	t.Setenv("RADREPORT_LOG_LEVEL", "error")
	t.Setenv("RADREPORT_LOG_FORMAT", "json")
	t.Setenv("RADREPORT_STORE_DRIVER", driver)
	t.Setenv("RADREPORT_STORE_PATH", filepath.Join(dir, "store", "schedule"))
	return &cliEnv{dir: dir}
}

func (e *cliEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func (e *cliEnv) write(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func rotaWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Date", "Operator", nil, "Date", "Operator"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"05/01/24", "Sokha", nil, "05/02/24", "Dara"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"05/03/24"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestImportExportRoundTrip(t *testing.T) {
	for _, driver := range []string{"file", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			env := newCLIEnv(t, driver)
			rota := env.write(t, "rota.xlsx", rotaWorkbook(t))

			out, _, err := env.run(t, "import", rota)
			require.NoError(t, err)
			assert.Contains(t, out, "Imported 2 entries (1 skipped)")

			out, _, err = env.run(t, "schedule", "get")
			require.NoError(t, err)
			assert.JSONEq(t, `{"05-01-24":"Sokha","05-02-24":"Dara"}`, out)

			target := filepath.Join(env.dir, "out.xlsx")
			_, _, err = env.run(t, "export", "-o", target)
			require.NoError(t, err)
			data, err := os.ReadFile(target)
			require.NoError(t, err)
			res, err := importer.ReadEntries("out.xlsx", data, nil)
			require.NoError(t, err)
			assert.Len(t, res.Entries, 2)

			out, _, err = env.run(t, "export", "--format", "pdf", "-o", "-")
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix([]byte(out), []byte("%PDF-")))
		})
	}
}

func TestImportEmptyWorkbook(t *testing.T) {
	env := newCLIEnv(t, "file")
	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	out, _, err := env.run(t, "import", env.write(t, "empty.xlsx", buf.Bytes()))
	require.NoError(t, err)
	assert.Contains(t, out, importer.NoEntriesMessage)
}

func TestExportUnknownFormat(t *testing.T) {
	env := newCLIEnv(t, "file")
	_, _, err := env.run(t, "export", "--format", "csv")
	assert.ErrorContains(t, err, "unknown format")
}

func TestCompose(t *testing.T) {
	env := newCLIEnv(t, "file")
	_, _, err := env.run(t, "import", env.write(t, "rota.xlsx", rotaWorkbook(t)))
	require.NoError(t, err)

	draft := env.write(t, "draft.json", []byte(`{
		"hasSystemIssue": true,
		"laneNumber": [],
		"alarmLogs": [{"id": "a", "date": "05-01-24"}, {"id": "b", "date": "05-09-24"}]
	}`))

	out, stderr, err := env.run(t, "compose", draft)
	require.NoError(t, err)
	assert.Contains(t, out, "01/05/2024 (ថ្ងៃពុធ) Sokha")
	assert.Contains(t, stderr, "laneNumber:")

	_, _, err = env.run(t, "compose", "--strict", draft)
	assert.Error(t, err)
}

func TestBadConfig(t *testing.T) {
	env := newCLIEnv(t, "mongodb")
	_, _, err := env.run(t, "schedule", "get")
	assert.ErrorContains(t, err, "store.driver")
}
