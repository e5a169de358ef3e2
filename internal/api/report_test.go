package api

import (
	"mime"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queryshv/rad-report/internal/report"
)

const draftBody = `{
	"salutation": "ខ្ញុំបាទ",
	"hasSystemIssue": true,
	"laneNumber": ["Lane 3", "Lane 7"],
	"hasEquipmentIssue": false,
	"equipmentComments": "",
	"alarmLogs": [
		{"id": "b", "date": "2024-05-02"},
		{"id": "a", "date": "05-01-24", "operatorName": "typed"}
	]
}`

func TestPreviewReport(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/schedule", `{"05-01-24":"Sokha"}`).Code)

	w := env.do(t, http.MethodPost, "/api/report/preview", draftBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[previewResponse](t, w)

	assert.Contains(t, got.Text, "Lane 3, Lane 7")
	assert.Contains(t, got.Text, "01/05/2024 (ថ្ងៃពុធ) Sokha")
	assert.Contains(t, got.Text, "02/05/2024 (ថ្ងៃព្រហស្បតិ៍) "+report.UnknownOperator)
	assert.Less(t, strings.Index(got.Text, "01/05/2024"), strings.Index(got.Text, "02/05/2024"))
	assert.NotContains(t, got.Text, "typed", "operators come from the schedule")
	assert.False(t, got.Exportable)
	assert.Empty(t, got.Problems)
}

func TestPreviewReportProblems(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/report/preview", `{"hasSystemIssue":true,"hasEquipmentIssue":true,"alarmLogs":[]}`)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[previewResponse](t, w)
	assert.True(t, got.Exportable)
	require.Len(t, got.Problems, 2)
	assert.Equal(t, report.ProblemLanes, got.Problems[0].Message)
}

func TestPreviewReportInvalid(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/report/preview", `{"alarmLogs":[{"id":"a","date":"someday"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/report/preview", `{"hasSystemIssue":true,"laneNumber":["Lane 42"]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "laneNumber.0", decode[errorResponse](t, w).Errors[0].Path)
}

func TestDownloadReport(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/schedule", `{"05-01-24":"Sokha"}`).Code)

	w := env.do(t, http.MethodPost, "/api/report/download", draftBody)
	assert.Equal(t, http.StatusConflict, w.Code)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/schedule", `[{"date":"05-02-24","operator":"Dara"}]`).Code)
	w = env.do(t, http.MethodPost, "/api/report/download", draftBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))

	_, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "របាយការណ៍ប្រចាំថ្ងៃ-03-05-2024.txt", params["filename"])
	assert.True(t, strings.HasSuffix(w.Body.String(), "សូមអរគុណ!"))
	assert.Contains(t, w.Body.String(), "Dara")
}

func TestEmailReport(t *testing.T) {
	env := newTestEnv(t)
	complete := `{"draft":{"alarmLogs":[]},"to":"ops@example.org"}`

	w := env.do(t, http.MethodPost, "/api/report/email", complete)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = env.do(t, http.MethodPost, "/api/report/email", `{"draft":{"alarmLogs":[{"id":"a"}]},"to":"ops@example.org"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodPost, "/api/report/email", `{"draft":{"alarmLogs":[]},"to":" "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
