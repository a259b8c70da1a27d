package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/karuta/internal/scoring"
)

func sampleExport(t *testing.T) scoring.Export {
	t.Helper()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	v := scoring.NewValidator(scoring.WithClock(func() time.Time { return now }))

	right := 2
	v.CheckAnswer(scoring.Submission{
		QuestionID: "1_upper_to_lower", PoemNumber: 1,
		QuestionText: "上の句その1", CorrectAnswer: "下の句その1", CorrectIndex: 2,
		AnswerIndex: &right, TimeTaken: 3,
	})
	text := "下の句その9"
	v.CheckAnswer(scoring.Submission{
		QuestionID: "61_upper_to_lower", PoemNumber: 61,
		QuestionText: "上の句その61", CorrectAnswer: "下の句その61", CorrectIndex: 0,
		UserAnswer: &text, TimeTaken: 8,
	})
	return v.Export("abc-123")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(".XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	f, err = ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, "application/json", f.ContentType())

	_, err = ParseFormat("csv")
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleExport(t)))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	info := doc["session_info"].(map[string]any)
	assert.Equal(t, "abc-123", info["session_id"])
	assert.Len(t, doc["detailed_results"], 2)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, sampleExport(t)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, AnswersSheet}, f.GetSheetList())

	id, err := f.GetCellValue(SummarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "abc-123", id)

	grade, err := f.GetCellValue(SummarySheet, "B8")
	require.NoError(t, err)
	assert.Equal(t, "F", grade)

	rows, err := f.GetRows(AnswersSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, answerHeaders, rows[0])
	assert.Equal(t, "1_upper_to_lower", rows[1][0])
	assert.Equal(t, "choice 3", rows[1][4])
	assert.Equal(t, "下の句その9", rows[2][4])
	assert.Equal(t, scoring.Incorrect.Label(), rows[2][5])
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, Format("pdf"), scoring.Export{}))
}
