// Package report writes session exports as JSON documents or spreadsheets.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/karuta/internal/scoring"
)

const (
	SummarySheet = "Summary"
	AnswersSheet = "Answers"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "json" or "xlsx".
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(s, "."))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/json"
}

// Write encodes exp to w in the given format.
func Write(w io.Writer, f Format, exp scoring.Export) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, exp)
	case FormatXLSX:
		return WriteXLSX(w, exp)
	}
	return fmt.Errorf("unknown export format %q", f)
}

// WriteJSON writes exp as indented JSON.
func WriteJSON(w io.Writer, exp scoring.Export) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(exp); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

var answerHeaders = []string{
	"Question ID", "Poem No.", "Question", "Correct Answer", "Your Answer",
	"Status", "Time (s)", "Hint", "Points", "Answered At",
}

// WriteXLSX writes exp as a workbook with a Summary and an Answers sheet.
func WriteXLSX(w io.Writer, exp scoring.Export) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	if err := writeSummary(f, exp); err != nil {
		return err
	}

	index, err := f.NewSheet(AnswersSheet)
	if err != nil {
		return fmt.Errorf("create answers sheet: %w", err)
	}
	if err := writeAnswers(f, exp.Results); err != nil {
		return err
	}
	f.SetActiveSheet(index)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, exp scoring.Export) error {
	rows := [][]any{
		{"Session ID", exp.SessionInfo.SessionID},
		{"Started", exp.SessionInfo.StartTime.Format("2006-01-02 15:04:05")},
		{"Duration (s)", round(exp.SessionInfo.Duration)},
		{"Questions", exp.SessionInfo.TotalQuestions},
		{"Accuracy (%)", round(exp.Summary.Accuracy)},
		{"Average Time (s)", round(exp.Summary.AverageTime)},
		{"Total Points", round(exp.Summary.TotalPoints)},
		{"Grade", exp.Summary.Grade},
	}
	for _, b := range exp.Analysis.Buckets {
		rows = append(rows, []any{fmt.Sprintf("Poems %d-%d", b.From, b.To), fmt.Sprintf("%d/%d", b.Correct, b.Count)})
	}
	for i, s := range exp.Analysis.Suggestions {
		rows = append(rows, []any{fmt.Sprintf("Suggestion %d", i+1), s})
	}

	for rowIndex, row := range rows {
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+1)
			if err := f.SetCellValue(SummarySheet, cell, value); err != nil {
				return fmt.Errorf("write summary cell %s: %w", cell, err)
			}
		}
	}
	return f.SetColWidth(SummarySheet, "A", "B", 24)
}

func writeAnswers(f *excelize.File, results []scoring.AnswerResult) error {
	for i, header := range answerHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(AnswersSheet, cell, header); err != nil {
			return fmt.Errorf("write header %s: %w", cell, err)
		}
	}
	for rowIndex, r := range results {
		for colIndex, value := range answerRow(r) {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			if err := f.SetCellValue(AnswersSheet, cell, value); err != nil {
				return fmt.Errorf("write answer cell %s: %w", cell, err)
			}
		}
	}
	return f.SetColWidth(AnswersSheet, "C", "E", 40)
}

func answerRow(r scoring.AnswerResult) []any {
	var given string
	switch {
	case r.UserAnswer != nil:
		given = *r.UserAnswer
	case r.AnswerIndex != nil:
		given = fmt.Sprintf("choice %d", *r.AnswerIndex+1)
	}
	hint := "no"
	if r.HintUsed {
		hint = "yes"
	}
	return []any{
		r.QuestionID,
		r.PoemNumber,
		r.QuestionText,
		r.CorrectAnswer,
		given,
		r.Status.Label(),
		round(r.TimeTaken),
		hint,
		round(r.Points()),
		r.Timestamp.Format("2006-01-02 15:04:05"),
	}
}

func round(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
