package scoring

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func fixedClock() func() time.Time {
	t := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func submission(idx *int, hint bool, secs float64) Submission {
	return Submission{
		QuestionID:    "1_upper_to_lower",
		PoemNumber:    1,
		QuestionText:  "秋の田の",
		CorrectAnswer: "わが衣手は",
		CorrectIndex:  2,
		AnswerIndex:   idx,
		TimeTaken:     secs,
		HintUsed:      hint,
	}
}

func TestCheckAnswer_ByIndex(t *testing.T) {
	v := NewValidator(WithClock(fixedClock()))

	for i := range 4 {
		res := v.CheckAnswer(submission(ptr(i), false, 3))
		if got, want := res.IsCorrect(), i == 2; got != want {
			t.Errorf("index %d: IsCorrect = %v, want %v", i, got, want)
		}
	}
}

func TestCheckAnswer_StatusPriority(t *testing.T) {
	tests := []struct {
		name string
		sub  Submission
		want Status
	}{
		{"timeout beats correct", func() Submission {
			s := submission(ptr(2), false, 30)
			s.TimeoutSeconds = ptr(30.0)
			return s
		}(), Timeout},
		{"under timeout", func() Submission {
			s := submission(ptr(2), false, 29.9)
			s.TimeoutSeconds = ptr(30.0)
			return s
		}(), Correct},
		{"skip", submission(nil, false, 4), Skipped},
		{"hinted correct", submission(ptr(2), true, 4), HintUsedCorrect},
		{"hinted wrong", submission(ptr(1), true, 4), Incorrect},
		{"index wins over text", func() Submission {
			s := submission(ptr(0), false, 4)
			s.UserAnswer = ptr("わが衣手は")
			return s
		}(), Incorrect},
		{"text fallback", func() Submission {
			s := submission(nil, false, 4)
			s.UserAnswer = ptr(" わが 衣手は。")
			return s
		}(), Correct},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator()
			res := v.CheckAnswer(tt.sub)
			if res.Status != tt.want {
				t.Errorf("Status = %q, want %q", res.Status, tt.want)
			}
		})
	}
}

func TestCheckAnswer_FailSoft(t *testing.T) {
	v := NewValidator()
	res := v.CheckAnswer(submission(ptr(2), false, math.NaN()))

	assert.Equal(t, Incorrect, res.Status)
	assert.Zero(t, res.TimeTaken)
	stats := v.Statistics()
	assert.Equal(t, 1, stats.TotalQuestions)
	assert.Equal(t, 1, stats.IncorrectAnswers)
}

func TestPoints(t *testing.T) {
	tests := []struct {
		status Status
		secs   float64
		want   float64
	}{
		{Correct, 0, 1.5},
		{Correct, 5, 1.0},
		{Correct, 10, 1.0},
		{Correct, 2.5, 1.25},
		{HintUsedCorrect, 0, 0.7},
		{HintUsedCorrect, 20, 0.7},
		{Skipped, 0, 0},
		{Incorrect, 0, 0},
		{Timeout, 0, 0},
	}
	for _, tt := range tests {
		got := AnswerResult{Status: tt.status, TimeTaken: tt.secs}.Points()
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Points(%s, %.1fs) = %v, want %v", tt.status, tt.secs, got, tt.want)
		}
	}
	assert.Equal(t, 1.5, AnswerResult{Status: Correct}.Points())
	assert.Equal(t, 1.0, AnswerResult{Status: Correct, TimeTaken: 5}.Points())
}

func TestGrade(t *testing.T) {
	tests := []struct {
		acc  float64
		want string
	}{
		{100, "S"}, {95.0, "S"}, {94.9, "A+"}, {90, "A+"}, {85, "A"},
		{80, "B+"}, {75, "B"}, {70, "C+"}, {65, "C"}, {60, "D"}, {59.9, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		if got := Grade(tt.acc); got != tt.want {
			t.Errorf("Grade(%v) = %q, want %q", tt.acc, got, tt.want)
		}
	}
}

func TestFiveQuestionSession(t *testing.T) {
	v := NewValidator(WithClock(fixedClock()))

	v.CheckAnswer(submission(ptr(2), false, 3))
	v.CheckAnswer(submission(ptr(2), false, 6))
	v.CheckAnswer(submission(ptr(2), false, 12))
	v.CheckAnswer(submission(ptr(2), true, 8))
	v.CheckAnswer(submission(nil, false, 20))

	stats := v.Statistics()
	assert.Equal(t, 5, stats.TotalQuestions)
	assert.Equal(t, 4, stats.CorrectAnswers)
	assert.Equal(t, 1, stats.SkippedAnswers)
	assert.Equal(t, 1, stats.HintUsedCount)
	assert.InDelta(t, 80.0, stats.Accuracy(), 1e-9)
	assert.Equal(t, "B+", stats.Grade())

	score := v.CurrentScore()
	assert.Equal(t, "B+", score.Grade)
	assert.InDelta(t, 1.2+1.0+1.0+0.7, score.TotalPoints, 1e-9)

	assert.Len(t, v.WrongAnswers(), 1)
	assert.Len(t, v.ResultsByStatus(HintUsedCorrect), 1)

	_, ok := v.Result("1_upper_to_lower")
	assert.True(t, ok)
	_, ok = v.Result("2_upper_to_lower")
	assert.False(t, ok)
}

func TestPerformanceAnalysis(t *testing.T) {
	v := NewValidator()
	for i, n := range []int{10, 60, 90} {
		s := submission(ptr(0), false, float64(4+i*8))
		s.PoemNumber = n
		if n == 10 {
			s.AnswerIndex = ptr(2)
		}
		v.CheckAnswer(s)
	}
	v.CheckAnswer(submission(nil, true, 0))

	a := v.PerformanceAnalysis()
	assert.Equal(t, "F", a.Grade)

	require.NotNil(t, a.Time)
	assert.Equal(t, 4.0, a.Time.Fastest)
	assert.Equal(t, 20.0, a.Time.Slowest)
	assert.InDelta(t, 12.0, a.Time.Average, 1e-9)
	assert.Equal(t, 1, a.Time.QuickAnswers)
	assert.Equal(t, 1, a.Time.SlowAnswers)

	require.Len(t, a.Buckets, 3)
	assert.Equal(t, 2, a.Buckets[0].Count)
	assert.InDelta(t, 50.0, a.Buckets[0].Accuracy, 1e-9)
	assert.Equal(t, 1, a.Buckets[1].Count)
	assert.Equal(t, 1, a.Buckets[2].Count)

	// Low accuracy and wrong answers. The overall average (9s) counts the
	// zero-time skip, one hint in four is not reliance, one skip in four is
	// under the threshold.
	require.Len(t, a.Suggestions, 2)
	assert.Contains(t, a.Suggestions[1], "3 poems")
}

func TestPerformanceAnalysis_NoTimes(t *testing.T) {
	v := NewValidator()
	v.CheckAnswer(submission(ptr(2), false, 0))
	a := v.PerformanceAnalysis()
	assert.Nil(t, a.Time)
	assert.Empty(t, a.Suggestions)
}

func TestReset(t *testing.T) {
	v := NewValidator(WithClock(fixedClock()))
	start := v.SessionStart()
	v.CheckAnswer(submission(ptr(2), false, 1))
	v.Reset()

	assert.Zero(t, v.Statistics().TotalQuestions)
	assert.True(t, v.SessionStart().After(start))
}

func TestAnswerResult_JSONRoundTrip(t *testing.T) {
	v := NewValidator(WithClock(fixedClock()))
	first := v.CheckAnswer(submission(ptr(2), false, 0))
	second := v.CheckAnswer(submission(nil, false, 3))

	data, err := json.Marshal([]AnswerResult{first, second})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"is_correct":true`)
	assert.Contains(t, string(data), `"points":1.5`)

	var back []AnswerResult
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 2)
	assert.Equal(t, first.QuestionID, back[0].QuestionID)
	assert.Equal(t, first.Status, back[0].Status)
	assert.Equal(t, first.Points(), back[0].Points())
	assert.True(t, back[0].Timestamp.Before(back[1].Timestamp))
	assert.Nil(t, back[1].AnswerIndex)
}

func TestExport(t *testing.T) {
	v := NewValidator(WithClock(fixedClock()))
	v.CheckAnswer(submission(ptr(2), false, 1))

	exp := v.Export("abc123")
	assert.Equal(t, "abc123", exp.SessionInfo.SessionID)
	assert.Equal(t, 1, exp.SessionInfo.TotalQuestions)
	assert.Greater(t, exp.SessionInfo.Duration, 0.0)
	assert.Equal(t, "S", exp.Summary.Grade)
	assert.Len(t, exp.Results, 1)

	empty := NewValidator().Export("")
	assert.NotNil(t, empty.Results)
}
