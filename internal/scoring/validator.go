package scoring

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"
	"time"
)

// ErrInvalidTiming is reported when a submission carries an unusable time.
var ErrInvalidTiming = errors.New("invalid answer time")

// Submission is everything needed to judge one answer. A nil UserAnswer and
// a nil AnswerIndex together mean the question was skipped.
type Submission struct {
	QuestionID     string
	PoemNumber     int
	QuestionText   string
	CorrectAnswer  string
	CorrectIndex   int
	UserAnswer     *string
	AnswerIndex    *int
	TimeTaken      float64
	HintUsed       bool
	TimeoutSeconds *float64
}

// Score is a snapshot of the running score.
type Score struct {
	TotalQuestions int     `json:"total_questions"`
	CorrectAnswers int     `json:"correct_answers"`
	Accuracy       float64 `json:"accuracy"`
	TotalPoints    float64 `json:"total_points"`
	AveragePoints  float64 `json:"average_points"`
	Grade          string  `json:"grade"`
}

// Validator judges answers and keeps the session's statistics.
// It is not safe for concurrent use.
type Validator struct {
	stats        Statistics
	sessionStart time.Time
	now          func() time.Time
	logger       *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) { v.logger = l }
}

// NewValidator returns a Validator with empty statistics.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		v.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	v.sessionStart = v.now()
	return v
}

// CheckAnswer judges a submission, records it and returns the result.
// It never fails: an internal fault produces an Incorrect result instead.
func (v *Validator) CheckAnswer(s Submission) AnswerResult {
	res := AnswerResult{
		QuestionID:    s.QuestionID,
		PoemNumber:    s.PoemNumber,
		QuestionText:  s.QuestionText,
		CorrectAnswer: s.CorrectAnswer,
		CorrectIndex:  s.CorrectIndex,
		UserAnswer:    s.UserAnswer,
		AnswerIndex:   s.AnswerIndex,
		TimeTaken:     s.TimeTaken,
		HintUsed:      s.HintUsed,
		Timestamp:     v.now(),
	}

	status, err := v.judge(s)
	if err != nil {
		v.logger.Warn("answer judged as incorrect after internal error",
			"question_id", s.QuestionID, "error", err)
		status = Incorrect
		if !validTime(res.TimeTaken) {
			res.TimeTaken = 0
		}
	}
	res.Status = status

	v.stats.record(res)
	return res
}

// judge picks the status in priority order: timeout, skip, then correctness.
func (v *Validator) judge(s Submission) (status Status, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("judge answer: %v", r)
		}
	}()

	if !validTime(s.TimeTaken) {
		return "", fmt.Errorf("%w: %v", ErrInvalidTiming, s.TimeTaken)
	}
	if s.TimeoutSeconds != nil && *s.TimeoutSeconds > 0 && s.TimeTaken >= *s.TimeoutSeconds {
		return Timeout, nil
	}
	if s.UserAnswer == nil && s.AnswerIndex == nil {
		return Skipped, nil
	}

	var correct bool
	if s.AnswerIndex != nil {
		correct = *s.AnswerIndex == s.CorrectIndex
	} else {
		correct = MatchText(*s.UserAnswer, s.CorrectAnswer)
	}

	switch {
	case correct && s.HintUsed:
		return HintUsedCorrect, nil
	case correct:
		return Correct, nil
	}
	return Incorrect, nil
}

func validTime(t float64) bool {
	return t >= 0 && !math.IsNaN(t) && !math.IsInf(t, 0)
}

// Statistics returns a copy of the running statistics.
func (v *Validator) Statistics() Statistics {
	s := v.stats
	s.Results = slices.Clone(v.stats.Results)
	return s
}

// CurrentScore returns the running score snapshot.
func (v *Validator) CurrentScore() Score {
	return Score{
		TotalQuestions: v.stats.TotalQuestions,
		CorrectAnswers: v.stats.CorrectAnswers,
		Accuracy:       v.stats.Accuracy(),
		TotalPoints:    v.stats.TotalPoints,
		AveragePoints:  v.stats.AveragePoints(),
		Grade:          v.stats.Grade(),
	}
}

// Result returns the recorded result for a question id.
func (v *Validator) Result(questionID string) (AnswerResult, bool) {
	for _, r := range v.stats.Results {
		if r.QuestionID == questionID {
			return r, true
		}
	}
	return AnswerResult{}, false
}

// ResultsByStatus returns the results with the given status.
func (v *Validator) ResultsByStatus(status Status) []AnswerResult {
	var out []AnswerResult
	for _, r := range v.stats.Results {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// WrongAnswers returns every result that was not correct.
func (v *Validator) WrongAnswers() []AnswerResult {
	var out []AnswerResult
	for _, r := range v.stats.Results {
		if !r.IsCorrect() {
			out = append(out, r)
		}
	}
	return out
}

// PerformanceAnalysis analyzes the answers so far.
func (v *Validator) PerformanceAnalysis() PerformanceAnalysis {
	return v.stats.Analyze()
}

// Reset clears the statistics and restarts the session clock.
func (v *Validator) Reset() {
	v.stats = Statistics{}
	v.sessionStart = v.now()
}

// SessionStart returns when the statistics were last reset.
func (v *Validator) SessionStart() time.Time {
	return v.sessionStart
}
