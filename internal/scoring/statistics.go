package scoring

import (
	"fmt"
	"slices"
)

// Statistics aggregates the answers of one session.
type Statistics struct {
	TotalQuestions   int            `json:"total_questions"`
	CorrectAnswers   int            `json:"correct_answers"`
	IncorrectAnswers int            `json:"incorrect_answers"`
	SkippedAnswers   int            `json:"skipped_answers"`
	TimeoutAnswers   int            `json:"timeout_answers"`
	HintUsedCount    int            `json:"hint_used_count"`
	TotalTime        float64        `json:"total_time"`
	TotalPoints      float64        `json:"total_points"`
	Results          []AnswerResult `json:"-"`
}

// record folds one result into the counters. A hinted answer increments
// HintUsedCount exactly once, whatever its status.
func (s *Statistics) record(r AnswerResult) {
	s.TotalQuestions++
	s.TotalTime += r.TimeTaken
	s.TotalPoints += r.Points()

	switch r.Status {
	case Correct, HintUsedCorrect:
		s.CorrectAnswers++
	case Incorrect:
		s.IncorrectAnswers++
	case Skipped:
		s.SkippedAnswers++
	case Timeout:
		s.TimeoutAnswers++
	}
	if r.HintUsed {
		s.HintUsedCount++
	}
	s.Results = append(s.Results, r)
}

// Accuracy returns the percentage of correct answers, 0 when empty.
func (s Statistics) Accuracy() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.TotalQuestions) * 100
}

// AverageTime returns seconds per answer, 0 when empty.
func (s Statistics) AverageTime() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return s.TotalTime / float64(s.TotalQuestions)
}

// AveragePoints returns points per answer, 0 when empty.
func (s Statistics) AveragePoints() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return s.TotalPoints / float64(s.TotalQuestions)
}

// Grade returns the letter grade for the current accuracy.
func (s Statistics) Grade() string {
	return Grade(s.Accuracy())
}

// WrongPoemNumbers lists the poems of every answer that was not correct,
// in answer order.
func (s Statistics) WrongPoemNumbers() []int {
	var out []int
	for _, r := range s.Results {
		if !r.IsCorrect() {
			out = append(out, r.PoemNumber)
		}
	}
	return out
}

var gradeThresholds = []struct {
	min   float64
	grade string
}{
	{95, "S"},
	{90, "A+"},
	{85, "A"},
	{80, "B+"},
	{75, "B"},
	{70, "C+"},
	{65, "C"},
	{60, "D"},
}

// Grade maps an accuracy percentage to a letter grade from S down to F.
func Grade(accuracy float64) string {
	for _, t := range gradeThresholds {
		if accuracy >= t.min {
			return t.grade
		}
	}
	return "F"
}

const (
	quickAnswerSeconds = 5.0
	slowAnswerSeconds  = 15.0
	slowAverageSeconds = 10.0
	lowAccuracy        = 70.0
	hintRelianceRatio  = 0.5
	skipRatio          = 0.3
)

// TimeAnalysis summarizes answer times. Only answers with a positive time
// are considered.
type TimeAnalysis struct {
	Fastest      float64 `json:"fastest_answer"`
	Slowest      float64 `json:"slowest_answer"`
	Average      float64 `json:"average_time"`
	QuickAnswers int     `json:"quick_answers"`
	SlowAnswers  int     `json:"slow_answers"`
}

// Bucket is the accuracy over a range of poem numbers.
type Bucket struct {
	Name     string  `json:"name"`
	From     int     `json:"from"`
	To       int     `json:"to"`
	Count    int     `json:"count"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// PerformanceAnalysis is the post-quiz report.
type PerformanceAnalysis struct {
	Grade       string        `json:"overall_grade"`
	Time        *TimeAnalysis `json:"time_performance,omitempty"`
	Buckets     []Bucket      `json:"difficulty_analysis"`
	Suggestions []string      `json:"improvement_suggestions"`
}

// Analyze builds a PerformanceAnalysis from the statistics.
func (s Statistics) Analyze() PerformanceAnalysis {
	return PerformanceAnalysis{
		Grade:       s.Grade(),
		Time:        s.timeAnalysis(),
		Buckets:     s.buckets(),
		Suggestions: s.suggestions(),
	}
}

func (s Statistics) timeAnalysis() *TimeAnalysis {
	var times []float64
	for _, r := range s.Results {
		if r.TimeTaken > 0 {
			times = append(times, r.TimeTaken)
		}
	}
	if len(times) == 0 {
		return nil
	}

	ta := &TimeAnalysis{
		Fastest: slices.Min(times),
		Slowest: slices.Max(times),
	}
	var sum float64
	for _, t := range times {
		sum += t
		if t <= quickAnswerSeconds {
			ta.QuickAnswers++
		}
		if t > slowAnswerSeconds {
			ta.SlowAnswers++
		}
	}
	ta.Average = sum / float64(len(times))
	return ta
}

func (s Statistics) buckets() []Bucket {
	buckets := []Bucket{
		{Name: "beginner", From: 1, To: 50},
		{Name: "intermediate", From: 51, To: 80},
		{Name: "advanced", From: 81, To: 100},
	}
	for _, r := range s.Results {
		var b *Bucket
		switch {
		case r.PoemNumber <= 50:
			b = &buckets[0]
		case r.PoemNumber <= 80:
			b = &buckets[1]
		default:
			b = &buckets[2]
		}
		b.Count++
		if r.IsCorrect() {
			b.Correct++
		}
	}
	for i := range buckets {
		if buckets[i].Count > 0 {
			buckets[i].Accuracy = float64(buckets[i].Correct) / float64(buckets[i].Count) * 100
		}
	}
	return buckets
}

func (s Statistics) suggestions() []string {
	out := []string{}
	n := float64(s.TotalQuestions)

	if s.Accuracy() < lowAccuracy {
		out = append(out, "Start again from the famous poems in the beginner set.")
	}
	if s.AverageTime() > slowAverageSeconds {
		out = append(out, "Practice memorizing the poems to answer faster.")
	}
	if float64(s.HintUsedCount) > n*hintRelianceRatio {
		out = append(out, "Try to work each question out before asking for a hint.")
	}
	if float64(s.SkippedAnswers) > n*skipRatio {
		out = append(out, "Take a guess even when you are not sure.")
	}
	if wrong := s.WrongPoemNumbers(); len(wrong) > 0 {
		out = append(out, fmt.Sprintf("Review the %d poems you missed.", len(wrong)))
	}
	return out
}
