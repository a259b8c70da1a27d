package session

import (
	"time"

	"github.com/abhisek/karuta/internal/router"
	"github.com/abhisek/karuta/internal/scoring"
)

// Results is the end-of-quiz report.
type Results struct {
	SessionID   string                      `json:"session_id"`
	Settings    Settings                    `json:"settings"`
	Score       scoring.Score               `json:"score"`
	Statistics  scoring.Statistics          `json:"statistics"`
	Analysis    scoring.PerformanceAnalysis `json:"analysis"`
	Questions   []QuestionResult            `json:"questions"`
	WrongPoems  []int                       `json:"wrong_poems"`
	Completed   bool                        `json:"completed"`
	StartedAt   time.Time                   `json:"started_at"`
	CompletedAt time.Time                   `json:"completed_at,omitzero"`
	Duration    float64                     `json:"duration"`
}

// Results reports on the active quiz, finished or not.
func (c *Controller) Results() (Results, error) {
	if c.quiz == nil {
		return Results{}, ErrNoQuiz
	}
	q := c.quiz
	end := q.CompletedAt
	if !q.Completed {
		end = c.now()
	}
	return Results{
		SessionID:   c.id,
		Settings:    q.Settings,
		Score:       c.validator.CurrentScore(),
		Statistics:  c.validator.Statistics(),
		Analysis:    c.validator.PerformanceAnalysis(),
		Questions:   q.Results,
		WrongPoems:  q.WrongPoems,
		Completed:   q.Completed,
		StartedAt:   q.StartedAt,
		CompletedAt: q.CompletedAt,
		Duration:    end.Sub(q.StartedAt).Seconds(),
	}, nil
}

// WrongAnswers returns the judged questions that were not answered
// correctly, in order.
func (c *Controller) WrongAnswers() []QuestionResult {
	if c.quiz == nil {
		return nil
	}
	var out []QuestionResult
	for _, r := range c.quiz.Results {
		if !r.Answer.IsCorrect() {
			out = append(out, r)
		}
	}
	return out
}

// Export snapshots every recorded answer for JSON or spreadsheet output.
func (c *Controller) Export() scoring.Export {
	return c.validator.Export(c.id)
}

// Validate checks the controller's internal consistency and returns a
// description of each problem found.
func (c *Controller) Validate() []string {
	var problems []string
	if c.id == "" {
		problems = append(problems, "session id is empty")
	}
	if _, ok := c.router.State(c.router.Current()); !ok {
		problems = append(problems, "current screen has no state")
	}
	if c.quiz == nil {
		if c.router.Current() == router.Quiz {
			problems = append(problems, "quiz screen active without a quiz")
		}
		return problems
	}

	q := c.quiz
	if q.CurrentIndex < 0 || q.CurrentIndex > q.Settings.TotalQuestions {
		problems = append(problems, "current index out of range")
	}
	if len(q.Results) > q.Settings.TotalQuestions {
		problems = append(problems, "more results than questions")
	}
	if q.Score > len(q.Results) {
		problems = append(problems, "score exceeds answered questions")
	}
	stats := c.validator.Statistics()
	if stats.TotalQuestions != len(q.Results) {
		problems = append(problems, "statistics disagree with recorded results")
	}
	if stats.CorrectAnswers != q.Score {
		problems = append(problems, "statistics disagree with score")
	}
	if q.Completed && q.CompletedAt.IsZero() {
		problems = append(problems, "completed quiz has no completion time")
	}
	return problems
}
