package session

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/karuta/internal/quiz"
	"github.com/abhisek/karuta/internal/scoring"
)

// QuizSession is one play-through. Starting a new quiz replaces it.
type QuizSession struct {
	// Settings the quiz was started with.
	Settings Settings `json:"settings"`

	// CurrentIndex is the zero-based index of the question being shown.
	CurrentIndex int `json:"current_index"`

	// Score counts correct answers, hinted ones included.
	Score int `json:"score"`

	// Points is the sum of the answers' points.
	Points float64 `json:"points"`

	// Results holds one entry per judged question, in order.
	Results []QuestionResult `json:"results"`

	// WrongPoems lists the poems answered wrongly, each once.
	WrongPoems []int `json:"wrong_poems"`

	Completed   bool      `json:"completed"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at,omitzero"`
}

// QuestionResult pairs a question with its judged answer.
type QuestionResult struct {
	Index    int                  `json:"index"`
	Question *quiz.Question       `json:"-"`
	Type     quiz.Type            `json:"quiz_type"`
	Answer   scoring.AnswerResult `json:"answer"`
	Hint     string               `json:"hint,omitempty"`
}

func newQuizSession(s Settings, now time.Time) *QuizSession {
	return &QuizSession{
		Settings:   s,
		Results:    []QuestionResult{},
		WrongPoems: []int{},
		StartedAt:  now,
	}
}

func (q *QuizSession) record(r QuestionResult) {
	q.Results = append(q.Results, r)
	if r.Answer.IsCorrect() {
		q.Score++
	} else if !slices.Contains(q.WrongPoems, r.Answer.PoemNumber) {
		q.WrongPoems = append(q.WrongPoems, r.Answer.PoemNumber)
	}
	q.Points += r.Answer.Points()
}

// askedPoems returns the poem numbers already asked in this quiz.
func (q *QuizSession) askedPoems() []int {
	out := make([]int, 0, len(q.Results))
	for _, r := range q.Results {
		out = append(out, r.Answer.PoemNumber)
	}
	return out
}

// NewID returns a fresh session identity.
func NewID() string {
	return uuid.New().String()
}
