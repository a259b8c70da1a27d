package server

import (
	"github.com/abhisek/karuta/internal/quiz"
	"github.com/abhisek/karuta/internal/router"
	"github.com/abhisek/karuta/internal/scoring"
	"github.com/abhisek/karuta/internal/session"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type confirmationView struct {
	From    router.ScreenID `json:"from"`
	To      router.ScreenID `json:"to"`
	Message string          `json:"message"`
	Granted bool            `json:"granted"`
}

type sessionView struct {
	SessionID    string              `json:"session_id"`
	QuizID       string              `json:"quiz_id"`
	Screen       router.ScreenID     `json:"screen"`
	Defaults     session.Settings    `json:"defaults"`
	Progress     *session.Progress   `json:"progress,omitempty"`
	Confirmation *confirmationView   `json:"pending_confirmation,omitempty"`
	Answered     bool                `json:"answered"`
	History      []router.Transition `json:"history"`
}

// questionView is a question as the player sees it: no correct index and
// no explanation until answered.
type questionView struct {
	ID          string    `json:"id"`
	Number      int       `json:"number"`
	Total       int       `json:"total"`
	Type        quiz.Type `json:"quiz_type"`
	TypeLabel   string    `json:"quiz_type_label"`
	Instruction string    `json:"instruction"`
	Text        string    `json:"text"`
	Choices     []string  `json:"choices"`
	Hint        string    `json:"hint,omitempty"`
	TimeLimit   float64   `json:"time_limit,omitempty"`
	Answered    bool      `json:"answered"`
}

type answerView struct {
	Result       scoring.AnswerResult `json:"result"`
	CorrectIndex int                  `json:"correct_index"`
	Explanation  string               `json:"explanation,omitempty"`
	Progress     session.Progress     `json:"progress"`
}

type transitionView struct {
	OK           bool              `json:"ok"`
	Screen       router.ScreenID   `json:"screen"`
	Confirmation *confirmationView `json:"pending_confirmation,omitempty"`
	QuizID       string            `json:"quiz_id"`
}

type nextView struct {
	Completed bool            `json:"completed"`
	Screen    router.ScreenID `json:"screen"`
}

type confirmRequest struct {
	Accept bool `json:"accept"`
}

type navigateRequest struct {
	Screen string `json:"screen"`
	Force  bool   `json:"force"`
}

func pendingView(c *session.Controller) *confirmationView {
	p, ok := c.PendingConfirmation()
	if !ok {
		return nil
	}
	return &confirmationView{From: p.From, To: p.To, Message: p.Message, Granted: p.Granted}
}

func newSessionView(id string, c *session.Controller) sessionView {
	v := sessionView{
		SessionID:    id,
		QuizID:       c.ID(),
		Screen:       c.Screen(),
		Defaults:     c.Defaults(),
		Confirmation: pendingView(c),
		Answered:     c.Answered(),
		History:      c.Router().History(),
	}
	if p, err := c.Progress(); err == nil {
		v.Progress = &p
	}
	return v
}

func newQuestionView(c *session.Controller, q *quiz.Question) questionView {
	v := questionView{
		ID:          q.ID(),
		Type:        q.Type,
		TypeLabel:   q.Type.Label(),
		Instruction: q.Type.Instruction(),
		Text:        q.Text,
		Choices:     q.Choices,
		Hint:        c.Hint(),
		TimeLimit:   c.TimeLimit().Seconds(),
		Answered:    c.Answered(),
	}
	if p, err := c.Progress(); err == nil {
		v.Number = p.Current
		v.Total = p.Total
	}
	return v
}

func transition(c *session.Controller, ok bool) transitionView {
	return transitionView{
		OK:           ok,
		Screen:       c.Screen(),
		Confirmation: pendingView(c),
		QuizID:       c.ID(),
	}
}
