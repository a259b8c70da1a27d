package review

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/karuta/internal/router"
	"github.com/abhisek/karuta/internal/screen"
	"github.com/abhisek/karuta/internal/session"
	"github.com/abhisek/karuta/internal/ui/components"
	"github.com/abhisek/karuta/internal/ui/layout"
	"github.com/abhisek/karuta/internal/ui/theme"
)

// ReviewScreen steps through the answered questions, the missed ones by
// default, with their explanations.
type ReviewScreen struct {
	ctrl    *session.Controller
	items   []session.QuestionResult
	showAll bool
	index   int
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New creates the review screen.
func New(ctrl *session.Controller) *ReviewScreen {
	s := &ReviewScreen{ctrl: ctrl}
	s.reload()
	return s
}

func (s *ReviewScreen) reload() {
	s.index = 0
	if s.showAll {
		if q := s.ctrl.Quiz(); q != nil {
			s.items = q.Results
		}
		return
	}
	s.items = s.ctrl.WrongAnswers()
}

func (s *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (s *ReviewScreen) Title() string {
	return "Review"
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	filter := "All answers"
	if s.showAll {
		filter = "Missed only"
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Prev/Next"},
		{Key: "A", Description: filter},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "up", "h", "k":
		if s.index > 0 {
			s.index--
		}
	case "right", "down", "l", "j", "space":
		if s.index < len(s.items)-1 {
			s.index++
		}
	case "a", "A":
		s.showAll = !s.showAll
		s.reload()
	case "esc", "backspace", "q":
		if !s.ctrl.Back() {
			s.ctrl.Navigate(router.Result, false)
		}
	}
	return s, nil
}

func (s *ReviewScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if len(s.items) == 0 {
		msg := "No missed questions. Well done!"
		if s.showAll {
			msg = "No answers recorded."
		}
		return components.Center(components.Card(theme.Correct.Render(msg), cw), width, height)
	}

	item := s.items[s.index]
	ans := item.Answer

	var b strings.Builder
	b.WriteString(theme.Dim.Render(fmt.Sprintf("%d / %d   Question %d   %s",
		s.index+1, len(s.items), item.Index+1, item.Type.Label())))
	b.WriteString("\n\n")
	b.WriteString(components.ReadingCard(ans.QuestionText, cw))
	b.WriteString("\n\n")

	given := "(no answer)"
	switch {
	case ans.UserAnswer != nil:
		given = *ans.UserAnswer
	case ans.AnswerIndex != nil && item.Question != nil && *ans.AnswerIndex < len(item.Question.Choices):
		given = item.Question.Choices[*ans.AnswerIndex]
	}

	status := theme.Incorrect
	if ans.IsCorrect() {
		status = theme.Correct
	}
	b.WriteString(status.Render(ans.Status.Label()))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render("Your answer:    " + given))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render("Correct answer: " + ans.CorrectAnswer))
	b.WriteString("\n")
	if item.Hint != "" {
		b.WriteString(theme.Hint.Render("Hint used: " + item.Hint))
		b.WriteString("\n")
	}

	if item.Question != nil {
		b.WriteString("\n")
		b.WriteString(theme.Dim.Width(cw).Render(item.Question.Explanation))
	}

	return components.Center(b.String(), width, height)
}
