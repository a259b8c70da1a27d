package result

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/karuta/internal/router"
	"github.com/abhisek/karuta/internal/screen"
	"github.com/abhisek/karuta/internal/session"
	"github.com/abhisek/karuta/internal/ui/components"
	"github.com/abhisek/karuta/internal/ui/layout"
	"github.com/abhisek/karuta/internal/ui/theme"
)

// ResultScreen shows the score and analysis of the finished quiz.
type ResultScreen struct {
	ctrl    *session.Controller
	results session.Results
	err     error
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates the result screen, snapshotting the controller's results.
func New(ctrl *session.Controller) *ResultScreen {
	res, err := ctrl.Results()
	return &ResultScreen{ctrl: ctrl, results: res, err: err}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Results"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Review"},
		{Key: "N", Description: "Play again"},
		{Key: "Enter", Description: "Menu"},
		{Key: "Q", Description: "Quit"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "r", "R":
		s.ctrl.Navigate(router.Review, false)
	case "n", "N":
		if err := s.ctrl.StartNewQuiz(nil); err != nil {
			s.err = err
		}
	case "enter", "esc":
		s.ctrl.RestartQuiz()
	case "q", "Q":
		return s, tea.Quit
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	if s.err != nil {
		return components.Center(theme.Incorrect.Render(s.err.Error()), width, height)
	}

	r := s.results
	cw := components.ContentWidth(width)
	var b strings.Builder

	grade := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(r.Score.Grade)
	b.WriteString(theme.Title.Render("Grade ") + grade)
	b.WriteString("\n\n")

	acc := components.NewProgressBar("Accuracy", r.Score.Accuracy/100, cw-8)
	acc.Caption = fmt.Sprintf("%d/%d  %.0f%%", r.Score.CorrectAnswers, r.Score.TotalQuestions, r.Score.Accuracy)
	b.WriteString(acc.View())
	b.WriteString("\n\n")

	st := r.Statistics
	b.WriteString(theme.Body.Render(fmt.Sprintf(
		"Points %.1f   Avg time %.1fs   Hints %d   Skipped %d   Timeouts %d",
		st.TotalPoints, st.AverageTime(), st.HintUsedCount, st.SkippedAnswers, st.TimeoutAnswers,
	)))
	b.WriteString("\n\n")

	for _, bucket := range r.Analysis.Buckets {
		if bucket.Count == 0 {
			continue
		}
		bar := components.NewProgressBar(fmt.Sprintf("No. %3d-%-3d", bucket.From, bucket.To), bucket.Accuracy/100, cw-8)
		bar.Caption = fmt.Sprintf("%d/%d", bucket.Correct, bucket.Count)
		b.WriteString(bar.View())
		b.WriteString("\n")
	}

	if len(r.Analysis.Suggestions) > 0 {
		b.WriteString("\n")
		for _, sug := range r.Analysis.Suggestions {
			b.WriteString(theme.Hint.Width(cw - 4).Render("• " + sug))
			b.WriteString("\n")
		}
	}

	return components.Center(components.Card(b.String(), cw), width, height)
}
