package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/karuta/internal/scoring"
	"github.com/abhisek/karuta/internal/session"
	"github.com/abhisek/karuta/internal/ui/components"
	"github.com/abhisek/karuta/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.confirming {
		return s.renderConfirm(width, height)
	}
	if s.question == nil {
		msg := "Preparing question..."
		if s.errMsg != "" {
			msg = s.errMsg
		}
		return components.Center(theme.Dim.Render(msg), width, height)
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(s.renderInfoLine(cw))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n\n")

	b.WriteString(theme.Subtitle.Width(cw).Render(s.question.Type.Instruction()))
	b.WriteString("\n")
	b.WriteString(components.ReadingCard(s.question.Text, cw))
	b.WriteString("\n\n")

	b.WriteString(s.choices.View(cw))

	if s.typing {
		b.WriteString("\n")
		b.WriteString(s.input.View())
		b.WriteString("\n")
	}

	if hint := s.ctrl.Hint(); hint != "" && s.result == nil {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Hint: " + hint))
		b.WriteString("\n")
	}

	if s.result != nil {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(cw))
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
}

func (s *QuizScreen) renderInfoLine(cw int) string {
	p, _ := s.ctrl.Progress()

	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("Q %d/%d", p.Current, p.Total))

	right := lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("✓ %d", p.Score))
	if limit := s.ctrl.TimeLimit(); limit > 0 && s.result == nil {
		remaining := max(limit-s.ctrl.QuestionElapsed(), 0)
		style := lipgloss.NewStyle().Foreground(theme.Accent)
		if remaining.Seconds() <= 5 {
			style = theme.Incorrect
		}
		right += "   " + style.Render(fmt.Sprintf("⏱ %ds", int(remaining.Seconds()+0.999)))
	}

	gap := max(cw-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (s *QuizScreen) renderFeedback(cw int) string {
	r := s.result
	var status string
	switch r.Status {
	case scoring.Correct, scoring.HintUsedCorrect:
		status = theme.Correct.Render(fmt.Sprintf("%s  +%.1f", r.Status.Label(), r.Points()))
	case scoring.Skipped, scoring.Timeout:
		status = theme.Warning.Render(r.Status.Label())
	default:
		status = theme.Incorrect.Render(r.Status.Label())
	}

	var b strings.Builder
	b.WriteString(status)
	b.WriteString("\n")
	if !r.IsCorrect() {
		b.WriteString(theme.Body.Render("Answer: " + r.CorrectAnswer))
		b.WriteString("\n")
	}

	if q := s.ctrl.Quiz(); q != nil && q.Settings.ShowExplanations {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw).Render(s.question.Explanation))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *QuizScreen) renderConfirm(width, height int) string {
	content := theme.Warning.Render(session.InterruptMessage) + "\n\n" +
		theme.Dim.Render("[Y] quit quiz   [N] keep going")
	return components.Center(components.Card(content, components.ContentWidth(width)), width, height)
}
