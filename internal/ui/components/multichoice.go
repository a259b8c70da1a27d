package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/karuta/internal/ui/theme"
)

// MultiChoice is a choice selector. Arrow keys move the cursor, enter picks
// the highlighted choice and the number keys pick directly.
type MultiChoice struct {
	Options      []string
	Selected     int
	Submitted    bool
	ChosenIndex  int
	CorrectIndex int
}

// NewMultiChoice creates a selector over options with nothing chosen.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{
		Options:      options,
		ChosenIndex:  -1,
		CorrectIndex: -1,
	}
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Options) {
				m.Selected = i
				m.Submitted = true
				m.ChosenIndex = i
			}
		}
	}

	return m, nil
}

// Reveal marks the correct choice once the answer has been judged.
func (m *MultiChoice) Reveal(correctIndex int) {
	m.Submitted = true
	m.CorrectIndex = correctIndex
}

// View renders the choices.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	style := lipgloss.NewStyle().Width(width)

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		switch {
		case m.Submitted && i == m.CorrectIndex:
			b.WriteString(style.Foreground(theme.Success).Bold(true).Render(line + "  ✓"))
		case m.Submitted && i == m.ChosenIndex:
			b.WriteString(style.Foreground(theme.Error).Bold(true).Render(line + "  ✗"))
		case m.Submitted:
			b.WriteString(style.Foreground(theme.TextDim).Render(line))
		case i == m.Selected:
			b.WriteString(style.Foreground(theme.Primary).Bold(true).Render(line))
		default:
			b.WriteString(style.Foreground(theme.Text).Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}
