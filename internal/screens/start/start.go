package start

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

const banner = `╭──────────────╮
│  百 人 一 首  │
╰──────────────╯`

// StartScreen is the title screen with the main menu.
type StartScreen struct {
	ctrl   *session.Controller
	menu   components.Menu
	errMsg string
}

var _ screen.Screen = (*StartScreen)(nil)
var _ screen.KeyHintProvider = (*StartScreen)(nil)

// New creates the start screen.
func New(ctrl *session.Controller) *StartScreen {
	s := &StartScreen{ctrl: ctrl}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Start quiz", Detail: describe(ctrl.Defaults()), Action: s.startQuiz},
		{Label: "Settings", Action: s.openSettings},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return s
}

func describe(st session.Settings) string {
	parts := []string{
		st.Mode.Label(),
		st.Difficulty.Label(),
		fmt.Sprintf("%d questions", st.TotalQuestions),
	}
	if st.TimeLimitSeconds > 0 {
		parts = append(parts, fmt.Sprintf("%ds each", st.TimeLimitSeconds))
	}
	return strings.Join(parts, " · ")
}

func (s *StartScreen) startQuiz() tea.Cmd {
	if err := s.ctrl.StartNewQuiz(nil); err != nil {
		s.errMsg = err.Error()
	}
	return nil
}

func (s *StartScreen) openSettings() tea.Cmd {
	s.ctrl.Navigate(router.Settings, false)
	return nil
}

func (s *StartScreen) Init() tea.Cmd {
	return nil
}

func (s *StartScreen) Title() string {
	return ""
}

func (s *StartScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *StartScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *StartScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(banner))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("One hundred poets, one poem each · %d poems loaded", s.ctrl.Repository().Len())))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	}

	return components.Center(b.String(), width, height)
}
