package settings

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/karuta/internal/poem"
	"github.com/abhisek/karuta/internal/quiz"
	"github.com/abhisek/karuta/internal/router"
	"github.com/abhisek/karuta/internal/screen"
	"github.com/abhisek/karuta/internal/session"
	"github.com/abhisek/karuta/internal/ui/components"
	"github.com/abhisek/karuta/internal/ui/layout"
	"github.com/abhisek/karuta/internal/ui/theme"
)

var (
	modes         = append([]quiz.Type{quiz.Mixed}, quiz.AllTypes...)
	questionSteps = []int{5, 10, 20, 30, 50, 100}
	timeSteps     = []int{0, 10, 15, 20, 30, 60}
)

type field int

const (
	fieldMode field = iota
	fieldDifficulty
	fieldQuestions
	fieldHints
	fieldExplanations
	fieldTimeLimit
	fieldSave
	fieldCount
)

// SettingsScreen edits the default quiz settings.
type SettingsScreen struct {
	ctrl   *session.Controller
	draft  session.Settings
	cursor field
	errMsg string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates the settings screen editing a copy of the current defaults.
func New(ctrl *session.Controller) *SettingsScreen {
	return &SettingsScreen{ctrl: ctrl, draft: ctrl.Defaults()}
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j", "tab":
		if s.cursor < fieldCount-1 {
			s.cursor++
		}
	case "left", "h":
		s.change(-1)
	case "right", "l", "space":
		s.change(1)
	case "enter":
		s.save()
	case "esc":
		s.leave()
	}
	return s, nil
}

func (s *SettingsScreen) change(delta int) {
	s.errMsg = ""
	switch s.cursor {
	case fieldMode:
		s.draft.Mode = step(modes, s.draft.Mode, delta)
	case fieldDifficulty:
		s.draft.Difficulty = step(poem.AllDifficulties, s.draft.Difficulty, delta)
	case fieldQuestions:
		s.draft.TotalQuestions = step(questionSteps, s.draft.TotalQuestions, delta)
	case fieldHints:
		s.draft.EnableHints = !s.draft.EnableHints
	case fieldExplanations:
		s.draft.ShowExplanations = !s.draft.ShowExplanations
	case fieldTimeLimit:
		s.draft.TimeLimitSeconds = step(timeSteps, s.draft.TimeLimitSeconds, delta)
	}
}

// step moves cur by delta within values, wrapping around. A value not in
// the list moves to the first element.
func step[T comparable](values []T, cur T, delta int) T {
	i := slices.Index(values, cur)
	if i < 0 {
		return values[0]
	}
	n := len(values)
	return values[((i+delta)%n+n)%n]
}

func (s *SettingsScreen) save() {
	if err := s.ctrl.SetDefaults(s.draft); err != nil {
		s.errMsg = err.Error()
		return
	}
	s.leave()
}

func (s *SettingsScreen) leave() {
	if !s.ctrl.Back() {
		s.ctrl.Navigate(router.Start, true)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (s *SettingsScreen) View(width, height int) string {
	limit := "none"
	if s.draft.TimeLimitSeconds > 0 {
		limit = fmt.Sprintf("%d seconds", s.draft.TimeLimitSeconds)
	}
	rows := []struct {
		label string
		value string
	}{
		{"Quiz type", s.draft.Mode.Label()},
		{"Difficulty", s.draft.Difficulty.Label()},
		{"Questions", fmt.Sprintf("%d", s.draft.TotalQuestions)},
		{"Hints", onOff(s.draft.EnableHints)},
		{"Explanations", onOff(s.draft.ShowExplanations)},
		{"Time limit", limit},
	}

	var b strings.Builder
	for i, r := range rows {
		line := fmt.Sprintf("%-14s ◂ %s ▸", r.label, r.value)
		if field(i) == s.cursor {
			b.WriteString(theme.Selected.Render("▸ " + line))
		} else {
			b.WriteString(theme.Unselected.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if s.cursor == fieldSave {
		b.WriteString(theme.Selected.Render("▸ Save"))
	} else {
		b.WriteString(theme.Unselected.Render("  Save"))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	}

	cw := components.ContentWidth(width)
	return components.Center(components.Card(b.String(), cw), width, height)
}
