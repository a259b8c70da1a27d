package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/karuta/internal/router"
	"github.com/abhisek/karuta/internal/screen"
	"github.com/abhisek/karuta/internal/screens/quiz"
	"github.com/abhisek/karuta/internal/screens/result"
	"github.com/abhisek/karuta/internal/screens/review"
	"github.com/abhisek/karuta/internal/screens/settings"
	"github.com/abhisek/karuta/internal/screens/start"
	"github.com/abhisek/karuta/internal/session"
	"github.com/abhisek/karuta/internal/ui/layout"
)

// factories build the view for each screen of the controller's router.
var factories = map[router.ScreenID]func(*session.Controller) screen.Screen{
	router.Start:    func(c *session.Controller) screen.Screen { return start.New(c) },
	router.Settings: func(c *session.Controller) screen.Screen { return settings.New(c) },
	router.Quiz:     func(c *session.Controller) screen.Screen { return quiz.New(c) },
	router.Result:   func(c *session.Controller) screen.Screen { return result.New(c) },
	router.Review:   func(c *session.Controller) screen.Screen { return review.New(c) },
}

// AppModel is the root Bubble Tea model. The controller's router decides
// which screen is active; the model rebuilds the view whenever it moves.
type AppModel struct {
	ctrl   *session.Controller
	navs   *int
	seen   int
	active screen.Screen
	init   tea.Cmd
	width  int
	height int
}

// New creates the root model for a controller.
func New(ctrl *session.Controller) AppModel {
	m := AppModel{ctrl: ctrl, navs: new(int)}
	navs := m.navs
	ctrl.Router().OnAfter(func(_, _ router.ScreenID) { *navs++ })
	m.init = m.sync()
	return m
}

// sync rebuilds the active screen after any completed transition, including
// re-entering the same screen. It returns the new screen's Init command.
// A screen's Init may itself navigate, e.g. when the quiz runs out of
// questions, so this repeats until the router settles.
func (m *AppModel) sync() tea.Cmd {
	var cmds []tea.Cmd
	for m.active == nil || m.seen != *m.navs {
		m.seen = *m.navs
		m.active = factories[m.ctrl.Screen()](m.ctrl)
		cmds = append(cmds, m.active.Init())
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Init() tea.Cmd {
	return m.init
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.active, cmd = m.active.Update(msg)
	return m, tea.Batch(cmd, m.sync())
}

func (m AppModel) headerStatus() string {
	p, err := m.ctrl.Progress()
	if err != nil {
		return ""
	}
	if layout.IsCompact(m.width) {
		return fmt.Sprintf("✓ %d/%d", p.Score, p.Answered)
	}
	return fmt.Sprintf("✓ %d/%d  %.1f pts", p.Score, p.Answered, p.Points)
}

func (m AppModel) footerHints() []layout.KeyHint {
	if kp, ok := m.active.(screen.KeyHintProvider); ok {
		return append(kp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Exit"})
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Exit"}}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	header := layout.RenderHeader(m.active.Title(), m.headerStatus(), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	content := m.active.View(m.width, layout.ContentHeight(header, footer, m.height))

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(ctrl *session.Controller) error {
	p := tea.NewProgram(New(ctrl))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
