package start

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/karuta/internal/poem/poemtest"
	"github.com/abhisek/karuta/internal/router"
	"github.com/abhisek/karuta/internal/session"
)

func newTestScreen() (*StartScreen, *session.Controller) {
	c := session.NewController(poemtest.Repository(100))
	return New(c), c
}

func TestStartScreen_View(t *testing.T) {
	s, _ := newTestScreen()
	view := s.View(80, 24)
	for _, want := range []string{"Start quiz", "Settings", "Quit", "100 poems loaded"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestStartScreen_StartQuiz(t *testing.T) {
	s, c := newTestScreen()
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if c.Screen() != router.Quiz {
		t.Errorf("Screen = %q, want %q", c.Screen(), router.Quiz)
	}
	if c.Quiz() == nil {
		t.Error("expected a quiz to be started")
	}
}

func TestStartScreen_Settings(t *testing.T) {
	s, c := newTestScreen()
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if c.Screen() != router.Settings {
		t.Errorf("Screen = %q, want %q", c.Screen(), router.Settings)
	}
}

func TestStartScreen_Quit(t *testing.T) {
	s, _ := newTestScreen()
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd() = %T, want tea.QuitMsg", cmd())
	}
}
