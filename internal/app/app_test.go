package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/karuta/internal/poem/poemtest"
	"github.com/abhisek/karuta/internal/router"
	"github.com/abhisek/karuta/internal/screens/quiz"
	"github.com/abhisek/karuta/internal/screens/start"
	"github.com/abhisek/karuta/internal/session"
)

func newTestModel() (AppModel, *session.Controller) {
	c := session.NewController(poemtest.Repository(100))
	m := New(c)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(AppModel), c
}

func TestAppModel_StartsOnStartScreen(t *testing.T) {
	m, _ := newTestModel()
	if _, ok := m.active.(*start.StartScreen); !ok {
		t.Errorf("active = %T, want *start.StartScreen", m.active)
	}
	m.View()
}

func TestAppModel_SwitchesScreens(t *testing.T) {
	m, c := newTestModel()

	next, _ := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m = next.(AppModel)

	if c.Screen() != router.Quiz {
		t.Fatalf("Screen = %q, want %q", c.Screen(), router.Quiz)
	}
	if _, ok := m.active.(*quiz.QuizScreen); !ok {
		t.Errorf("active = %T, want *quiz.QuizScreen", m.active)
	}
	if !strings.Contains(m.headerStatus(), "0/0") {
		t.Errorf("headerStatus() = %q, want running score", m.headerStatus())
	}
}

func TestAppModel_CtrlC(t *testing.T) {
	m, _ := newTestModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd() = %T, want tea.QuitMsg", cmd())
	}
}

func TestAppModel_CompactHeaderDropsPoints(t *testing.T) {
	m, _ := newTestModel()
	next, _ := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m = next.(AppModel)

	if !strings.Contains(m.headerStatus(), "pts") {
		t.Errorf("headerStatus() at width 100 = %q, want points", m.headerStatus())
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = next.(AppModel)
	if got := m.headerStatus(); strings.Contains(got, "pts") || !strings.Contains(got, "0/0") {
		t.Errorf("headerStatus() at width 80 = %q, want score without points", got)
	}
}
