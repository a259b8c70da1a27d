package review

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/karuta/internal/poem/poemtest"
	"github.com/abhisek/karuta/internal/router"
	"github.com/abhisek/karuta/internal/session"
)

// playedController answers the first question correctly and the rest wrong,
// then opens the review screen.
func playedController(t *testing.T, n int) *session.Controller {
	t.Helper()
	c := session.NewController(poemtest.Repository(100))
	st := session.DefaultSettings()
	st.TotalQuestions = n
	if err := c.StartNewQuiz(&st); err != nil {
		t.Fatalf("StartNewQuiz() = %v", err)
	}
	for i := range n {
		q, err := c.CurrentQuestion()
		if err != nil {
			t.Fatalf("CurrentQuestion() = %v", err)
		}
		idx := q.CorrectIndex
		if i > 0 {
			idx = (idx + 1) % len(q.Choices)
		}
		if _, err := c.SubmitAnswer(session.Answer{Index: &idx}); err != nil {
			t.Fatalf("SubmitAnswer() = %v", err)
		}
		if _, err := c.AdvanceQuestion(); err != nil {
			t.Fatalf("AdvanceQuestion() = %v", err)
		}
	}
	if !c.Navigate(router.Review, false) {
		t.Fatal("could not open review")
	}
	return c
}

func TestReviewScreen_MissedOnly(t *testing.T) {
	c := playedController(t, 3)
	s := New(c)

	if len(s.items) != 2 {
		t.Fatalf("items = %d, want 2", len(s.items))
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "1 / 2") || !strings.Contains(view, "Incorrect") {
		t.Errorf("View() = %q, want first missed question", view)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if s.index != 1 {
		t.Errorf("index = %d, want 1", s.index)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if s.index != 1 {
		t.Errorf("index = %d, want 1 at the end", s.index)
	}
}

func TestReviewScreen_ToggleAll(t *testing.T) {
	s := New(playedController(t, 3))
	s.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if len(s.items) != 3 {
		t.Errorf("items = %d, want 3", len(s.items))
	}
}

func TestReviewScreen_NothingMissed(t *testing.T) {
	s := New(playedController(t, 1))
	if !strings.Contains(s.View(100, 40), "No missed questions") {
		t.Error("View() missing empty message")
	}
}

func TestReviewScreen_Back(t *testing.T) {
	c := playedController(t, 2)
	s := New(c)
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if c.Screen() != router.Result {
		t.Errorf("Screen = %q, want %q", c.Screen(), router.Result)
	}
}
