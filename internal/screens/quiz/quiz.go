package quiz

import (
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	qz "github.com/abhisek/karuta/internal/quiz"
	"github.com/abhisek/karuta/internal/scoring"
	"github.com/abhisek/karuta/internal/screen"
	"github.com/abhisek/karuta/internal/session"
	"github.com/abhisek/karuta/internal/ui/components"
	"github.com/abhisek/karuta/internal/ui/layout"
)

const tickInterval = time.Second

// QuizScreen asks the questions of the running quiz one at a time.
type QuizScreen struct {
	ctrl       *session.Controller
	question   *qz.Question
	choices    components.MultiChoice
	input      components.TextInput
	typing     bool
	result     *scoring.AnswerResult
	confirming bool
	gen        int
	errMsg     string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates the quiz screen for the controller's active quiz.
func New(ctrl *session.Controller) *QuizScreen {
	return &QuizScreen{
		ctrl:  ctrl,
		input: components.NewTextInput("Type your answer...", 80),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.load()
}

func (s *QuizScreen) Title() string {
	if s.question == nil {
		return "Quiz"
	}
	return s.question.Type.Label()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirming:
		return []layout.KeyHint{
			{Key: "Y", Description: "Quit quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case s.result != nil:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Quit"},
		}
	case s.typing:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Choices"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Select"},
		{Key: "T", Description: "Type"},
	}
	if s.hintsEnabled() {
		hints = append(hints, layout.KeyHint{Key: "H", Description: "Hint"})
	}
	return append(hints,
		layout.KeyHint{Key: "S", Description: "Skip"},
		layout.KeyHint{Key: "Esc", Description: "Quit"},
	)
}

func (s *QuizScreen) hintsEnabled() bool {
	q := s.ctrl.Quiz()
	return q != nil && q.Settings.EnableHints
}

// load fetches the current question and resets the per-question state.
// When the corpus runs dry the controller completes the quiz and the app
// switches to the result screen.
func (s *QuizScreen) load() tea.Cmd {
	s.question = nil
	s.result = nil
	s.typing = false
	s.errMsg = ""
	s.input.Reset()
	s.gen++

	q, err := s.ctrl.CurrentQuestion()
	if err != nil {
		if !errors.Is(err, qz.ErrExhausted) {
			s.errMsg = err.Error()
		}
		return nil
	}
	s.question = q
	s.choices = components.NewMultiChoice(q.Choices)
	return s.tick()
}

func (s *QuizScreen) tick() tea.Cmd {
	if s.ctrl.TimeLimit() <= 0 {
		return nil
	}
	gen := s.gen
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s.handleTick(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.typing {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleTick(msg tickMsg) (screen.Screen, tea.Cmd) {
	if msg.gen != s.gen || s.question == nil || s.result != nil {
		return s, nil
	}
	if s.ctrl.QuestionElapsed() >= s.ctrl.TimeLimit() {
		// An empty answer past the limit is judged as a timeout.
		s.submit(session.Answer{})
		return s, nil
	}
	return s, s.tick()
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirming {
		switch key {
		case "y", "Y":
			s.confirming = false
			s.ctrl.Confirm(true)
			s.ctrl.HandleQuizInterruption()
		case "n", "N", "esc":
			s.confirming = false
			s.ctrl.Confirm(false)
		}
		return s, nil
	}

	if key == "esc" && !s.typing {
		if !s.ctrl.HandleQuizInterruption() {
			_, s.confirming = s.ctrl.PendingConfirmation()
		}
		return s, nil
	}

	if s.question == nil {
		return s, nil
	}

	if s.result != nil {
		switch key {
		case "enter", "space", "n", "right":
			return s, s.advance()
		}
		return s, nil
	}

	if s.typing {
		switch key {
		case "esc":
			s.typing = false
			return s, nil
		case "enter":
			text := s.input.Value()
			if text == "" {
				return s, nil
			}
			s.typing = false
			s.submit(session.Answer{Text: &text})
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch key {
	case "t", "T":
		s.typing = true
		return s, s.input.Init()
	case "h", "H":
		if _, err := s.ctrl.UseHint(); err != nil {
			s.errMsg = err.Error()
		}
		return s, nil
	case "s", "S":
		s.submit(session.Answer{})
		return s, nil
	}

	s.choices, _ = s.choices.Update(msg)
	if s.choices.Submitted {
		idx := s.choices.ChosenIndex
		s.submit(session.Answer{Index: &idx})
	}
	return s, nil
}

func (s *QuizScreen) submit(a session.Answer) {
	res, err := s.ctrl.SubmitAnswer(a)
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.errMsg = ""
	s.result = &res
	if res.AnswerIndex == nil {
		s.choices.ChosenIndex = -1
	}
	s.choices.Reveal(res.CorrectIndex)
}

func (s *QuizScreen) advance() tea.Cmd {
	done, err := s.ctrl.AdvanceQuestion()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if done {
		return nil
	}
	return s.load()
}
