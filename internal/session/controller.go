package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/abhisek/karuta/internal/poem"
	"github.com/abhisek/karuta/internal/quiz"
	"github.com/abhisek/karuta/internal/router"
	"github.com/abhisek/karuta/internal/scoring"
)

var (
	ErrNoQuiz          = errors.New("no quiz in progress")
	ErrQuizCompleted   = errors.New("quiz already completed")
	ErrNoQuestion      = errors.New("no question to answer")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrHintsDisabled   = errors.New("hints are disabled")
)

// InterruptMessage is shown when leaving a running quiz.
const InterruptMessage = "Quit the quiz? Your progress will be lost."

// Answer is a player's response. Both fields nil means a skip.
type Answer struct {
	Index *int    `json:"answer_index,omitempty"`
	Text  *string `json:"answer_text,omitempty"`
}

// Controller drives one player's session: it owns the screen state machine,
// the question generator, the answer validator and the active quiz.
// It is not safe for concurrent use; servers hold one lock per Controller.
type Controller struct {
	id        string
	repo      *poem.Repository
	router    *router.Router
	generator *quiz.Generator
	validator *scoring.Validator
	defaults  Settings

	quiz          *QuizSession
	current       *quiz.Question
	answered      bool
	hint          string
	questionStart time.Time
	last          *QuestionResult

	now    func() time.Time
	rng    *rand.Rand
	logger *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the time source for the controller and its parts.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithRand sets the random source used for question generation.
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithDefaults sets the settings used when StartNewQuiz gets none.
func WithDefaults(s Settings) Option {
	return func(c *Controller) { c.defaults = s }
}

// NewController creates a session on the Start screen.
func NewController(repo *poem.Repository, opts ...Option) *Controller {
	c := &Controller{
		id:       NewID(),
		repo:     repo,
		defaults: DefaultSettings(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	c.logger = c.logger.With("session_id", c.id)

	c.generator = quiz.NewGenerator(repo, quiz.WithRand(c.rng), quiz.WithLogger(c.logger))
	c.validator = scoring.NewValidator(scoring.WithClock(c.now), scoring.WithLogger(c.logger))
	c.router = router.New(router.Start,
		router.WithClock(c.now),
		router.WithLogger(c.logger),
		router.WithRules(c.rules()...),
	)
	return c
}

func (c *Controller) rules() []router.Rule {
	active := func() bool { return c.quiz != nil && !c.quiz.Completed }
	completed := func() bool { return c.quiz != nil && c.quiz.Completed }
	return []router.Rule{
		{From: router.Start, To: router.Quiz, Condition: active},
		{From: router.Settings, To: router.Quiz, Condition: active},
		{From: router.Result, To: router.Quiz, Condition: active},
		{From: router.Quiz, To: router.Result, Condition: completed},
		{From: router.Result, To: router.Review, Condition: completed},
		{
			From:                 router.Quiz,
			To:                   router.Start,
			RequiresConfirmation: true,
			ConfirmationMessage:  InterruptMessage,
		},
	}
}

// ID returns the session identity. It changes on RestartQuiz.
func (c *Controller) ID() string { return c.id }

// Screen returns the active screen.
func (c *Controller) Screen() router.ScreenID { return c.router.Current() }

// Router exposes the screen state machine for rendering concerns such as
// ShouldUpdate and screen data.
func (c *Controller) Router() *router.Router { return c.router }

// Repository returns the poem corpus.
func (c *Controller) Repository() *poem.Repository { return c.repo }

// Defaults returns the settings used when StartNewQuiz gets none.
func (c *Controller) Defaults() Settings { return c.defaults }

// SetDefaults validates and stores new default settings.
func (c *Controller) SetDefaults(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c.defaults = s.normalized()
	return nil
}

// Quiz returns the active quiz, or nil. Callers must not modify it.
func (c *Controller) Quiz() *QuizSession { return c.quiz }

// StartNewQuiz replaces any quiz with a fresh one and moves to the Quiz
// screen. Nil settings means the defaults.
func (c *Controller) StartNewQuiz(s *Settings) error {
	settings := c.defaults
	if s != nil {
		settings = *s
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	settings = settings.normalized()
	c.defaults = settings

	c.quiz = newQuizSession(settings, c.now())
	c.clearQuestion()
	c.generator.ResetUsed()
	c.validator.Reset()
	c.router.ResetState(router.Result, router.Review)
	c.router.CancelConfirmation()

	if !c.router.NavigateTo(router.Quiz, router.Force()) {
		return fmt.Errorf("start quiz: cannot leave %s", c.router.Current())
	}
	c.logger.Info("quiz started",
		"mode", settings.Mode, "difficulty", settings.Difficulty, "questions", settings.TotalQuestions)
	return nil
}

func (c *Controller) clearQuestion() {
	c.current = nil
	c.answered = false
	c.hint = ""
	c.last = nil
}

// CurrentQuestion returns the question being shown, generating it on first
// call. When the corpus runs dry the quiz is completed early and
// quiz.ErrExhausted is returned.
func (c *Controller) CurrentQuestion() (*quiz.Question, error) {
	if c.quiz == nil {
		return nil, ErrNoQuiz
	}
	if c.quiz.Completed {
		return nil, ErrQuizCompleted
	}
	if c.current != nil {
		return c.current, nil
	}

	s := c.quiz.Settings
	q, err := c.generator.Generate(s.Mode, s.Difficulty, c.quiz.askedPoems())
	if err != nil {
		if errors.Is(err, quiz.ErrExhausted) {
			c.logger.Info("questions exhausted, ending quiz early", "asked", len(c.quiz.Results))
			c.CompleteQuiz()
		}
		return nil, err
	}

	c.current = q
	c.answered = false
	c.hint = ""
	c.questionStart = c.now()
	c.router.MarkDirty(router.Quiz)
	return q, nil
}

// Answered reports whether the current question has been judged.
func (c *Controller) Answered() bool { return c.answered }

// LastResult returns the most recent judged question, if any.
func (c *Controller) LastResult() (QuestionResult, bool) {
	if c.last == nil {
		return QuestionResult{}, false
	}
	return *c.last, true
}

// UseHint returns a hint for the current question. Answering afterwards
// counts as hint-assisted.
func (c *Controller) UseHint() (string, error) {
	if c.quiz == nil {
		return "", ErrNoQuiz
	}
	if !c.quiz.Settings.EnableHints {
		return "", ErrHintsDisabled
	}
	if c.current == nil {
		return "", ErrNoQuestion
	}
	if c.answered {
		return "", ErrAlreadyAnswered
	}
	if c.hint == "" {
		c.hint = quiz.Hint(c.current)
	}
	return c.hint, nil
}

// Hint returns the hint shown for the current question, if any.
func (c *Controller) Hint() string { return c.hint }

// TimeLimit returns the per-question limit, zero when unlimited.
func (c *Controller) TimeLimit() time.Duration {
	if c.quiz == nil {
		return 0
	}
	return time.Duration(c.quiz.Settings.TimeLimitSeconds) * time.Second
}

// QuestionElapsed returns how long the current question has been shown.
func (c *Controller) QuestionElapsed() time.Duration {
	if c.current == nil {
		return 0
	}
	return c.now().Sub(c.questionStart)
}

// SubmitAnswer judges the answer to the current question and records it.
// The quiz stays on the question until AdvanceQuestion.
func (c *Controller) SubmitAnswer(a Answer) (scoring.AnswerResult, error) {
	if c.quiz == nil {
		return scoring.AnswerResult{}, ErrNoQuiz
	}
	if c.quiz.Completed {
		return scoring.AnswerResult{}, ErrQuizCompleted
	}
	if c.current == nil {
		return scoring.AnswerResult{}, ErrNoQuestion
	}
	if c.answered {
		return scoring.AnswerResult{}, ErrAlreadyAnswered
	}

	q := c.current
	sub := scoring.Submission{
		QuestionID:    q.ID(),
		PoemNumber:    q.PoemNumber,
		QuestionText:  q.Text,
		CorrectAnswer: q.Answer,
		CorrectIndex:  q.CorrectIndex,
		UserAnswer:    a.Text,
		AnswerIndex:   a.Index,
		TimeTaken:     c.QuestionElapsed().Seconds(),
		HintUsed:      c.hint != "",
	}
	if limit := c.TimeLimit(); limit > 0 {
		secs := limit.Seconds()
		sub.TimeoutSeconds = &secs
	}

	res := c.validator.CheckAnswer(sub)
	qr := QuestionResult{
		Index:    c.quiz.CurrentIndex,
		Question: q,
		Type:     q.Type,
		Answer:   res,
		Hint:     c.hint,
	}
	c.quiz.record(qr)
	c.answered = true
	c.last = &qr
	c.router.MarkDirty(router.Quiz)

	c.logger.Debug("answer judged", "question_id", res.QuestionID, "status", res.Status)
	return res, nil
}

// Skip records the current question as skipped.
func (c *Controller) Skip() (scoring.AnswerResult, error) {
	return c.SubmitAnswer(Answer{})
}

// AdvanceQuestion moves past the current question, recording it as skipped
// if it was never answered. It reports true when that completed the quiz.
func (c *Controller) AdvanceQuestion() (bool, error) {
	if c.quiz == nil {
		return false, ErrNoQuiz
	}
	if c.quiz.Completed {
		return true, nil
	}
	if c.current != nil && !c.answered {
		if _, err := c.Skip(); err != nil {
			return false, err
		}
	}

	c.quiz.CurrentIndex++
	c.clearQuestion()
	c.router.ClearCache(router.Quiz)

	if c.quiz.CurrentIndex >= c.quiz.Settings.TotalQuestions {
		c.CompleteQuiz()
		return true, nil
	}
	c.router.MarkDirty(router.Quiz)
	return false, nil
}

// CompleteQuiz marks the quiz finished and moves to the Result screen.
func (c *Controller) CompleteQuiz() bool {
	if c.quiz == nil {
		return false
	}
	if !c.quiz.Completed {
		c.quiz.Completed = true
		c.quiz.CompletedAt = c.now()
		c.logger.Info("quiz completed",
			"answered", len(c.quiz.Results), "score", c.quiz.Score, "grade", c.validator.CurrentScore().Grade)
	}
	c.current = nil
	c.answered = false
	c.hint = ""

	return c.router.NavigateTo(router.Result, router.WithData(map[string]any{
		"completed_at":    c.quiz.CompletedAt,
		"total_questions": c.quiz.Settings.TotalQuestions,
		"correct_answers": c.quiz.Score,
	}))
}

// RestartQuiz abandons the quiz and returns to Start under a fresh session
// identity. Leaving a running quiz needs a granted confirmation; without one
// the confirmation becomes pending and nothing else changes.
func (c *Controller) RestartQuiz() bool {
	if !c.router.Home() {
		return false
	}

	old := c.id
	c.id = NewID()
	c.quiz = nil
	c.clearQuestion()
	c.generator.ResetUsed()
	c.validator.Reset()
	c.router.ResetState(router.Quiz, router.Result, router.Review)
	c.router.ClearCache()

	c.logger.Info("quiz restarted", "new_session_id", c.id, "previous_session_id", old)
	return true
}

// HandleQuizInterruption is the two-step way out of a running quiz. The
// first call leaves a pending confirmation; after Confirm(true) the next
// call restarts the quiz.
func (c *Controller) HandleQuizInterruption() bool {
	return c.RestartQuiz()
}

// PendingConfirmation returns the transition waiting for the user.
func (c *Controller) PendingConfirmation() (router.Confirmation, bool) {
	return c.router.PendingConfirmation()
}

// Confirm answers the pending confirmation. Accepting grants it for the next
// attempt; declining drops it.
func (c *Controller) Confirm(accept bool) bool {
	if !accept {
		c.router.CancelConfirmation()
		return false
	}
	return c.router.Confirm()
}

// Navigate requests a screen change by name, subject to the router's rules.
func (c *Controller) Navigate(to router.ScreenID, force bool) bool {
	if force {
		return c.router.NavigateTo(to, router.Force())
	}
	return c.router.NavigateTo(to)
}

// Back returns to the previous screen.
func (c *Controller) Back() bool {
	return c.router.Back()
}
