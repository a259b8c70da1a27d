package router

import (
	"io"
	"log/slog"
	"maps"
	"slices"
	"time"
)

const (
	// MaxHistory bounds the navigation history.
	MaxHistory = 50

	// MaxStackDepth bounds the navigation stack.
	MaxStackDepth = 10
)

// HookFunc is called around transitions.
type HookFunc func(from, to ScreenID)

type ruleKey struct {
	from, to ScreenID
}

// Router is the screen state machine. It owns the current screen, a state
// per visited screen, the navigation history and stack, and the rules that
// gate transitions. It knows nothing about rendering.
//
// A Router belongs to a single session and is not safe for concurrent use.
type Router struct {
	current ScreenID
	states  map[ScreenID]*ScreenState
	rules   map[ruleKey]Rule
	history []Transition
	stack   []ScreenID
	pending *Confirmation

	transitioning bool

	before []HookFunc
	after  []HookFunc
	enter  map[ScreenID][]HookFunc
	leave  map[ScreenID][]HookFunc

	cache map[string]cacheEntry

	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Router) { r.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) { r.logger = l }
}

// WithRules registers transition rules.
func WithRules(rules ...Rule) Option {
	return func(r *Router) {
		for _, rule := range rules {
			r.AddRule(rule)
		}
	}
}

// New creates a Router sitting on the initial screen.
func New(initial ScreenID, opts ...Option) *Router {
	r := &Router{
		states: make(map[ScreenID]*ScreenState),
		rules:  make(map[ruleKey]Rule),
		enter:  make(map[ScreenID][]HookFunc),
		leave:  make(map[ScreenID][]HookFunc),
		cache:  make(map[string]cacheEntry),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r.current = initial
	r.states[initial] = &ScreenState{Screen: initial, EnteredAt: r.now(), Dirty: true}
	r.stack = []ScreenID{initial}
	return r
}

// AddRule registers or replaces the rule for rule.From -> rule.To.
func (r *Router) AddRule(rule Rule) {
	r.rules[ruleKey{rule.From, rule.To}] = rule
}

// Current returns the active screen.
func (r *Router) Current() ScreenID {
	return r.current
}

type navOptions struct {
	data  map[string]any
	force bool
}

// NavOption modifies a single NavigateTo call.
type NavOption func(*navOptions)

// WithData attaches a payload to the target screen's new state.
func WithData(data map[string]any) NavOption {
	return func(o *navOptions) { o.data = data }
}

// Force allows navigating to the current screen, which re-enters it.
// Rules still apply.
func Force() NavOption {
	return func(o *navOptions) { o.force = true }
}

// NavigateTo moves to the target screen and reports whether it did.
// A rejected transition changes nothing; when the rejection is a pending
// confirmation, PendingConfirmation describes it.
func (r *Router) NavigateTo(to ScreenID, opts ...NavOption) bool {
	var o navOptions
	for _, opt := range opts {
		opt(&o)
	}
	from := r.current

	if _, err := ParseScreen(string(to)); err != nil {
		r.logger.Warn("navigation rejected", "to", to, "reason", "unknown screen")
		return false
	}
	if to == from && !o.force {
		return false
	}
	if r.transitioning {
		r.logger.Warn("navigation rejected", "from", from, "to", to, "reason", "transition in progress")
		return false
	}

	rule, hasRule := r.rules[ruleKey{from, to}]
	if hasRule && !r.allowed(rule) {
		return false
	}

	r.transitioning = true
	defer func() { r.transitioning = false }()

	r.run(r.before, from, to)
	r.run(r.leave[from], from, to)
	if hasRule && rule.OnTransition != nil {
		rule.OnTransition(from, to)
	}

	if st := r.states[from]; st != nil {
		st.Dirty = false
	}
	r.states[to] = &ScreenState{
		Screen:    to,
		EnteredAt: r.now(),
		Previous:  from,
		Data:      maps.Clone(o.data),
		Dirty:     true,
	}
	r.current = to
	r.pushHistory(from, to)
	r.pushStack(to)

	r.run(r.after, from, to)
	r.run(r.enter[to], from, to)

	r.logger.Debug("navigated", "from", from, "to", to)
	return true
}

// allowed evaluates a rule. A rule that needs confirmation consumes a granted
// confirmation for the same transition, or records a pending one.
func (r *Router) allowed(rule Rule) bool {
	if rule.Condition != nil && !rule.Condition() {
		r.logger.Debug("navigation rejected", "from", rule.From, "to", rule.To, "reason", "condition")
		return false
	}
	if !rule.RequiresConfirmation {
		return true
	}

	p := r.pending
	if p != nil && p.From == rule.From && p.To == rule.To {
		if p.Granted {
			r.pending = nil
			return true
		}
		return false
	}
	r.pending = &Confirmation{From: rule.From, To: rule.To, Message: rule.ConfirmationMessage}
	r.logger.Debug("confirmation requested", "from", rule.From, "to", rule.To)
	return false
}

func (r *Router) run(hooks []HookFunc, from, to ScreenID) {
	for _, h := range hooks {
		h(from, to)
	}
}

func (r *Router) pushHistory(from, to ScreenID) {
	r.history = append(r.history, Transition{From: from, To: to, At: r.now()})
	if len(r.history) > MaxHistory {
		r.history = slices.Clone(r.history[len(r.history)-MaxHistory:])
	}
}

func (r *Router) pushStack(to ScreenID) {
	r.stack = slices.DeleteFunc(r.stack, func(id ScreenID) bool { return id == to })
	r.stack = append(r.stack, to)
	if len(r.stack) > MaxStackDepth {
		r.stack = slices.Clone(r.stack[len(r.stack)-MaxStackDepth:])
	}
}

// Back returns to the screen the current one was entered from, or failing
// that to the one below it on the stack.
func (r *Router) Back() bool {
	if st := r.states[r.current]; st != nil && st.Previous != "" {
		return r.NavigateTo(st.Previous)
	}
	if len(r.stack) > 1 {
		return r.NavigateTo(r.stack[len(r.stack)-2])
	}
	return false
}

// Home navigates to the Start screen, re-entering it if already there.
func (r *Router) Home() bool {
	return r.NavigateTo(Start, Force())
}

// PendingConfirmation returns the transition waiting for confirmation.
func (r *Router) PendingConfirmation() (Confirmation, bool) {
	if r.pending == nil {
		return Confirmation{}, false
	}
	return *r.pending, true
}

// Confirm grants the pending confirmation. The caller then repeats the
// navigation, which goes through. Reports false if nothing was pending.
func (r *Router) Confirm() bool {
	if r.pending == nil {
		return false
	}
	r.pending.Granted = true
	return true
}

// CancelConfirmation drops the pending confirmation.
func (r *Router) CancelConfirmation() {
	r.pending = nil
}

// OnBefore registers a hook that runs before every transition.
func (r *Router) OnBefore(h HookFunc) { r.before = append(r.before, h) }

// OnAfter registers a hook that runs after every transition.
func (r *Router) OnAfter(h HookFunc) { r.after = append(r.after, h) }

// OnEnter registers a hook that runs after entering the screen.
func (r *Router) OnEnter(id ScreenID, h HookFunc) { r.enter[id] = append(r.enter[id], h) }

// OnLeave registers a hook that runs before leaving the screen.
func (r *Router) OnLeave(id ScreenID, h HookFunc) { r.leave[id] = append(r.leave[id], h) }

// History returns the recorded transitions, oldest first.
func (r *Router) History() []Transition {
	return slices.Clone(r.history)
}

// Stack returns the navigation stack, bottom first.
func (r *Router) Stack() []ScreenID {
	return slices.Clone(r.stack)
}
