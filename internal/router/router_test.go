package router

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestNew(t *testing.T) {
	r := New(Start)
	if r.Current() != Start {
		t.Errorf("Current = %q, want %q", r.Current(), Start)
	}
	assert.Equal(t, []ScreenID{Start}, r.Stack())
	assert.True(t, r.IsDirty(Start))
}

func TestNavigateTo(t *testing.T) {
	r := New(Start)

	require.True(t, r.NavigateTo(Quiz, WithData(map[string]any{"q": 1})))
	assert.Equal(t, Quiz, r.Current())

	st := r.CurrentState()
	assert.Equal(t, Start, st.Previous)
	assert.Equal(t, 1, st.Data["q"])
	assert.True(t, st.Dirty)
	assert.False(t, r.IsDirty(Start), "left screen is flagged clean")

	h := r.History()
	require.Len(t, h, 1)
	assert.Equal(t, Transition{From: Start, To: Quiz, At: h[0].At}, h[0])
}

func TestNavigateTo_SameScreen(t *testing.T) {
	r := New(Start)
	assert.False(t, r.NavigateTo(Start))
	assert.Empty(t, r.History())

	assert.True(t, r.NavigateTo(Start, Force()))
	assert.Len(t, r.History(), 1)
}

func TestNavigateTo_UnknownScreen(t *testing.T) {
	r := New(Start)
	assert.False(t, r.NavigateTo(ScreenID("lobby")))
	assert.Equal(t, Start, r.Current())
}

func TestNavigateTo_Condition(t *testing.T) {
	ready := false
	r := New(Start, WithRules(Rule{From: Start, To: Quiz, Condition: func() bool { return ready }}))

	assert.False(t, r.NavigateTo(Quiz))
	assert.Equal(t, Start, r.Current())

	ready = true
	assert.True(t, r.NavigateTo(Quiz))
}

func TestNavigateTo_ConfirmationPending(t *testing.T) {
	r := New(Start, WithRules(Rule{
		From:                 Start,
		To:                   Quiz,
		RequiresConfirmation: true,
		ConfirmationMessage:  "Start now?",
	}))

	if r.NavigateTo(Quiz) {
		t.Fatal("NavigateTo succeeded without confirmation")
	}
	if r.Current() != Start {
		t.Errorf("Current = %q, want %q", r.Current(), Start)
	}
	p, ok := r.PendingConfirmation()
	require.True(t, ok)
	assert.Equal(t, "Start now?", p.Message)
	assert.False(t, p.Granted)

	// Asking again without granting stays pending.
	assert.False(t, r.NavigateTo(Quiz))
	_, ok = r.PendingConfirmation()
	assert.True(t, ok)

	require.True(t, r.Confirm())
	assert.True(t, r.NavigateTo(Quiz))
	_, ok = r.PendingConfirmation()
	assert.False(t, ok, "granted confirmation is consumed")
}

func TestCancelConfirmation(t *testing.T) {
	r := New(Quiz, WithRules(Rule{From: Quiz, To: Start, RequiresConfirmation: true}))
	r.NavigateTo(Start)
	r.CancelConfirmation()

	_, ok := r.PendingConfirmation()
	assert.False(t, ok)
	assert.False(t, r.Confirm())
	assert.Equal(t, Quiz, r.Current())
}

func TestOnTransitionAndHooks(t *testing.T) {
	var calls []string
	r := New(Start, WithRules(Rule{
		From: Start, To: Quiz,
		OnTransition: func(from, to ScreenID) { calls = append(calls, "rule") },
	}))
	r.OnBefore(func(from, to ScreenID) { calls = append(calls, "before") })
	r.OnLeave(Start, func(from, to ScreenID) { calls = append(calls, "leave:start") })
	r.OnAfter(func(from, to ScreenID) { calls = append(calls, "after") })
	r.OnEnter(Quiz, func(from, to ScreenID) { calls = append(calls, "enter:quiz") })
	r.OnEnter(Result, func(from, to ScreenID) { calls = append(calls, "enter:result") })

	require.True(t, r.NavigateTo(Quiz))
	assert.Equal(t, []string{"before", "leave:start", "rule", "after", "enter:quiz"}, calls)
}

func TestNavigateTo_ReentrantRejected(t *testing.T) {
	r := New(Start)
	var inner bool
	r.OnEnter(Quiz, func(from, to ScreenID) {
		inner = r.NavigateTo(Result)
	})

	require.True(t, r.NavigateTo(Quiz))
	assert.False(t, inner)
	assert.Equal(t, Quiz, r.Current())
}

func TestHistoryBounded(t *testing.T) {
	r := New(Start)
	for i := range 60 {
		if i%2 == 0 {
			r.NavigateTo(Quiz)
		} else {
			r.NavigateTo(Start)
		}
	}
	h := r.History()
	if len(h) != MaxHistory {
		t.Errorf("history length = %d, want %d", len(h), MaxHistory)
	}
	assert.Equal(t, Start, h[len(h)-1].To)
}

func TestStack(t *testing.T) {
	r := New(Start)
	r.NavigateTo(Settings)
	r.NavigateTo(Start)
	r.NavigateTo(Quiz)

	// Revisiting a screen moves it to the top instead of duplicating it.
	assert.Equal(t, []ScreenID{Settings, Start, Quiz}, r.Stack())
	assert.LessOrEqual(t, len(r.Stack()), MaxStackDepth)
}

func TestBack(t *testing.T) {
	r := New(Start)
	r.NavigateTo(Settings)
	require.True(t, r.Back())
	assert.Equal(t, Start, r.Current())

	fresh := New(Start)
	assert.False(t, fresh.Back())
}

func TestHome(t *testing.T) {
	r := New(Start)
	r.NavigateTo(Result)
	require.True(t, r.Home())
	assert.Equal(t, Start, r.Current())

	// Home from Start re-enters it.
	assert.True(t, r.Home())
}

func TestUpdateData(t *testing.T) {
	r := New(Start)
	r.NavigateTo(Quiz, WithData(map[string]any{"a": 1}))
	r.NavigateTo(Result)

	require.True(t, r.UpdateData(Quiz, map[string]any{"b": 2}, true))
	st, ok := r.State(Quiz)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, st.Data)
	assert.True(t, st.Dirty)

	r.UpdateData(Quiz, map[string]any{"c": 3}, false)
	st, _ = r.State(Quiz)
	assert.Equal(t, map[string]any{"c": 3}, st.Data)

	assert.False(t, r.UpdateData(Review, nil, false))
}

func TestResetState(t *testing.T) {
	r := New(Start)
	r.NavigateTo(Quiz)
	r.NavigateTo(Result)
	r.NavigateTo(Start)

	r.ResetState(Quiz, Result, Start)
	_, ok := r.State(Quiz)
	assert.False(t, ok)
	_, ok = r.State(Start)
	assert.True(t, ok, "current screen keeps its state")

	info := r.DebugInfo()
	assert.Equal(t, []ScreenID{Start}, info.States)
}

func TestShouldUpdate(t *testing.T) {
	clock := newFakeClock()
	r := New(Quiz, WithClock(clock.Now))

	t.Run("full", func(t *testing.T) {
		assert.True(t, r.ShouldUpdate("header", nil, Full))
		assert.True(t, r.ShouldUpdate("header", nil, Full))
	})

	t.Run("cached", func(t *testing.T) {
		assert.True(t, r.ShouldUpdate("stats", 1, Cached))
		clock.Advance(59 * time.Second)
		assert.False(t, r.ShouldUpdate("stats", 2, Cached))
		clock.Advance(time.Second)
		assert.True(t, r.ShouldUpdate("stats", 2, Cached))
	})

	t.Run("partial", func(t *testing.T) {
		data := map[string]any{"score": 3, "index": 1}
		assert.True(t, r.ShouldUpdate("progress", data, Partial))
		assert.False(t, r.ShouldUpdate("progress", map[string]any{"index": 1, "score": 3}, Partial))
		assert.True(t, r.ShouldUpdate("progress", map[string]any{"index": 2, "score": 3}, Partial))
	})

	t.Run("lazy", func(t *testing.T) {
		assert.True(t, r.ShouldUpdate("timer", nil, Lazy))
		clock.Advance(500 * time.Millisecond)
		assert.False(t, r.ShouldUpdate("timer", nil, Lazy))
		clock.Advance(500 * time.Millisecond)
		assert.True(t, r.ShouldUpdate("timer", nil, Lazy))
	})
}

func TestShouldUpdate_KeyedByScreen(t *testing.T) {
	r := New(Quiz)
	assert.True(t, r.ShouldUpdate("panel", 1, Partial))
	r.NavigateTo(Result)
	assert.True(t, r.ShouldUpdate("panel", 1, Partial), "different screen, different key")
	assert.False(t, r.ShouldUpdate("panel", 1, Partial))
}

func TestClearCache(t *testing.T) {
	r := New(Quiz)
	r.ShouldUpdate("panel", 1, Partial)
	r.NavigateTo(Result)
	r.ShouldUpdate("panel", 1, Partial)

	r.ClearCache(Quiz)
	assert.Equal(t, 1, r.DebugInfo().CacheEntries)
	r.ClearCache()
	assert.Zero(t, r.DebugInfo().CacheEntries)
}

func TestParseScreen(t *testing.T) {
	id, err := ParseScreen("review")
	require.NoError(t, err)
	assert.Equal(t, Review, id)

	_, err = ParseScreen("home")
	assert.Error(t, err)
}
