package router

import (
	"fmt"
	"maps"
	"time"
)

// ScreenID names one of the application's screens.
type ScreenID string

const (
	Start    ScreenID = "start"
	Quiz     ScreenID = "quiz"
	Result   ScreenID = "result"
	Settings ScreenID = "settings"
	Review   ScreenID = "review"
)

// AllScreens lists every known screen.
var AllScreens = []ScreenID{Start, Quiz, Result, Settings, Review}

// ParseScreen converts a screen name into a ScreenID.
func ParseScreen(s string) (ScreenID, error) {
	for _, id := range AllScreens {
		if string(id) == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown screen %q", s)
}

// ScreenState is the live state of one screen. A new one is created every
// time the screen is entered.
type ScreenState struct {
	// Screen is the screen this state belongs to.
	Screen ScreenID `json:"screen"`

	// EnteredAt is when the screen was last entered.
	EnteredAt time.Time `json:"entered_at"`

	// Previous is the screen navigated away from, empty for the first screen.
	Previous ScreenID `json:"previous,omitempty"`

	// Data is the payload passed with the transition.
	Data map[string]any `json:"data,omitempty"`

	// Dirty marks the screen as needing a redraw.
	Dirty bool `json:"dirty"`
}

func (s *ScreenState) clone() *ScreenState {
	if s == nil {
		return nil
	}
	c := *s
	c.Data = maps.Clone(s.Data)
	return &c
}

// Transition is one entry of the navigation history.
type Transition struct {
	From ScreenID  `json:"from"`
	To   ScreenID  `json:"to"`
	At   time.Time `json:"at"`
}

// Rule gates the transition From -> To.
type Rule struct {
	From ScreenID
	To   ScreenID

	// Condition, when set, must return true for the transition to happen.
	Condition func() bool

	// RequiresConfirmation holds the transition until the caller grants it.
	RequiresConfirmation bool

	// ConfirmationMessage is shown to the user while the confirmation is pending.
	ConfirmationMessage string

	// OnTransition runs after the rule passes, before the screen changes.
	OnTransition func(from, to ScreenID)
}

// Confirmation is a transition waiting for the user's answer.
type Confirmation struct {
	From    ScreenID `json:"from"`
	To      ScreenID `json:"to"`
	Message string   `json:"message"`
	Granted bool     `json:"granted"`
}
