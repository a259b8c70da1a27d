package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette after traditional dyes: vermilion, indigo, pine and gold on ink.
var (
	Primary   = lipgloss.Color("#E0523F") // Vermilion
	Secondary = lipgloss.Color("#5B7DB1") // Indigo
	Accent    = lipgloss.Color("#D4A72C") // Gold
	Success   = lipgloss.Color("#5FA36B") // Pine
	Error     = lipgloss.Color("#D9455F") // Crimson
	Text      = lipgloss.Color("#F4EFE6") // Washi
	TextDim   = lipgloss.Color("#A39E93") // Ash
	BgDark    = lipgloss.Color("#1B1A22") // Ink
	BgCard    = lipgloss.Color("#26242F") // Lacquer
	Border    = lipgloss.Color("#3E3B4A") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(Accent).
		Italic(true)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)
)

// Verse renders poem text on the reading card.
var Verse = lipgloss.NewStyle().
	Foreground(Text).
	Bold(true)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
