package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/karuta/internal/ui/theme"
)

// ContentWidth returns the inner width shared by every card on a screen so
// stacked cards line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded card of content width cw.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// ReadingCard frames the verse being read aloud, like the yomifuda.
func ReadingCard(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(theme.Verse.Render(content))
}

// Center places content in the middle of a width x height area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
