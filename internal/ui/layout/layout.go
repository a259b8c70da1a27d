package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/karuta/internal/ui/theme"
)

const (
	MinWidth  = 72
	MinHeight = 22

	// Below CompactWidth the header drops the romanized name and the footer
	// shows keys without descriptions.
	CompactWidth = 96
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompact reports whether the frame is narrow enough to abbreviate the
// header and footer.
func IsCompact(width int) bool {
	return width < CompactWidth
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight is the height left for a screen between header and footer.
func ContentHeight(header, footer string, total int) int {
	return max(total-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	msg := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
	return msg
}

// RenderHeader renders the application header bar. status is shown on the
// right, typically the running score.
func RenderHeader(title, status string, width int) string {
	name := "  Karuta 百人一首"
	if IsCompact(width) {
		name = "  百人一首"
	}
	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(name)

	center := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(title)

	right := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Render(status)

	leftLen := lipgloss.Width(left)
	centerLen := lipgloss.Width(center)
	rightLen := lipgloss.Width(right)

	innerWidth := max(width-4, 0)

	leftGap := max((innerWidth-centerLen)/2-leftLen, 1)
	rightGap := max(innerWidth-leftLen-leftGap-centerLen-rightLen, 1)

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right

	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderFooter renders the footer with key hints.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	compact := IsCompact(width)
	for _, h := range hints {
		part := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)
		if !compact {
			part += " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
		}
		parts = append(parts, part)
	}

	sep := "   "
	if compact {
		sep = "  "
	}
	content := "  " + strings.Join(parts, sep)

	box := lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)

	return box
}

// RenderFrame stacks header, content and footer. The content area is
// padded to fill the space between them on the ink background.
func RenderFrame(header, content, footer string, width, height int) string {
	styledContent := lipgloss.NewStyle().
		Width(width).
		Height(ContentHeight(header, footer, height)).
		Background(theme.BgDark).
		Render(content)

	return header + "\n" + styledContent + "\n" + footer
}
