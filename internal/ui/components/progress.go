package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/karuta/internal/ui/theme"
)

// ProgressBar displays a horizontal bar for a fraction in [0, 1].
type ProgressBar struct {
	Label    string
	Fraction float64
	Caption  string
	Width    int
}

// NewProgressBar creates a bar. An empty caption shows the percentage.
func NewProgressBar(label string, fraction float64, width int) ProgressBar {
	return ProgressBar{Label: label, Fraction: fraction, Width: width}
}

// View renders the bar.
func (p ProgressBar) View() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(theme.Body.Render(p.Label))
		b.WriteString("  ")
	}

	caption := p.Caption
	if caption == "" {
		caption = fmt.Sprintf("%d%%", int(p.Fraction*100+0.5))
	}
	caption = "  " + caption

	barWidth := p.Width - lipgloss.Width(b.String()) - lipgloss.Width(caption)
	if barWidth < 4 {
		barWidth = 4
	}
	filled := min(max(int(float64(barWidth)*p.Fraction), 0), barWidth)

	b.WriteString(theme.ProgressFilled.Render(strings.Repeat(" ", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)))
	b.WriteString(theme.Dim.Render(caption))
	return b.String()
}
