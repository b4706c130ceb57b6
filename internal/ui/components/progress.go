package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/minqi/vocadrill/internal/ui/theme"
)

// ProgressBar renders stage progress as a horizontal bar. The fill
// carries the accent tint while words are still in the loop and turns
// the mastered green once Percent reaches 1.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a progress bar. Width bounds the whole
// rendering including label and percentage.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the bar.
func (p ProgressBar) View() string {
	pct := min(max(p.Percent, 0), 1)

	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	barWidth := p.Width - lipgloss.Width(b.String())
	if p.ShowPercent {
		barWidth -= 6 // "  100%"
	}
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth)*pct + 0.5)
	if filled > barWidth {
		filled = barWidth
	}

	fill := theme.Secondary
	if pct >= 1 {
		fill = theme.Success
	}
	b.WriteString(lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled)))

	if p.ShowPercent {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(pct*100))))
	}

	return b.String()
}
