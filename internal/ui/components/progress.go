package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label   string
	Percent float64 // 0..1
	Caption string  // shown after the bar, e.g. "40/120 XP"
	Width   int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, caption string, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Percent: percent,
		Caption: caption,
		Width:   width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	caption := ""
	if p.Caption != "" {
		caption = lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + p.Caption)
	}

	barWidth := max(4, p.Width-lipgloss.Width(result)-lipgloss.Width(caption))
	filled := min(barWidth, max(0, int(float64(barWidth)*p.Percent)))

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		caption
	return result
}

// Fraction renders "n/total".
func Fraction(n, total int) string {
	return fmt.Sprintf("%d/%d", n, total)
}
