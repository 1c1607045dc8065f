package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/progress"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/session"
	"github.com/abhisek/lexiz/internal/ui/components"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/ui/theme"
)

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary *session.Summary
	level   progress.LevelProgress
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.StatusProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. level is the learner's position after
// the session.
func New(summary *session.Summary, level progress.LevelProgress) *SummaryScreen {
	return &SummaryScreen{summary: summary, level: level}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) Status() layout.Status {
	st := layout.Status{Level: s.level.Level}
	if s.summary != nil {
		st.Streak = s.summary.Streak
		st.XP = s.summary.TotalXP
	}
	return st
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Done"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	title := "Session complete!"
	if !sum.Completed {
		title = "Session ended"
	}
	b.WriteString(theme.Centered(theme.Title, width, title))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
		fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	if sum.ItemsQueued == 0 {
		b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Text), width,
			"Nothing was due. Come back later!"))
		b.WriteString("\n\n")
	} else {
		stats := fmt.Sprintf("Words: %d/%d        Correct: %d        Accuracy: %.0f%%",
			sum.ItemsSeen, sum.ItemsQueued, sum.Correct, sum.AccuracyPercent)
		b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Text), width, stats))
		b.WriteString("\n\n")
	}

	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true), width,
		fmt.Sprintf("+%d XP", sum.XPEarned)))
	b.WriteString("\n")

	if sum.LeveledUp() {
		b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Accent), width,
			fmt.Sprintf("Level up! %d → %d", sum.LevelBefore, sum.LevelAfter)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	barWidth := min(max(20, width-8), 60)
	bar := components.NewProgressBar(
		fmt.Sprintf("Level %d", s.level.Level),
		float64(s.level.Percent)/100,
		fmt.Sprintf("%s XP", components.Fraction(s.level.Current, s.level.Required)),
		barWidth,
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	if sum.Streak > 0 {
		days := "days"
		if sum.Streak == 1 {
			days = "day"
		}
		b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Accent), width,
			fmt.Sprintf("★ %d %s streak", sum.Streak, days)))
		b.WriteString("\n")
	}

	return b.String()
}
