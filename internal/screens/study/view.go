package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/progress"
	"github.com/abhisek/lexiz/internal/quiz"
	"github.com/abhisek/lexiz/internal/ui/theme"
)

func (s *StudyScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return theme.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
			fmt.Sprintf("\n\n\nError: %s\n\nPress any key to finish.", s.errMsg))
	case s.quitConfirm:
		return renderQuitConfirm(width)
	case s.question == nil:
		return theme.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
			"\n\n\nNothing left to study.")
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(0, width-4))))
	b.WriteString("\n\n")

	q := s.question
	b.WriteString(theme.Term.Width(width).Render(q.Prompt))
	b.WriteString("\n")
	if q.Item.Pronunciation != "" {
		b.WriteString(theme.Centered(theme.Hint, width, "/"+q.Item.Pronunciation+"/"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if q.Format == quiz.FormatMultipleChoice {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))
	} else {
		b.WriteString(theme.Centered(lipgloss.NewStyle(), width, "Answer: "+s.input.View()))
	}
	b.WriteString("\n\n")
	b.WriteString(s.renderFeedback(width))

	return b.String()
}

func (s *StudyScreen) renderInfoLine(width int) string {
	pos, total := s.cfg.Session.Position()
	totals := s.cfg.Session.Totals()

	left := "  Item"
	if s.question != nil && s.question.Item.Category != "" {
		left = "  " + s.question.Item.Category
	}
	infoLeft := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(left)

	infoRight := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%d/%d  %s %d  %s +%d XP",
		min(pos+1, total), total,
		lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
		totals.Correct,
		lipgloss.NewStyle().Foreground(theme.Accent).Render("◆"),
		totals.XPEarned,
	))

	line := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + infoRight
	}
	return line
}

func (s *StudyScreen) renderFeedback(width int) string {
	switch {
	case s.saving:
		return theme.Centered(theme.Hint, width, "Saving...")
	case s.saveErr != "":
		return theme.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
			"Could not save your answer: "+s.saveErr+"\nPress Enter to try again.")
	case s.result == nil:
		return ""
	}

	o := s.result.Outcome
	var lines []string
	if o.Correct {
		lines = append(lines, theme.Correct.Render(fmt.Sprintf("Correct! +%d XP", o.XPAwarded)))
	} else {
		lines = append(lines,
			theme.Incorrect.Render("Not quite"),
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Correct answer: "+s.question.Answer))
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render(nextReview(o)))

	if o.LeveledUp() {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("Level up! You reached level %d", o.LevelAfter)))
	}
	if o.StreakDays > 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).
			Render(fmt.Sprintf("★ %d day streak!", o.StreakDays)))
	}
	if o.GoalReached {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Success).Render("Daily goal reached"))
	}
	if !o.Correct || !s.result.CanAdvance {
		lines = append(lines, "", theme.Hint.Render("Press any key to continue..."))
	}

	return theme.Centered(lipgloss.NewStyle(), width, strings.Join(lines, "\n"))
}

func nextReview(o *progress.Outcome) string {
	if o.State.Interval <= 1 {
		return "Next review tomorrow"
	}
	return fmt.Sprintf("Next review in %d days", o.State.Interval)
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width, "End session early?"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "Answers so far are already saved."))
	b.WriteString("\n\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Success), width, "[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Primary), width, "[N] No, keep going"))
	return b.String()
}
