package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiz/internal/reminder"
	"github.com/abhisek/lexiz/internal/router"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/ui/layout"
	"github.com/abhisek/lexiz/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	digestAt     = 400 * time.Millisecond
	hintAt       = 800 * time.Millisecond
)

type tickMsg time.Time

// WelcomeScreen shows the banner and what is waiting today, then hands
// over to the screen built by next.
type WelcomeScreen struct {
	next   func() (screen.Screen, error)
	digest reminder.Digest
	status layout.Status

	elapsed      time.Duration
	transitioned bool
	errMsg       string
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.StatusProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. next is called once, on the first key press.
func New(digest reminder.Digest, status layout.Status, next func() (screen.Screen, error)) *WelcomeScreen {
	return &WelcomeScreen{
		next:   next,
		digest: digest,
		status: status,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Status() layout.Status {
	return w.status
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed >= hintAt {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case tea.KeyPressMsg:
		if w.errMsg != "" {
			return w, tea.Quit
		}
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true

	next, err := w.next()
	if err != nil {
		w.errMsg = err.Error()
		return nil
	}
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{RenderBanner(width), ""}

	if w.errMsg != "" {
		sections = append(sections,
			lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+w.errMsg),
			"",
			theme.Hint.Render("press any key to quit"))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
	}

	if w.elapsed >= digestAt {
		sections = append(sections, renderDigest(w.digest)...)
	}
	if w.elapsed >= hintAt {
		sections = append(sections, "", theme.Hint.Render("press any key to start"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

func renderDigest(d reminder.Digest) []string {
	var lines []string
	switch {
	case d.Due > 0:
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render(fmt.Sprintf("%d reviews due, %d new words waiting", d.Due, d.New)))
	case d.New > 0:
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render(fmt.Sprintf("All caught up. %d new words waiting", d.New)))
	default:
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render("All caught up. Nothing to study right now"))
	}

	if d.StreakAtRisk {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).
			Render(fmt.Sprintf("Study today to keep your %d day streak", d.Streak)))
	}

	goal := fmt.Sprintf("%d/%d XP today", d.TodayXP, d.DailyGoal)
	if d.GoalMet() {
		goal += "  ✓ goal met"
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render(goal))
	return lines
}
