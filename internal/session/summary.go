package session

import "time"

// Summary holds the data displayed on the summary screen.
type Summary struct {
	SessionID       string
	Duration        time.Duration
	ItemsQueued     int
	ItemsSeen       int
	Correct         int
	Incorrect       int
	AccuracyPercent float64
	XPEarned        int
	LevelBefore     int
	LevelAfter      int
	LevelUps        int
	TotalXP         int
	Streak          int
	Completed       bool
}

// LeveledUp reports whether the learner gained a level during the session.
func (s *Summary) LeveledUp() bool {
	return s.LevelAfter > s.LevelBefore
}

// buildSummary creates a Summary from the session state. Caller holds s.mu.
func buildSummary(s *Session, now time.Time) *Summary {
	return &Summary{
		SessionID:       s.id,
		Duration:        now.Sub(s.started),
		ItemsQueued:     len(s.items),
		ItemsSeen:       s.totals.Answered,
		Correct:         s.totals.Correct,
		Incorrect:       s.totals.Incorrect,
		AccuracyPercent: s.totals.AccuracyPercent(),
		XPEarned:        s.totals.XPEarned,
		LevelBefore:     s.levelBefore,
		LevelAfter:      s.progress.UserStats.Level,
		LevelUps:        s.totals.LevelUps,
		TotalXP:         s.progress.UserStats.TotalXP,
		Streak:          s.progress.UserStats.CurrentStreak,
		Completed:       s.phase == PhaseComplete,
	}
}
