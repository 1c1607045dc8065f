package progress

import (
	"time"

	"github.com/abhisek/lexiz/internal/srs"
)

// DefaultXPPerCorrect is the XP granted for each correct answer.
const DefaultXPPerCorrect = 10

// Ledger turns answer events into progress updates.
type Ledger struct {
	Calendar     Calendar
	Levels       Levels
	XPPerCorrect int
}

// NewLedger returns a ledger with the default level curve and XP award.
func NewLedger(cal Calendar) Ledger {
	return Ledger{
		Calendar:     cal,
		Levels:       DefaultLevels(),
		XPPerCorrect: DefaultXPPerCorrect,
	}
}

// Outcome reports everything one answer changed.
type Outcome struct {
	State       srs.State
	Correct     bool
	Day         DailyStat
	XPAwarded   int
	LevelBefore int
	LevelAfter  int
	// StreakDays is set when this answer moved the streak onto a milestone.
	StreakDays int
	// GoalReached is set when this answer pushed today's XP to the daily goal.
	GoalReached bool
}

// LeveledUp reports whether the answer crossed a level threshold.
func (o *Outcome) LeveledUp() bool {
	return o.LevelAfter > o.LevelBefore
}

// RecordAnswer applies one answer to a copy of ps and returns it. The item's
// scheduling state, the day's stats and the user stats all change together
// in the returned store; ps itself is never modified, so a caller that fails
// to persist the result can simply drop it.
func (l Ledger) RecordAnswer(ps *Store, itemID string, q srs.Quality, at time.Time) (*Store, *Outcome, error) {
	current, ok := ps.State(itemID)
	if !ok {
		current = srs.NewState(itemID, at)
	}
	next, err := srs.ComputeNext(current, q, at)
	if err != nil {
		return nil, nil, err
	}

	out := ps.Clone()
	out.Items[itemID] = next

	correct := q.Passed()
	today := l.Calendar.Date(at)
	day := out.recordDay(today, correct)

	stats := &out.UserStats
	levelBefore := l.Levels.LevelFor(stats.TotalXP)
	if stats.DailyGoal <= 0 {
		stats.DailyGoal = DefaultDailyGoal
	}
	xpBefore := stats.XPOn(today)
	moved := advanceStreak(stats, today)

	var award int
	if correct {
		award = l.XPPerCorrect
		stats.TotalXP += award
		if stats.LastStudyDate == today {
			stats.TodayXP += award
		}
	}
	stats.Level = l.Levels.LevelFor(stats.TotalXP)

	outcome := &Outcome{
		State:       next,
		Correct:     correct,
		Day:         day,
		XPAwarded:   award,
		LevelBefore: levelBefore,
		LevelAfter:  stats.Level,
		GoalReached: xpBefore < stats.DailyGoal && stats.XPOn(today) >= stats.DailyGoal,
	}
	if moved && IsStreakMilestone(stats.CurrentStreak) {
		outcome.StreakDays = stats.CurrentStreak
	}
	return out, outcome, nil
}

// RecordResult records a plain correct/incorrect answer.
func (l Ledger) RecordResult(ps *Store, itemID string, correct bool, at time.Time) (*Store, *Outcome, error) {
	return l.RecordAnswer(ps, itemID, srs.QualityFromAnswer(correct, false), at)
}
