// Package reminder periodically checks progress and tells the learner when
// reviews are waiting or a streak is about to lapse.
package reminder

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/lexiz/internal/progress"
	"github.com/abhisek/lexiz/internal/srs"
)

// Digest is a snapshot of what is waiting for the learner.
type Digest struct {
	At     time.Time
	Due    int
	New    int
	Streak int
	// StreakAtRisk is set when the learner studied yesterday but not yet
	// today: the streak lapses at midnight.
	StreakAtRisk bool
	TodayXP      int
	DailyGoal    int
	Level        int
}

// GoalMet reports whether today's XP reached the daily goal.
func (d Digest) GoalMet() bool {
	return d.DailyGoal > 0 && d.TodayXP >= d.DailyGoal
}

// Worthwhile reports whether the digest is worth interrupting the learner.
func (d Digest) Worthwhile() bool {
	return d.Due > 0 || d.StreakAtRisk
}

func (d Digest) String() string {
	var parts []string
	if d.Due > 0 {
		parts = append(parts, fmt.Sprintf("%d review(s) due", d.Due))
	}
	if d.StreakAtRisk {
		parts = append(parts, fmt.Sprintf("study today to keep your %d-day streak", d.Streak))
	} else if d.Streak > 0 {
		parts = append(parts, fmt.Sprintf("%d-day streak", d.Streak))
	}
	parts = append(parts, fmt.Sprintf("%d/%d XP today", d.TodayXP, d.DailyGoal))
	return strings.Join(parts, ", ")
}

// BuildDigest summarises ps for the items in itemIDs at now.
func BuildDigest(ps *progress.Store, itemIDs []string, now time.Time, cal progress.Calendar) Digest {
	// Same due/new split as a study session.
	q := srs.BuildQueue(itemIDs, ps.Items, len(itemIDs), now, srs.QueueOptions{})
	today := cal.Date(now)
	stats := ps.UserStats

	d := Digest{
		At:        now,
		Due:       len(q.Due),
		New:       len(q.New),
		Streak:    stats.ActiveStreak(today),
		TodayXP:   stats.XPOn(today),
		DailyGoal: stats.DailyGoal,
		Level:     stats.Level,
	}
	if yesterday, err := progress.DayBefore(today); err == nil {
		d.StreakAtRisk = stats.CurrentStreak > 0 && stats.LastStudyDate == yesterday
	}
	return d
}
