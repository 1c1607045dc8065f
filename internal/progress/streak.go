package progress

// streakMilestones are the day counts celebrated explicitly.
var streakMilestones = []int{3, 7, 14, 30}

// NextStreakMilestone returns the next milestone above the current streak.
func NextStreakMilestone(current int) int {
	for _, m := range streakMilestones {
		if m > current {
			return m
		}
	}
	// Beyond 30, every 30 days.
	return ((current / 30) + 1) * 30
}

// IsStreakMilestone reports whether a streak of days is a milestone.
func IsStreakMilestone(days int) bool {
	if days <= 0 {
		return false
	}
	for _, m := range streakMilestones {
		if m == days {
			return true
		}
	}
	return days > 30 && days%30 == 0
}

// advanceStreak applies one study day to stats. An answer on the last study
// day leaves the streak alone; the day after extends it; anything else starts
// a new streak at 1. Dates that sort before the last study day are treated as
// clock skew and ignored. Reports whether the streak grew or restarted.
func advanceStreak(stats *UserStats, today string) bool {
	last := stats.LastStudyDate
	if last == today || (last != "" && today < last) {
		return false
	}

	stats.TodayXP = 0
	yesterday, err := DayBefore(today)
	if err == nil && last != "" && last == yesterday {
		stats.CurrentStreak++
	} else {
		stats.CurrentStreak = 1
	}
	stats.LongestStreak = max(stats.LongestStreak, stats.CurrentStreak)
	stats.LastStudyDate = today
	return true
}
