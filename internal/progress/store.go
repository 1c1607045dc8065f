package progress

import (
	"maps"
	"slices"
	"time"

	"github.com/abhisek/lexiz/internal/srs"
)

// DefaultDailyGoal is the daily XP target for new learners.
const DefaultDailyGoal = 50

// DailyStat aggregates the answers given on one calendar day.
type DailyStat struct {
	Date             string  `json:"date"`
	ItemsStudied     int     `json:"itemsStudied"`
	CorrectAnswers   int     `json:"correctAnswers"`
	IncorrectAnswers int     `json:"incorrectAnswers"`
	AccuracyPercent  float64 `json:"accuracyPercent"`
}

// Record adds one answer and recomputes the accuracy.
func (d *DailyStat) Record(correct bool) {
	d.ItemsStudied++
	if correct {
		d.CorrectAnswers++
	} else {
		d.IncorrectAnswers++
	}
	d.AccuracyPercent = accuracyPercent(d.CorrectAnswers, d.IncorrectAnswers)
}

// UserStats is the learner-wide gamification state.
type UserStats struct {
	TotalXP       int    `json:"totalXp"`
	Level         int    `json:"level"`
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
	LastStudyDate string `json:"lastStudyDate,omitempty"`
	TodayXP       int    `json:"todayXp"`
	DailyGoal     int    `json:"dailyGoal"`
}

// XPOn returns the XP earned on the given day. TodayXP only belongs to
// LastStudyDate, so any other day reads as 0.
func (u UserStats) XPOn(date string) int {
	if u.LastStudyDate != date {
		return 0
	}
	return u.TodayXP
}

// ActiveStreak returns the streak as it stands on date: a streak whose last
// study day is neither date nor the day before has already lapsed.
func (u UserStats) ActiveStreak(date string) int {
	if u.LastStudyDate == date {
		return u.CurrentStreak
	}
	if yesterday, err := DayBefore(date); err == nil && u.LastStudyDate == yesterday {
		return u.CurrentStreak
	}
	return 0
}

// Store is the aggregate root of persisted learner progress: one scheduling
// state per studied item, the per-day history and the user stats.
type Store struct {
	Items      map[string]srs.State
	DailyStats []DailyStat
	UserStats  UserStats
}

// NewStore returns an empty store at level 1.
func NewStore(levels Levels, dailyGoal int) *Store {
	if dailyGoal <= 0 {
		dailyGoal = DefaultDailyGoal
	}
	return &Store{
		Items: make(map[string]srs.State),
		UserStats: UserStats{
			Level:     levels.LevelFor(0),
			DailyGoal: dailyGoal,
		},
	}
}

// Clone returns a deep copy of s.
func (s *Store) Clone() *Store {
	out := &Store{
		Items:      maps.Clone(s.Items),
		DailyStats: slices.Clone(s.DailyStats),
		UserStats:  s.UserStats,
	}
	if out.Items == nil {
		out.Items = make(map[string]srs.State)
	}
	return out
}

// State returns the scheduling state of an item, if it has one.
func (s *Store) State(itemID string) (srs.State, bool) {
	st, ok := s.Items[itemID]
	return st, ok
}

// Day returns the stats of date, or a zero DailyStat for that date.
func (s *Store) Day(date string) DailyStat {
	if i := s.dayIndex(date); i >= 0 {
		return s.DailyStats[i]
	}
	return DailyStat{Date: date}
}

// Today returns the stats of the current calendar day.
func (s *Store) Today(cal Calendar, now time.Time) DailyStat {
	return s.Day(cal.Date(now))
}

func (s *Store) dayIndex(date string) int {
	for i := len(s.DailyStats) - 1; i >= 0; i-- {
		if s.DailyStats[i].Date == date {
			return i
		}
	}
	return -1
}

// recordDay finds or appends date and records one answer on it.
func (s *Store) recordDay(date string, correct bool) DailyStat {
	i := s.dayIndex(date)
	if i < 0 {
		s.DailyStats = append(s.DailyStats, DailyStat{Date: date})
		i = len(s.DailyStats) - 1
	}
	s.DailyStats[i].Record(correct)
	return s.DailyStats[i]
}

// Totals is a lifetime summary over the daily history.
type Totals struct {
	ItemsReviewed   int
	Answers         int
	Correct         int
	AccuracyPercent float64
	DaysStudied     int
}

// Totals sums the whole history.
func (s *Store) Totals() Totals {
	var t Totals
	for _, st := range s.Items {
		if st.Reviewed() {
			t.ItemsReviewed++
		}
	}
	for _, d := range s.DailyStats {
		t.Answers += d.ItemsStudied
		t.Correct += d.CorrectAnswers
		if d.ItemsStudied > 0 {
			t.DaysStudied++
		}
	}
	t.AccuracyPercent = accuracyPercent(t.Correct, t.Answers-t.Correct)
	return t
}

// Prune drops DailyStat rows older than keepDays before the day of now and
// returns how many were removed.
func (s *Store) Prune(cal Calendar, now time.Time, keepDays int) int {
	cutoff := cal.Date(now.AddDate(0, 0, -keepDays))
	before := len(s.DailyStats)
	s.DailyStats = slices.DeleteFunc(s.DailyStats, func(d DailyStat) bool {
		return d.Date < cutoff
	})
	return before - len(s.DailyStats)
}

func accuracyPercent(correct, incorrect int) float64 {
	total := correct + incorrect
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}
