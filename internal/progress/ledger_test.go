package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexiz/internal/srs"
)

var day1 = time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

func newTestLedger() Ledger {
	return NewLedger(UTC)
}

func TestRecordAnswer_CreatesStateLazily(t *testing.T) {
	l := newTestLedger()
	ps := NewStore(l.Levels, 0)

	out, outcome, err := l.RecordAnswer(ps, "chat", srs.QualityCorrectHesitation, day1)
	require.NoError(t, err)

	st, ok := out.State("chat")
	require.True(t, ok)
	assert.Equal(t, 1, st.Repetitions)
	assert.Equal(t, 3, st.Interval)
	assert.Equal(t, st, outcome.State)
	assert.True(t, outcome.Correct)

	_, ok = ps.State("chat")
	assert.False(t, ok, "input store must not change")
	assert.Empty(t, ps.DailyStats)
	assert.Zero(t, ps.UserStats.TotalXP)
}

func TestRecordAnswer_DailyStat(t *testing.T) {
	l := newTestLedger()
	ps := NewStore(l.Levels, 0)

	var err error
	ps, _, err = l.RecordResult(ps, "a", true, day1)
	require.NoError(t, err)
	ps, _, err = l.RecordResult(ps, "b", false, day1.Add(time.Hour))
	require.NoError(t, err)
	ps, _, err = l.RecordResult(ps, "c", true, day1.Add(2*time.Hour))
	require.NoError(t, err)

	require.Len(t, ps.DailyStats, 1)
	d := ps.DailyStats[0]
	assert.Equal(t, "2025-01-01", d.Date)
	assert.Equal(t, 3, d.ItemsStudied)
	assert.Equal(t, 2, d.CorrectAnswers)
	assert.Equal(t, 1, d.IncorrectAnswers)
	assert.InDelta(t, 66.666, d.AccuracyPercent, 0.01)

	ps, _, err = l.RecordResult(ps, "a", true, day1.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, ps.DailyStats, 2)
	assert.Equal(t, "2025-01-02", ps.DailyStats[1].Date)
}

func TestRecordAnswer_XPOnlyOnCorrect(t *testing.T) {
	l := newTestLedger()
	ps := NewStore(l.Levels, 0)

	ps, outcome, err := l.RecordResult(ps, "a", false, day1)
	require.NoError(t, err)
	assert.Zero(t, outcome.XPAwarded)
	assert.Zero(t, ps.UserStats.TotalXP)

	ps, outcome, err = l.RecordResult(ps, "b", true, day1)
	require.NoError(t, err)
	assert.Equal(t, DefaultXPPerCorrect, outcome.XPAwarded)
	assert.Equal(t, 10, ps.UserStats.TotalXP)
	assert.Equal(t, 10, ps.UserStats.TodayXP)
}

func TestRecordAnswer_StreakAcrossDays(t *testing.T) {
	l := newTestLedger()
	ps := NewStore(l.Levels, 0)

	ps, _, err := l.RecordResult(ps, "a", true, day1)
	require.NoError(t, err)
	assert.Equal(t, 1, ps.UserStats.CurrentStreak)
	assert.Equal(t, 1, ps.UserStats.LongestStreak)

	ps, _, err = l.RecordResult(ps, "b", true, day1.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, ps.UserStats.CurrentStreak, "same day leaves the streak alone")

	ps, _, err = l.RecordResult(ps, "a", true, day1.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, ps.UserStats.CurrentStreak)
	assert.Equal(t, 2, ps.UserStats.LongestStreak)

	ps, _, err = l.RecordResult(ps, "a", true, day1.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, 1, ps.UserStats.CurrentStreak)
	assert.Equal(t, 2, ps.UserStats.LongestStreak)
	assert.Equal(t, "2025-01-04", ps.UserStats.LastStudyDate)
}

func TestRecordAnswer_IncorrectStillCountsForStreak(t *testing.T) {
	l := newTestLedger()
	ps := NewStore(l.Levels, 0)

	ps, _, err := l.RecordResult(ps, "a", false, day1)
	require.NoError(t, err)
	ps, _, err = l.RecordResult(ps, "a", false, day1.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, ps.UserStats.CurrentStreak)
}

func TestRecordAnswer_TodayXPResetsOnNewDay(t *testing.T) {
	l := newTestLedger()
	ps := NewStore(l.Levels, 0)

	ps, _, _ = l.RecordResult(ps, "a", true, day1)
	ps, _, _ = l.RecordResult(ps, "b", true, day1)
	assert.Equal(t, 20, ps.UserStats.TodayXP)

	ps, _, err := l.RecordResult(ps, "c", false, day1.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Zero(t, ps.UserStats.TodayXP)
	assert.Equal(t, 20, ps.UserStats.TotalXP)
}

func TestRecordAnswer_LevelUp(t *testing.T) {
	l := newTestLedger()
	ps := NewStore(l.Levels, 0)
	ps.UserStats.TotalXP = 95

	ps, outcome, err := l.RecordResult(ps, "a", true, day1)
	require.NoError(t, err)
	assert.True(t, outcome.LeveledUp())
	assert.Equal(t, 1, outcome.LevelBefore)
	assert.Equal(t, 2, outcome.LevelAfter)
	assert.Equal(t, 2, ps.UserStats.Level)
}

func TestRecordAnswer_GoalReachedOnce(t *testing.T) {
	l := newTestLedger()
	ps := NewStore(l.Levels, 20)

	ps, outcome, _ := l.RecordResult(ps, "a", true, day1)
	assert.False(t, outcome.GoalReached)
	ps, outcome, _ = l.RecordResult(ps, "b", true, day1)
	assert.True(t, outcome.GoalReached)
	_, outcome, _ = l.RecordResult(ps, "c", true, day1)
	assert.False(t, outcome.GoalReached)
}

func TestRecordAnswer_StreakMilestone(t *testing.T) {
	l := newTestLedger()
	ps := NewStore(l.Levels, 0)

	var outcome *Outcome
	for i := 0; i < 3; i++ {
		var err error
		ps, outcome, err = l.RecordResult(ps, "a", true, day1.AddDate(0, 0, i))
		require.NoError(t, err)
	}
	assert.Equal(t, 3, outcome.StreakDays)

	_, outcome, _ = l.RecordResult(ps, "b", true, day1.AddDate(0, 0, 2).Add(time.Hour))
	assert.Zero(t, outcome.StreakDays, "second answer on the milestone day")
}

func TestRecordAnswer_InvalidQualityLeavesStoreUntouched(t *testing.T) {
	l := newTestLedger()
	ps := NewStore(l.Levels, 0)

	out, outcome, err := l.RecordAnswer(ps, "a", 9, day1)
	require.ErrorIs(t, err, srs.ErrInvalidQuality)
	assert.Nil(t, out)
	assert.Nil(t, outcome)
	assert.Empty(t, ps.Items)
}

func TestRecordAnswer_LocalDayBoundary(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	l := NewLedger(Calendar{Location: tokyo})
	ps := NewStore(l.Levels, 0)

	// 23:30 UTC on Jan 1 is already Jan 2 in Tokyo.
	ps, outcome, err := l.RecordResult(ps, "a", true, time.Date(2025, 1, 1, 23, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2025-01-02", outcome.Day.Date)
	assert.Equal(t, "2025-01-02", ps.UserStats.LastStudyDate)
}

func TestRecordAnswer_LevelMonotonicInXP(t *testing.T) {
	l := newTestLedger()
	ps := NewStore(l.Levels, 0)
	prev := ps.UserStats.Level
	for i := 0; i < 200; i++ {
		var err error
		ps, _, err = l.RecordResult(ps, "a", i%3 != 0, day1.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		require.GreaterOrEqual(t, ps.UserStats.Level, prev)
		require.Equal(t, l.Levels.LevelFor(ps.UserStats.TotalXP), ps.UserStats.Level)
		prev = ps.UserStats.Level
	}
}
