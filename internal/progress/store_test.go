package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStoreClone_IsDeep(t *testing.T) {
	l := newTestLedger()
	ps, _, _ := l.RecordResult(NewStore(l.Levels, 0), "a", true, day1)

	c := ps.Clone()
	c.DailyStats[0].ItemsStudied = 99
	delete(c.Items, "a")
	c.UserStats.TotalXP = 1000

	assert.Equal(t, 1, ps.DailyStats[0].ItemsStudied)
	assert.Contains(t, ps.Items, "a")
	assert.Equal(t, 10, ps.UserStats.TotalXP)
}

func TestStoreToday(t *testing.T) {
	l := newTestLedger()
	ps, _, _ := l.RecordResult(NewStore(l.Levels, 0), "a", true, day1)

	assert.Equal(t, 1, ps.Today(UTC, day1).ItemsStudied)
	other := ps.Today(UTC, day1.AddDate(0, 0, 1))
	assert.Equal(t, "2025-01-02", other.Date)
	assert.Zero(t, other.ItemsStudied)
}

func TestStoreTotals(t *testing.T) {
	l := newTestLedger()
	ps := NewStore(l.Levels, 0)
	ps, _, _ = l.RecordResult(ps, "a", true, day1)
	ps, _, _ = l.RecordResult(ps, "b", false, day1)
	ps, _, _ = l.RecordResult(ps, "a", true, day1.AddDate(0, 0, 1))
	ps, _, _ = l.RecordResult(ps, "c", true, day1.AddDate(0, 0, 1))

	tot := ps.Totals()
	assert.Equal(t, 3, tot.ItemsReviewed)
	assert.Equal(t, 4, tot.Answers)
	assert.Equal(t, 3, tot.Correct)
	assert.InDelta(t, 75.0, tot.AccuracyPercent, 1e-9)
	assert.Equal(t, 2, tot.DaysStudied)
}

func TestStorePrune(t *testing.T) {
	ps := NewStore(DefaultLevels(), 0)
	for i := 0; i < 10; i++ {
		ps.DailyStats = append(ps.DailyStats, DailyStat{Date: UTC.Date(day1.AddDate(0, 0, i)), ItemsStudied: 1})
	}
	now := day1.AddDate(0, 0, 9).Add(time.Hour)

	removed := ps.Prune(UTC, now, 3)
	assert.Equal(t, 6, removed)
	assert.Len(t, ps.DailyStats, 4)
	assert.Equal(t, "2025-01-07", ps.DailyStats[0].Date)
}
