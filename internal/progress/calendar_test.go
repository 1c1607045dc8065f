package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarDate(t *testing.T) {
	at := time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-09", UTC.Date(at))

	plus3 := Calendar{Location: time.FixedZone("+03", 3*60*60)}
	assert.Equal(t, "2025-03-10", plus3.Date(at))
}

func TestDayBefore(t *testing.T) {
	got, err := DayBefore("2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-28", got)

	got, err = DayBefore("2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", got)

	_, err = DayBefore("yesterday")
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	n, err := DaysBetween("2025-02-27", "2025-03-02")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStreakMilestones(t *testing.T) {
	tests := []struct {
		current int
		want    int
	}{
		{0, 3}, {2, 3}, {3, 7}, {6, 7}, {7, 14}, {14, 30}, {29, 30}, {30, 60}, {61, 90},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NextStreakMilestone(tt.current), "current=%d", tt.current)
	}

	assert.True(t, IsStreakMilestone(7))
	assert.True(t, IsStreakMilestone(90))
	assert.False(t, IsStreakMilestone(8))
	assert.False(t, IsStreakMilestone(0))
}

func TestUserStatsActiveStreak(t *testing.T) {
	u := UserStats{CurrentStreak: 4, LastStudyDate: "2025-03-09", TodayXP: 30}
	assert.Equal(t, 4, u.ActiveStreak("2025-03-09"))
	assert.Equal(t, 4, u.ActiveStreak("2025-03-10"))
	assert.Equal(t, 0, u.ActiveStreak("2025-03-11"))

	assert.Equal(t, 30, u.XPOn("2025-03-09"))
	assert.Equal(t, 0, u.XPOn("2025-03-10"))
}
