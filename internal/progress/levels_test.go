package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	l := DefaultLevels()
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{219, 2},
		{220, 3},
		{363, 3},
		{364, 4},
		{-5, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, l.LevelFor(tt.xp), "xp=%d", tt.xp)
	}
}

func TestLevelProgress(t *testing.T) {
	p := DefaultLevels().Progress(160)
	assert.Equal(t, LevelProgress{Level: 2, Current: 60, Required: 120, Percent: 50}, p)
}

func TestThreshold(t *testing.T) {
	l := DefaultLevels()
	assert.Equal(t, 0, l.Threshold(1))
	assert.Equal(t, 100, l.Threshold(2))
	assert.Equal(t, 220, l.Threshold(3))
	for lv := 1; lv < 30; lv++ {
		assert.Equal(t, lv, l.LevelFor(l.Threshold(lv)))
		assert.Less(t, l.Threshold(lv), l.Threshold(lv+1))
	}
}
