package progress

import "math"

// Level curve defaults: level 1 spans 0-99 XP, level 2 needs 120 more, and
// each following level needs 20% more than the one before.
const (
	DefaultLevelBase       = 100
	DefaultLevelMultiplier = 1.2
)

// Levels is the XP-to-level step function.
type Levels struct {
	Base       int
	Multiplier float64
}

// DefaultLevels returns the standard level curve.
func DefaultLevels() Levels {
	return Levels{Base: DefaultLevelBase, Multiplier: DefaultLevelMultiplier}
}

// LevelProgress describes the position inside the current level.
type LevelProgress struct {
	Level    int
	Current  int // XP earned inside the current level
	Required int // XP needed to finish the current level
	Percent  int // 0-100
}

// LevelFor returns the level reached with totalXP.
func (l Levels) LevelFor(totalXP int) int {
	return l.Progress(totalXP).Level
}

// Progress walks the thresholds, flooring each step, and reports where
// totalXP lands.
func (l Levels) Progress(totalXP int) LevelProgress {
	required := l.Base
	if required <= 0 {
		required = DefaultLevelBase
	}
	mult := l.Multiplier
	if mult < 1 {
		mult = 1
	}

	level := 1
	rest := max(0, totalXP)
	for rest >= required {
		rest -= required
		level++
		required = int(math.Floor(float64(required) * mult))
	}

	return LevelProgress{
		Level:    level,
		Current:  rest,
		Required: required,
		Percent:  min(100, rest*100/required),
	}
}

// Threshold returns the total XP at which level starts.
func (l Levels) Threshold(level int) int {
	total := 0
	required := l.Base
	if required <= 0 {
		required = DefaultLevelBase
	}
	mult := max(1, l.Multiplier)
	for lv := 1; lv < level; lv++ {
		total += required
		required = int(math.Floor(float64(required) * mult))
	}
	return total
}
