package srs

import "time"

// Day is the length of one scheduling interval step.
const Day = 24 * time.Hour

// Ease factor bounds and default for new items.
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
	MaxEaseFactor     = 3.0
)

// Interval schedule in days.
const (
	// FailInterval is used after any failed recall.
	FailInterval = 1
	// FirstInterval follows the first successful recall.
	FirstInterval = 3
	// SecondInterval follows the second consecutive successful recall.
	SecondInterval = 7
	// MaxInterval caps every interval at one year.
	MaxInterval = 365
	// MasteredInterval is the interval above which an item counts as mastered.
	MasteredInterval = 21
)

// Quality rates how well an item was recalled, 0 (blackout) to 5 (perfect).
type Quality int

const (
	QualityBlackout          Quality = 0 // no recall at all
	QualityIncorrect         Quality = 1 // wrong, but remembered on seeing the answer
	QualityIncorrectFamiliar Quality = 2 // wrong, answer felt familiar
	QualityCorrectDifficult  Quality = 3 // right, with serious effort
	QualityCorrectHesitation Quality = 4 // right, after some hesitation
	QualityPerfect           Quality = 5 // right, immediately
)

// PassThreshold is the lowest quality that counts as a successful recall.
const PassThreshold = QualityCorrectDifficult

// Valid reports whether q lies in [0, 5].
func (q Quality) Valid() bool {
	return q >= QualityBlackout && q <= QualityPerfect
}

// Passed reports whether q counts as a successful recall.
func (q Quality) Passed() bool {
	return q >= PassThreshold
}

// QualityFromAnswer maps the two-button UI onto the quality scale:
// incorrect -> 1, correct but hard -> 3, correct -> 4.
func QualityFromAnswer(correct, hard bool) Quality {
	if !correct {
		return QualityIncorrect
	}
	if hard {
		return QualityCorrectDifficult
	}
	return QualityCorrectHesitation
}

func clampEase(ef float64) float64 {
	return max(MinEaseFactor, min(MaxEaseFactor, ef))
}

func clampInterval(days int) int {
	return max(0, min(MaxInterval, days))
}
