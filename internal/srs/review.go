package srs

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidQuality is returned when a quality lies outside [0, 5].
var ErrInvalidQuality = errors.New("quality must be between 0 and 5")

// ComputeNext applies one answer of the given quality to s and returns the
// resulting state. s itself is not modified.
//
// A failed recall (quality < 3) resets the repetition streak and schedules the
// item for tomorrow. A successful recall grows the interval 3 -> 7 ->
// round(interval * ease), capped at MaxInterval. The ease factor moves on
// every answer and always stays within [MinEaseFactor, MaxEaseFactor].
func ComputeNext(s State, q Quality, now time.Time) (State, error) {
	if !q.Valid() {
		return s, errors.Wrapf(ErrInvalidQuality, "got %d", q)
	}

	ease := clampEase(s.EaseFactor)
	next := s
	next.LastReviewedAt = now

	if q.Passed() {
		next.CorrectCount++
		next.Repetitions++
		switch next.Repetitions {
		case 1:
			next.Interval = FirstInterval
		case 2:
			next.Interval = SecondInterval
		default:
			next.Interval = int(math.Round(float64(s.Interval) * ease))
		}
	} else {
		next.IncorrectCount++
		next.Repetitions = 0
		next.Interval = FailInterval
	}
	next.Interval = clampInterval(next.Interval)

	// EF' = EF + (0.1 - (5-q) * (0.08 + (5-q) * 0.02))
	miss := float64(QualityPerfect - q)
	next.EaseFactor = clampEase(ease + (0.1 - miss*(0.08+miss*0.02)))

	next.NextReviewDue = now.Add(time.Duration(next.Interval) * Day)
	return next, nil
}
