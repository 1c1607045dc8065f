package srs

import (
	"math"
	"time"
)

// State holds the spaced repetition state for a single item.
type State struct {
	ItemID         string    `json:"itemId"`
	EaseFactor     float64   `json:"easeFactor"`
	Interval       int       `json:"interval"`
	Repetitions    int       `json:"repetitions"`
	NextReviewDue  time.Time `json:"nextReviewDue"`
	LastReviewedAt time.Time `json:"lastReviewedAt,omitzero"`
	CorrectCount   int       `json:"correctCount"`
	IncorrectCount int       `json:"incorrectCount"`
}

// NewState returns the state of an item on first exposure: default ease,
// no interval and due immediately.
func NewState(itemID string, now time.Time) State {
	return State{
		ItemID:        itemID,
		EaseFactor:    DefaultEaseFactor,
		NextReviewDue: now,
	}
}

// Reviewed reports whether the item has ever been answered.
func (s State) Reviewed() bool {
	return !s.LastReviewedAt.IsZero()
}

// IsDue returns true if the item is due for review (at or past the due time).
func (s State) IsDue(now time.Time) bool {
	return !now.Before(s.NextReviewDue)
}

// OverdueDays returns how many days past due the item is. The value is
// negative when the item is not yet due.
func (s State) OverdueDays(now time.Time) float64 {
	return float64(now.Sub(s.NextReviewDue)) / float64(Day)
}

// Priority ranks due items: more overdue and lower ease both rank higher.
func (s State) Priority(now time.Time) float64 {
	return s.OverdueDays(now) + (MaxEaseFactor - s.EaseFactor)
}

// DaysUntilReview returns the number of whole days until the item is due,
// rounded up. Returns 0 if already due.
func (s State) DaysUntilReview(now time.Time) int {
	if s.IsDue(now) {
		return 0
	}
	return int(math.Ceil(-s.OverdueDays(now)))
}

// Accuracy returns the lifetime share of correct answers in [0, 1].
func (s State) Accuracy() float64 {
	total := s.CorrectCount + s.IncorrectCount
	if total == 0 {
		return 0
	}
	return float64(s.CorrectCount) / float64(total)
}

// Status describes an item's learning status for display.
type Status string

const (
	StatusNew      Status = "new"
	StatusDue      Status = "due"
	StatusLearning Status = "learning"
	StatusMastered Status = "mastered"
)

// Status returns the display status of the item at now.
func (s State) Status(now time.Time) Status {
	switch {
	case !s.Reviewed():
		return StatusNew
	case s.IsDue(now):
		return StatusDue
	case s.Repetitions > 0 && s.Interval > MasteredInterval:
		return StatusMastered
	default:
		return StatusLearning
	}
}
