package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/abhisek/lexiz/internal/clock"
	"github.com/abhisek/lexiz/internal/progress"
	"github.com/abhisek/lexiz/internal/srs"
	"github.com/abhisek/lexiz/internal/store"
)

// DefaultLimit is the queue size used when Options.Limit is not positive.
const DefaultLimit = 10

var (
	// ErrNotAtHead is returned when an answer targets an item other than
	// the current one. The concrete error is an *OutOfOrderError.
	ErrNotAtHead = errors.New("answer does not target the current item")

	// ErrAlreadyAnswered is returned for a second answer to the same item.
	ErrAlreadyAnswered = errors.New("current item already answered")

	// ErrSessionComplete is returned for answers after the last item.
	ErrSessionComplete = errors.New("session is complete")

	// ErrCannotAdvance is returned by Advance while the gate is closed.
	ErrCannotAdvance = errors.New("cannot advance past the current item yet")

	// ErrNotAnswered is returned by Acknowledge before an answer was given.
	ErrNotAnswered = errors.New("current item has not been answered")
)

// OutOfOrderError reports which item was expected at the head.
type OutOfOrderError struct {
	Expected string
	Got      string
}

func (e *OutOfOrderError) Error() string {
	return fmt.Sprintf("answer for %q but current item is %q", e.Got, e.Expected)
}

func (e *OutOfOrderError) Is(target error) bool {
	return target == ErrNotAtHead
}

// Persister saves the full progress store after every answer.
type Persister interface {
	Save(ctx context.Context, s *progress.Store) error
}

// EventRecorder appends study events to a log. Failures are logged, never
// surfaced to the learner.
type EventRecorder interface {
	AppendAnswerEvent(ctx context.Context, data store.AnswerEventData) error
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
}

// Deps are the collaborators a session needs.
type Deps struct {
	Ledger    progress.Ledger
	Persister Persister
	Events    EventRecorder // optional
	Clock     clock.Clock   // defaults to the system clock
	Logger    *slog.Logger  // defaults to slog.Default()
}

// Options configure queue size and advancement.
type Options struct {
	Limit int
	Queue srs.QueueOptions
	// HoldOnIncorrect keeps the gate closed after an incorrect answer until
	// Acknowledge is called. Correct answers always open it.
	HoldOnIncorrect bool
}

// DefaultOptions returns a ten-item queue that holds on incorrect answers.
func DefaultOptions() Options {
	return Options{
		Limit:           DefaultLimit,
		Queue:           srs.DefaultQueueOptions(),
		HoldOnIncorrect: true,
	}
}

// ItemPhase is where the current item stands.
type ItemPhase int

const (
	PhaseUnanswered   ItemPhase = iota // Waiting for an answer
	PhaseAnswered                      // Answered, gate may still be closed
	PhaseAcknowledged                  // Incorrect answer acknowledged, gate open
	PhaseComplete                      // Cursor is past the last item
)

func (p ItemPhase) String() string {
	switch p {
	case PhaseUnanswered:
		return "unanswered"
	case PhaseAnswered:
		return "answered"
	case PhaseAcknowledged:
		return "acknowledged"
	case PhaseComplete:
		return "complete"
	}
	return "unknown"
}

// Totals are additive counters over the session's lifetime.
type Totals struct {
	Answered  int
	Correct   int
	Incorrect int
	XPEarned  int
	LevelUps  int
}

// AccuracyPercent returns correct/answered as a percentage, 0 with no answers.
func (t Totals) AccuracyPercent() float64 {
	if t.Answered == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Answered) * 100
}

// AnswerResult is what Answer reports back to the caller.
type AnswerResult struct {
	Outcome    *progress.Outcome
	Totals     Totals
	CanAdvance bool
}
