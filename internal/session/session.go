package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/abhisek/lexiz/internal/clock"
	"github.com/abhisek/lexiz/internal/progress"
	"github.com/abhisek/lexiz/internal/srs"
	"github.com/abhisek/lexiz/internal/store"
)

// Session is one study run over a queue that is fixed at Start. It is safe
// for concurrent use; answers are applied one at a time.
type Session struct {
	mu sync.Mutex

	id      string
	deps    Deps
	opts    Options
	queue   srs.Queue
	items   []string
	started time.Time

	progress    *progress.Store
	levelBefore int

	cursor      int
	phase       ItemPhase
	lastCorrect bool
	totals      Totals

	summary *Summary
}

// Start builds the queue from itemIDs and the states in ps and opens a
// session over it. An empty queue is valid: the session starts complete.
func Start(ctx context.Context, deps Deps, ps *progress.Store, itemIDs []string, opts Options) (*Session, error) {
	if deps.Persister == nil {
		return nil, errors.New("session: persister is required")
	}
	if deps.Clock == nil {
		deps.Clock = clock.System{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if ps == nil {
		ps = progress.NewStore(deps.Ledger.Levels, 0)
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}

	now := deps.Clock.Now()
	q := srs.BuildQueue(itemIDs, ps.Items, opts.Limit, now, opts.Queue)

	s := &Session{
		id:          uuid.New().String(),
		deps:        deps,
		opts:        opts,
		queue:       q,
		items:       q.IDs(),
		started:     now,
		progress:    ps,
		levelBefore: ps.UserStats.Level,
	}
	if len(s.items) == 0 {
		s.phase = PhaseComplete
	}

	deps.Logger.Info("session started",
		"session_id", s.id, "due", len(q.Due), "new", len(q.New))
	s.recordSession(ctx, "start", store.SessionEventData{ItemsServed: len(s.items)})
	return s, nil
}

// ID returns the session's UUID.
func (s *Session) ID() string { return s.id }

// Queue returns the queue the session was built with.
func (s *Session) Queue() srs.Queue { return s.queue }

// Progress returns the latest committed progress store.
func (s *Session) Progress() *progress.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// Current returns the item at the head of the queue.
func (s *Session) Current() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseComplete {
		return "", false
	}
	return s.items[s.cursor], true
}

// Position returns the zero-based cursor and the queue length.
func (s *Session) Position() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor, len(s.items)
}

// Phase returns the state of the current item.
func (s *Session) Phase() ItemPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Done reports whether the cursor has passed the last item.
func (s *Session) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == PhaseComplete
}

// HasAnswered reports whether the current item has been answered.
func (s *Session) HasAnswered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == PhaseAnswered || s.phase == PhaseAcknowledged
}

// CanAdvance reports whether Advance would succeed.
func (s *Session) CanAdvance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canAdvance()
}

func (s *Session) canAdvance() bool {
	switch s.phase {
	case PhaseAcknowledged:
		return true
	case PhaseAnswered:
		return s.lastCorrect || !s.opts.HoldOnIncorrect
	}
	return false
}

// Totals returns the running counters.
func (s *Session) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals
}

// Answer grades the current item. itemID must be the head of the queue.
// The updated progress is persisted before the session moves on, so a
// failed save leaves the session untouched and the answer may be retried.
func (s *Session) Answer(ctx context.Context, itemID string, q srs.Quality) (*AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed() {
		return nil, ErrSessionComplete
	}
	if s.phase == PhaseAnswered || s.phase == PhaseAcknowledged {
		return nil, ErrAlreadyAnswered
	}
	if head := s.items[s.cursor]; itemID != head {
		return nil, &OutOfOrderError{Expected: head, Got: itemID}
	}

	now := s.deps.Clock.Now()
	next, outcome, err := s.deps.Ledger.RecordAnswer(s.progress, itemID, q, now)
	if err != nil {
		return nil, err
	}
	if err := s.deps.Persister.Save(ctx, next); err != nil {
		return nil, errors.Wrap(err, "persist progress")
	}

	s.progress = next
	s.phase = PhaseAnswered
	s.lastCorrect = outcome.Correct
	s.totals.Answered++
	if outcome.Correct {
		s.totals.Correct++
	} else {
		s.totals.Incorrect++
	}
	s.totals.XPEarned += outcome.XPAwarded
	if outcome.LeveledUp() {
		s.totals.LevelUps++
	}

	s.recordAnswer(ctx, q, outcome, now)

	return &AnswerResult{
		Outcome:    outcome,
		Totals:     s.totals,
		CanAdvance: s.canAdvance(),
	}, nil
}

// AnswerCorrect grades the current item from a plain result.
func (s *Session) AnswerCorrect(ctx context.Context, itemID string, correct, hard bool) (*AnswerResult, error) {
	return s.Answer(ctx, itemID, srs.QualityFromAnswer(correct, hard))
}

// Acknowledge opens the gate after an answer. It is a no-op when the gate
// is already open.
func (s *Session) Acknowledge() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed() {
		return ErrSessionComplete
	}
	if s.phase == PhaseUnanswered {
		return ErrNotAnswered
	}
	s.phase = PhaseAcknowledged
	return nil
}

// Advance moves the cursor to the next item.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed() {
		return ErrSessionComplete
	}
	if !s.canAdvance() {
		return ErrCannotAdvance
	}
	s.cursor++
	s.lastCorrect = false
	if s.cursor >= len(s.items) {
		s.phase = PhaseComplete
	} else {
		s.phase = PhaseUnanswered
	}
	return nil
}

// closed reports whether the queue is exhausted or End was called. Caller
// holds s.mu.
func (s *Session) closed() bool {
	return s.phase == PhaseComplete || s.summary != nil
}

// End closes the session and returns its summary. Calling End again returns
// the same summary without recording anything.
func (s *Session) End(ctx context.Context) *Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.summary != nil {
		return s.summary
	}

	s.summary = buildSummary(s, s.deps.Clock.Now())
	s.recordSession(ctx, "end", store.SessionEventData{
		ItemsServed:      s.summary.ItemsSeen,
		CorrectAnswers:   s.summary.Correct,
		IncorrectAnswers: s.summary.Incorrect,
		XPEarned:         s.summary.XPEarned,
		DurationSecs:     int(s.summary.Duration.Seconds()),
	})
	s.deps.Logger.Info("session ended",
		"session_id", s.id,
		"answered", s.totals.Answered,
		"correct", s.totals.Correct,
		"xp", s.totals.XPEarned)
	return s.summary
}

func (s *Session) recordAnswer(ctx context.Context, q srs.Quality, o *progress.Outcome, at time.Time) {
	if s.deps.Events == nil {
		return
	}
	err := s.deps.Events.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID:    s.id,
		ItemID:       o.State.ItemID,
		Quality:      int(q),
		Correct:      o.Correct,
		EaseFactor:   o.State.EaseFactor,
		IntervalDays: o.State.Interval,
		XPAwarded:    o.XPAwarded,
		Timestamp:    at,
	})
	if err != nil {
		s.deps.Logger.Warn("record answer event", "session_id", s.id, "error", err)
	}
}

func (s *Session) recordSession(ctx context.Context, action string, data store.SessionEventData) {
	if s.deps.Events == nil {
		return
	}
	data.SessionID = s.id
	data.Action = action
	data.Timestamp = s.deps.Clock.Now()
	if err := s.deps.Events.AppendSessionEvent(ctx, data); err != nil {
		s.deps.Logger.Warn("record session event", "session_id", s.id, "action", action, "error", err)
	}
}
