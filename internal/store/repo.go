package store

import (
	"context"
	"time"
)

// KV is a byte-oriented key-value store. Get reports ok=false for a key that
// was never written or has been deleted.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Snapshot is a point-in-time copy of an encoded progress document.
type Snapshot struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	Reason    string
	Data      []byte
}

// SnapshotRepo manages progress snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// AnswerEventData captures one graded answer.
type AnswerEventData struct {
	SessionID    string
	ItemID       string
	Quality      int
	Correct      bool
	EaseFactor   float64
	IntervalDays int
	XPAwarded    int
	Timestamp    time.Time
}

// AnswerEventRecord is a persisted answer event.
type AnswerEventRecord struct {
	AnswerEventData
	Sequence int64
}

// SessionEventData captures a session lifecycle transition.
type SessionEventData struct {
	SessionID        string
	Action           string // "start" or "end"
	ItemsServed      int
	CorrectAnswers   int
	IncorrectAnswers int
	XPEarned         int
	DurationSecs     int
	Timestamp        time.Time
}

// SessionSummaryRecord is one finished session as shown in history views.
type SessionSummaryRecord struct {
	SessionID        string
	Timestamp        time.Time
	ItemsServed      int
	CorrectAnswers   int
	IncorrectAnswers int
	XPEarned         int
	DurationSecs     int
	Sequence         int64
}

// AnswerCounts aggregates answer events.
type AnswerCounts struct {
	Total   int
	Correct int
	Items   int
}

// EventRepo provides append and query access to the study event log.
type EventRepo interface {
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error)
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)
	AnswerCounts(ctx context.Context, since time.Time) (AnswerCounts, error)
}
