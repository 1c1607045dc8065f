package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

type sessionRow struct {
	Sequence         int64  `db:"sequence"`
	Ts               int64  `db:"ts"`
	SessionID        string `db:"session_id"`
	Action           string `db:"action"`
	ItemsServed      int    `db:"items_served"`
	CorrectAnswers   int    `db:"correct_answers"`
	IncorrectAnswers int    `db:"incorrect_answers"`
	XPEarned         int    `db:"xp_earned"`
	DurationSecs     int    `db:"duration_secs"`
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return errors.Wrap(err, "next sequence")
	}

	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO session_events
			(sequence, ts, session_id, action, items_served, correct_answers, incorrect_answers, xp_earned, duration_secs)
		VALUES
			(:sequence, :ts, :session_id, :action, :items_served, :correct_answers, :incorrect_answers, :xp_earned, :duration_secs)`,
		sessionRow{
			Sequence:         seqNum,
			Ts:               stamp(data.Timestamp),
			SessionID:        data.SessionID,
			Action:           data.Action,
			ItemsServed:      data.ItemsServed,
			CorrectAnswers:   data.CorrectAnswers,
			IncorrectAnswers: data.IncorrectAnswers,
			XPEarned:         data.XPEarned,
			DurationSecs:     data.DurationSecs,
		})
	if err != nil {
		return errors.Wrap(err, "save session event")
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	query, args := buildQuery(`SELECT * FROM session_events`, []string{"action = 'end'"}, opts)

	var rows []sessionRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "query session summaries")
	}

	records := make([]SessionSummaryRecord, len(rows))
	for i, e := range rows {
		records[i] = SessionSummaryRecord{
			SessionID:        e.SessionID,
			Timestamp:        time.UnixMilli(e.Ts),
			ItemsServed:      e.ItemsServed,
			CorrectAnswers:   e.CorrectAnswers,
			IncorrectAnswers: e.IncorrectAnswers,
			XPEarned:         e.XPEarned,
			DurationSecs:     e.DurationSecs,
			Sequence:         e.Sequence,
		}
	}
	return records, nil
}
