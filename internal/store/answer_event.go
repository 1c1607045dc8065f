package store

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// eventRepo implements EventRepo with plain SQL.
type eventRepo struct {
	db  *sqlx.DB
	seq *sequenceCounter
}

type answerRow struct {
	Sequence     int64   `db:"sequence"`
	Ts           int64   `db:"ts"`
	SessionID    string  `db:"session_id"`
	ItemID       string  `db:"item_id"`
	Quality      int     `db:"quality"`
	Correct      int     `db:"correct"`
	EaseFactor   float64 `db:"ease_factor"`
	IntervalDays int     `db:"interval_days"`
	XPAwarded    int     `db:"xp_awarded"`
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return errors.Wrap(err, "next sequence")
	}

	row := answerRow{
		Sequence:     seqNum,
		Ts:           stamp(data.Timestamp),
		SessionID:    data.SessionID,
		ItemID:       data.ItemID,
		Quality:      data.Quality,
		Correct:      boolInt(data.Correct),
		EaseFactor:   data.EaseFactor,
		IntervalDays: data.IntervalDays,
		XPAwarded:    data.XPAwarded,
	}
	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO answer_events
			(sequence, ts, session_id, item_id, quality, correct, ease_factor, interval_days, xp_awarded)
		VALUES
			(:sequence, :ts, :session_id, :item_id, :quality, :correct, :ease_factor, :interval_days, :xp_awarded)`,
		row)
	if err != nil {
		return errors.Wrap(err, "save answer event")
	}
	return nil
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error) {
	query, args := buildQuery(`SELECT * FROM answer_events`, nil, opts)

	var rows []answerRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "query answer events")
	}

	records := make([]AnswerEventRecord, len(rows))
	for i, e := range rows {
		records[i] = AnswerEventRecord{
			AnswerEventData: AnswerEventData{
				SessionID:    e.SessionID,
				ItemID:       e.ItemID,
				Quality:      e.Quality,
				Correct:      e.Correct != 0,
				EaseFactor:   e.EaseFactor,
				IntervalDays: e.IntervalDays,
				XPAwarded:    e.XPAwarded,
				Timestamp:    time.UnixMilli(e.Ts),
			},
			Sequence: e.Sequence,
		}
	}
	return records, nil
}

func (r *eventRepo) AnswerCounts(ctx context.Context, since time.Time) (AnswerCounts, error) {
	var row struct {
		Total   int `db:"total"`
		Correct int `db:"correct"`
		Items   int `db:"items"`
	}
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`
		SELECT COUNT(*) AS total,
			COALESCE(SUM(correct), 0) AS correct,
			COUNT(DISTINCT item_id) AS items
		FROM answer_events WHERE ts >= ?`), since.UnixMilli())
	if err != nil {
		return AnswerCounts{}, errors.Wrap(err, "query answer counts")
	}
	return AnswerCounts{Total: row.Total, Correct: row.Correct, Items: row.Items}, nil
}

// buildQuery appends the QueryOpts filters to base, newest first. The
// returned query uses '?' placeholders and must be rebound.
func buildQuery(base string, where []string, opts QueryOpts) (string, []any) {
	var args []any
	if opts.After > 0 {
		where = append(where, "sequence > ?")
		args = append(args, opts.After)
	}
	if opts.Before > 0 {
		where = append(where, "sequence < ?")
		args = append(args, opts.Before)
	}
	if !opts.From.IsZero() {
		where = append(where, "ts >= ?")
		args = append(args, opts.From.UnixMilli())
	}
	if !opts.To.IsZero() {
		where = append(where, "ts <= ?")
		args = append(args, opts.To.UnixMilli())
	}

	var b strings.Builder
	b.WriteString(base)
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY sequence DESC")
	if opts.Limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, opts.Limit)
	}
	return b.String(), args
}

func stamp(t time.Time) int64 {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UnixMilli()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
