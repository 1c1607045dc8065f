package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// snapshotRepo implements SnapshotRepo. Snapshots draw their key from the
// global sequence so they order against events.
type snapshotRepo struct {
	db  *sqlx.DB
	seq *sequenceCounter
}

type snapshotRow struct {
	Sequence int64  `db:"sequence"`
	Ts       int64  `db:"ts"`
	Reason   string `db:"reason"`
	Data     []byte `db:"data"`
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return errors.Wrap(err, "next sequence")
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now()
	}
	data := snap.Data
	if data == nil {
		data = []byte{}
	}

	_, err = r.db.NamedExecContext(ctx,
		`INSERT INTO snapshots (sequence, ts, reason, data) VALUES (:sequence, :ts, :reason, :data)`,
		snapshotRow{Sequence: seqNum, Ts: snap.Timestamp.UnixMilli(), Reason: snap.Reason, Data: data})
	if err != nil {
		return errors.Wrap(err, "save snapshot")
	}
	snap.ID = seqNum
	snap.Sequence = seqNum
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	var row snapshotRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM snapshots ORDER BY sequence DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "query latest snapshot")
	}
	return &Snapshot{
		ID:        row.Sequence,
		Sequence:  row.Sequence,
		Timestamp: time.UnixMilli(row.Ts),
		Reason:    row.Reason,
		Data:      row.Data,
	}, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	// Find the threshold: the sequence of the Nth most recent snapshot.
	var threshold int64
	err := r.db.GetContext(ctx, &threshold, r.db.Rebind(
		`SELECT sequence FROM snapshots ORDER BY sequence DESC LIMIT 1 OFFSET ?`), keep)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // fewer than keep snapshots exist
	}
	if err != nil {
		return errors.Wrap(err, "query snapshots for prune")
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM snapshots WHERE sequence <= ?`), threshold); err != nil {
		return errors.Wrap(err, "prune snapshots")
	}
	return nil
}
