package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// dialect holds the column types that differ between drivers.
type dialect struct {
	blob  string
	float string
}

var dialects = map[string]dialect{
	DriverSQLite:   {blob: "BLOB", float: "REAL"},
	DriverPostgres: {blob: "BYTEA", float: "DOUBLE PRECISION"},
}

// Timestamps are stored as Unix milliseconds so both drivers scan them the
// same way.
func schemaStatements(d dialect) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS kv_entries (
			name TEXT PRIMARY KEY,
			data %s NOT NULL,
			updated_at BIGINT NOT NULL
		)`, d.blob),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS answer_events (
			sequence BIGINT PRIMARY KEY,
			ts BIGINT NOT NULL,
			session_id TEXT NOT NULL,
			item_id TEXT NOT NULL,
			quality INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			ease_factor %s NOT NULL,
			interval_days INTEGER NOT NULL,
			xp_awarded INTEGER NOT NULL
		)`, d.float),
		`CREATE INDEX IF NOT EXISTS answer_events_ts ON answer_events (ts)`,
		`CREATE INDEX IF NOT EXISTS answer_events_item ON answer_events (item_id)`,
		`CREATE TABLE IF NOT EXISTS session_events (
			sequence BIGINT PRIMARY KEY,
			ts BIGINT NOT NULL,
			session_id TEXT NOT NULL,
			action TEXT NOT NULL,
			items_served INTEGER NOT NULL,
			correct_answers INTEGER NOT NULL,
			incorrect_answers INTEGER NOT NULL,
			xp_earned INTEGER NOT NULL,
			duration_secs INTEGER NOT NULL
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS snapshots (
			sequence BIGINT PRIMARY KEY,
			ts BIGINT NOT NULL,
			reason TEXT NOT NULL,
			data %s NOT NULL
		)`, d.blob),
	}
}

func createSchema(db *sqlx.DB, d dialect) error {
	for _, stmt := range schemaStatements(d) {
		if _, err := db.Exec(stmt); err != nil {
			return errors.Wrap(err, "exec schema statement")
		}
	}
	return nil
}
