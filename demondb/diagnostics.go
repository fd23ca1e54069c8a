// Copyright (C) 2026 BattleBot Developers.
// See LICENSE for copying information.

package demondb

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/CIick/BattleBot/materialize"
)

// RecordSkips writes one entry's drained ledger shard to the skip log,
// preserving emission order.
func (db *DB) RecordSkips(ctx context.Context, filename string, entries []materialize.SkipEntry) (err error) {
	defer mon.Task()(&ctx)(&err)

	if len(entries) == 0 {
		return nil
	}
	return ErrDatabase.Wrap(db.withTx(ctx, func(tx *sql.Tx) error {
		now := time.Now().UTC()
		for _, entry := range entries {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO skip_log (
					filename, reason, type_hash, field_path, detail,
					raw_snapshot, created_at
				) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				filename, entry.Reason.String(), int64(entry.TypeHash),
				entry.Path, entry.Detail, entry.RawSnapshot, now,
			)
			if err != nil {
				return err
			}
		}
		return nil
	}))
}

// RunSummary is the bookkeeping row written at the end of an extraction
// run.
type RunSummary struct {
	Revision   string
	StartedAt  time.Time
	FinishedAt time.Time
	Processed  int64
	Inserted   int64
	Duplicates int64
	Failed     int64
	Skipped    int64
	SourceDir  string
	TypesPath  string
}

// RecordRun stores a run summary.
func (db *DB) RecordRun(ctx context.Context, summary RunSummary) (err error) {
	defer mon.Task()(&ctx)(&err)

	_, err = db.db.ExecContext(ctx, `
		INSERT INTO process_runs (
			revision, started_at, finished_at, processed, inserted,
			duplicates, failed, skipped, source_dir, types_path
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.Revision, summary.StartedAt.UTC(), summary.FinishedAt.UTC(),
		summary.Processed, summary.Inserted, summary.Duplicates,
		summary.Failed, summary.Skipped, summary.SourceDir, summary.TypesPath,
	)
	return ErrDatabase.Wrap(err)
}

// CardCount returns the number of stored spell cards.
func (db *DB) CardCount(ctx context.Context) (count int64, err error) {
	defer mon.Task()(&ctx)(&err)

	err = db.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM spell_cards`).Scan(&count)
	return count, ErrDatabase.Wrap(err)
}

// snapshotDiff renders a field-level diff between two raw snapshots. Both
// sides are JSON documents; when one fails to parse the raw strings are
// compared instead.
func snapshotDiff(existing, incoming string) string {
	var existingDoc, incomingDoc any
	if json.Unmarshal([]byte(existing), &existingDoc) != nil ||
		json.Unmarshal([]byte(incoming), &incomingDoc) != nil {
		return cmp.Diff(existing, incoming)
	}
	return cmp.Diff(existingDoc, incomingDoc)
}
