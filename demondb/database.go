// Copyright (C) 2026 BattleBot Developers.
// See LICENSE for copying information.

// Package demondb persists materialized spell records as normalized SQLite
// rows. One top-level record becomes one transaction: the card row, its
// rank, its position children, its effect tree and its requirement trees
// commit together or not at all. The card's filename is the natural key;
// a second writer of the same filename loses on the primary key and the
// collision is recorded in the duplicate log instead of overwriting.
package demondb

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver.
	"github.com/spacemonkeygo/monkit/v3"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
)

// VersionTable is the migration bookkeeping table.
const VersionTable = "versions"

var (
	mon = monkit.Package()

	// ErrDatabase represents errors from the database.
	ErrDatabase = errs.Class("demondb")
)

// Config configures the spell database.
type Config struct {
	// Path is the sqlite database file.
	Path string

	// TestingDisableWAL keeps the journal in its default mode, for
	// in-memory databases.
	TestingDisableWAL bool
}

// DB is the spell database.
type DB struct {
	log *zap.Logger
	db  *sql.DB
}

// Open opens the database at config.Path, creating the file when missing.
// The schema is not touched; call MigrateToLatest before first use.
func Open(log *zap.Logger, config Config) (*DB, error) {
	source := "file:" + config.Path + "?_busy_timeout=10000"
	if !config.TestingDisableWAL {
		source += "&_journal=WAL"
	}
	sqlDB, err := sql.Open("sqlite3", source)
	if err != nil {
		return nil, ErrDatabase.Wrap(err)
	}
	return &DB{log: log, db: sqlDB}, nil
}

// OpenInMemory opens an isolated in-memory database for tests.
func OpenInMemory(log *zap.Logger) (*DB, error) {
	sqlDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, ErrDatabase.Wrap(err)
	}
	// an in-memory database vanishes when its last connection closes
	sqlDB.SetMaxOpenConns(1)
	return &DB{log: log, db: sqlDB}, nil
}

// Close closes the underlying database.
func (db *DB) Close() error {
	return ErrDatabase.Wrap(db.db.Close())
}

// MigrateToLatest applies all pending schema migrations.
func (db *DB) MigrateToLatest(ctx context.Context) (err error) {
	defer mon.Task()(&ctx)(&err)
	return db.Migration().Run(ctx, db.log.Named("migration"))
}

// withTx runs fn inside a transaction, rolling back on error.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	err = fn(tx)
	if err != nil {
		return errs.Combine(err, tx.Rollback())
	}
	return tx.Commit()
}
