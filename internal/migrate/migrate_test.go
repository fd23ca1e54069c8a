// Copyright (C) 2026 BattleBot Developers.
// See LICENSE for copying information.

package migrate_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	_ "github.com/mattn/go-sqlite3"

	"github.com/CIick/BattleBot/internal/migrate"
)

func openMemoryDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })
	return db
}

func TestBasicMigrationSqlite(t *testing.T) {
	ctx := context.Background()
	db := openMemoryDB(t)

	m := migrate.Migration{
		Table: "versions",
		Steps: []*migrate.Step{
			{
				DB:          db,
				Description: "Initial setup",
				Version:     0,
				Action: migrate.SQL{
					`CREATE TABLE users (id int)`,
				},
			},
			{
				DB:          db,
				Description: "Seed first user",
				Version:     1,
				Action: migrate.Func(func(ctx context.Context, log *zap.Logger, tx *sql.Tx) error {
					_, err := tx.ExecContext(ctx, `INSERT INTO users (id) VALUES (1)`)
					return err
				}),
			},
		},
	}

	err := m.Run(ctx, zaptest.NewLogger(t))
	require.NoError(t, err)

	version, err := m.CurrentVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Equal(t, 1, count)

	// rerunning is a no-op
	err = m.Run(ctx, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestMigrationFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	db := openMemoryDB(t)

	m := migrate.Migration{
		Table: "versions",
		Steps: []*migrate.Step{
			{
				DB:          db,
				Description: "Create table",
				Version:     0,
				Action: migrate.SQL{
					`CREATE TABLE widgets (id int)`,
				},
			},
			{
				DB:          db,
				Description: "Broken step",
				Version:     1,
				Action: migrate.SQL{
					`INSERT INTO widgets (id) VALUES (1)`,
					`SYNTAX ERROR`,
				},
			},
		},
	}

	err := m.Run(ctx, zaptest.NewLogger(t))
	require.Error(t, err)

	version, err := m.CurrentVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 0, version)

	// the failed step's insert was rolled back with it
	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM widgets`).Scan(&count))
	assert.Zero(t, count)
}

func TestInvalidTableName(t *testing.T) {
	m := migrate.Migration{Table: "123-versions!"}
	err := m.Run(context.Background(), zaptest.NewLogger(t))
	require.Error(t, err)
}

func TestStepsOutOfOrder(t *testing.T) {
	db := openMemoryDB(t)
	m := migrate.Migration{
		Table: "versions",
		Steps: []*migrate.Step{
			{DB: db, Version: 2, Action: migrate.SQL{}},
			{DB: db, Version: 1, Action: migrate.SQL{}},
		},
	}
	err := m.Run(context.Background(), zaptest.NewLogger(t))
	require.Error(t, err)
}

func TestTargetVersion(t *testing.T) {
	ctx := context.Background()
	db := openMemoryDB(t)

	m := migrate.Migration{
		Table: "versions",
		Steps: []*migrate.Step{
			{DB: db, Version: 0, Action: migrate.SQL{`CREATE TABLE a (id int)`}},
			{DB: db, Version: 1, Action: migrate.SQL{`CREATE TABLE b (id int)`}},
			{DB: db, Version: 2, Action: migrate.SQL{`CREATE TABLE c (id int)`}},
		},
	}

	err := m.TargetVersion(1).Run(ctx, zaptest.NewLogger(t))
	require.NoError(t, err)

	version, err := m.CurrentVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}
