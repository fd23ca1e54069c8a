// Copyright (C) 2026 BattleBot Developers.
// See LICENSE for copying information.

package extract_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/CIick/BattleBot/demondb"
	"github.com/CIick/BattleBot/extract"
	"github.com/CIick/BattleBot/internal/testcontext"
	"github.com/CIick/BattleBot/spells"
	"github.com/CIick/BattleBot/typelist"
)

const extractTypes = `{
	"revision": "r745435",
	"classes": {
		"1": {
			"name": "SpellTemplate",
			"fields": [
				{"name": "m_name", "kind": "string"},
				{"name": "m_accuracy", "kind": "int"},
				{"name": "m_effects", "kind": "object_list", "class": 2}
			]
		},
		"2": {
			"name": "SpellEffect",
			"fields": [
				{"name": "m_effectParam", "kind": "int"},
				{"name": "m_effectType", "kind": "int"}
			]
		}
	}
}`

func TestRunExtraction(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	typesPath := ctx.Write([]byte(extractTypes), "types.json")
	source := ctx.Dir("dumps")

	writeEntry := func(name, doc string) {
		require.NoError(t, os.WriteFile(filepath.Join(source, name), []byte(doc), 0644))
	}
	writeEntry("fire-cat.json", `{
		"$__type": 1,
		"m_name": "Fire Cat",
		"m_accuracy": 75,
		"m_effects": [
			{"$__type": 2, "m_effectParam": 80, "m_effectType": 2},
			{"$__type": 2, "m_effectParam": 120, "m_effectType": 2}
		]
	}`)
	writeEntry("tempest.json", `{
		"$__type": 1,
		"m_name": "Tempest",
		"m_accuracy": 70,
		"m_effects": [{"$__type": 999}]
	}`)
	writeEntry("unknown-root.json", `{"$__type": 999}`)
	writeEntry("broken.json", `{"$__type": `)

	types, err := typelist.Load(typesPath, "r745435")
	require.NoError(t, err)

	log := zaptest.NewLogger(t)
	db, err := demondb.OpenInMemory(log)
	require.NoError(t, err)
	defer ctx.Check(db.Close)
	require.NoError(t, db.MigrateToLatest(ctx))

	failedDir := ctx.Dir("failed")
	service := extract.New(log, db, types, spells.NewFactory(), extract.Config{
		SourceDir: source,
		TypesPath: typesPath,
		Revision:  "r745435",
		Workers:   4,
		FailedDir: failedDir,
	})

	summary, err := service.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(4), summary.Processed)
	assert.Equal(t, int64(2), summary.Inserted)
	assert.Zero(t, summary.Duplicates)
	assert.Equal(t, int64(1), summary.Failed)
	// one skip for tempest's unknown effect, one for the unknown root
	assert.Equal(t, int64(2), summary.Skipped)
	assert.Equal(t, "r745435", summary.Revision)

	count, err := db.CardCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// the unreadable entry's raw snapshot was kept for inspection
	kept, err := os.ReadFile(filepath.Join(failedDir, "broken.json"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(kept), `{"$__type": `))

	// second run over the same directory rejects everything as duplicate
	summary, err = service.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Duplicates)
	assert.Zero(t, summary.Inserted)

	count, err = db.CardCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRunRevisionMismatch(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	typesPath := ctx.Write([]byte(extractTypes), "types.json")
	_, err := typelist.Load(typesPath, "r000001")
	require.Error(t, err)
	assert.True(t, typelist.ErrRevisionMismatch.Has(err))
}
