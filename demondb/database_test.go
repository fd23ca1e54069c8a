// Copyright (C) 2026 BattleBot Developers.
// See LICENSE for copying information.

package demondb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/CIick/BattleBot/materialize"
	"github.com/CIick/BattleBot/spells"
)

func newTestDB(t *testing.T) *DB {
	db, err := OpenInMemory(zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })
	require.NoError(t, db.MigrateToLatest(context.Background()))
	return db
}

func testTemplate(name string) *spells.TieredSpellTemplate {
	template := &spells.TieredSpellTemplate{
		NextTierSpells: []string{"Tempest T3A", "Tempest T3B"},
		Retired:        false,
		ShardCost:      12,
	}
	template.Name = name
	template.MagicSchoolName = "Storm"
	template.Accuracy = 70
	template.PvE = true
	template.Rank = &spells.SpellRank{SpellRank: 4, StormPips: 2}
	template.Adjectives = []string{"Damage", "Storm", "AOE"}
	template.Requirements = &spells.RequirementList{
		Requirements: []spells.Requirement{
			&spells.ReqMagicLevel{MagicSchool: "Storm", NumericValue: 48, OperatorType: 3},
			&spells.ReqHangingCharm{HangingFilter: spells.HangingFilter{Disposition: 1, MaxCount: 3}},
		},
	}

	list := &spells.EffectListSpellEffect{
		EffectList: []spells.Effect{
			&spells.SpellEffect{EffectParam: 100, EffectType: 2},
			&spells.SpellEffect{EffectParam: 200, EffectType: 2},
			&spells.SpellEffect{EffectParam: 300, EffectType: 2},
		},
	}
	shadow := &spells.ShadowSpellEffect{ShadowType: 1}
	shadow.EffectList = []spells.Effect{
		&spells.DelaySpellEffect{Damage: 335, Rounds: 3, TargetSubcircleList: []int64{0, 2}},
	}
	// nil keeps a degraded element's position
	template.Effects = []spells.Effect{list, nil, shadow}
	return template
}

func TestPersistRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	outcome, err := db.Persist(ctx, "Tempest-T2A.json", testTemplate("Tempest T2A"), `{"m_name":"Tempest T2A"}`)
	require.NoError(t, err)
	require.Equal(t, PersistInserted, outcome)

	var kind, school string
	var accuracy int64
	err = db.db.QueryRowContext(ctx,
		`SELECT kind, magic_school_name, accuracy FROM spell_cards WHERE filename = ?`,
		"Tempest-T2A.json",
	).Scan(&kind, &school, &accuracy)
	require.NoError(t, err)
	assert.Equal(t, "TieredSpellTemplate", kind)
	assert.Equal(t, "Storm", school)
	assert.Equal(t, int64(70), accuracy)

	var stormPips int64
	require.NoError(t, db.db.QueryRowContext(ctx,
		`SELECT storm_pips FROM spell_ranks WHERE filename = ?`, "Tempest-T2A.json",
	).Scan(&stormPips))
	assert.Equal(t, int64(2), stormPips)

	rows, err := db.db.QueryContext(ctx,
		`SELECT position, value FROM spell_adjectives WHERE filename = ? ORDER BY position`,
		"Tempest-T2A.json",
	)
	require.NoError(t, err)
	defer func() { assert.NoError(t, rows.Close()) }()
	var adjectives []string
	for rows.Next() {
		var position int64
		var value string
		require.NoError(t, rows.Scan(&position, &value))
		require.EqualValues(t, len(adjectives), position)
		adjectives = append(adjectives, value)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"Damage", "Storm", "AOE"}, adjectives)

	// top level effects keep their positions; the nil placeholder leaves
	// a gap at position 1
	topRows, err := db.db.QueryContext(ctx, `
		SELECT position, kind FROM spell_effects
		WHERE filename = ? AND parent_effect_id IS NULL ORDER BY position`,
		"Tempest-T2A.json",
	)
	require.NoError(t, err)
	defer func() { assert.NoError(t, topRows.Close()) }()
	type effectRow struct {
		position int64
		kind     string
	}
	var top []effectRow
	for topRows.Next() {
		var row effectRow
		require.NoError(t, topRows.Scan(&row.position, &row.kind))
		top = append(top, row)
	}
	require.NoError(t, topRows.Err())
	require.Equal(t, []effectRow{
		{0, "EffectListSpellEffect"},
		{2, "ShadowSpellEffect"},
	}, top)

	// three nested list elements come back as three child rows in order
	var childParams []int64
	childRows, err := db.db.QueryContext(ctx, `
		SELECT effect_param FROM spell_effects
		WHERE parent_effect_id = (
			SELECT id FROM spell_effects WHERE filename = ? AND position = 0 AND parent_effect_id IS NULL
		) ORDER BY position`,
		"Tempest-T2A.json",
	)
	require.NoError(t, err)
	defer func() { assert.NoError(t, childRows.Close()) }()
	for childRows.Next() {
		var param int64
		require.NoError(t, childRows.Scan(&param))
		childParams = append(childParams, param)
	}
	require.NoError(t, childRows.Err())
	assert.Equal(t, []int64{100, 200, 300}, childParams)

	var shadowType int64
	require.NoError(t, db.db.QueryRowContext(ctx, `
		SELECT shadow_type FROM shadow_spell_effects`).Scan(&shadowType))
	assert.Equal(t, int64(1), shadowType)

	var delayCount int64
	require.NoError(t, db.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM delay_spell_target_subcircles`).Scan(&delayCount))
	assert.Equal(t, int64(2), delayCount)

	var reqKinds []string
	reqRows, err := db.db.QueryContext(ctx, `
		SELECT kind FROM requirements WHERE filename = ? ORDER BY id`, "Tempest-T2A.json")
	require.NoError(t, err)
	defer func() { assert.NoError(t, reqRows.Close()) }()
	for reqRows.Next() {
		var kind string
		require.NoError(t, reqRows.Scan(&kind))
		reqKinds = append(reqKinds, kind)
	}
	require.NoError(t, reqRows.Err())
	assert.Equal(t, []string{"RequirementList", "ReqMagicLevel", "ReqHangingCharm"}, reqKinds)

	var shardCost int64
	require.NoError(t, db.db.QueryRowContext(ctx,
		`SELECT shard_cost FROM tiered_spell_data WHERE filename = ?`, "Tempest-T2A.json",
	).Scan(&shardCost))
	assert.Equal(t, int64(12), shardCost)
}

func TestPersistDuplicateRejected(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	first := testTemplate("Tempest T2A")
	second := testTemplate("Tempest T2A Changed")

	outcome, err := db.Persist(ctx, "X.json", first, `{"m_name":"Tempest T2A"}`)
	require.NoError(t, err)
	require.Equal(t, PersistInserted, outcome)

	outcome, err = db.Persist(ctx, "X.json", second, `{"m_name":"Tempest T2A Changed"}`)
	require.NoError(t, err)
	require.Equal(t, PersistDuplicateRejected, outcome)

	// the first writer's row survives untouched
	var name string
	require.NoError(t, db.db.QueryRowContext(ctx,
		`SELECT name FROM spell_cards WHERE filename = ?`, "X.json").Scan(&name))
	assert.Equal(t, "Tempest T2A", name)

	count, err := db.CardCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var incoming, existing, diff string
	require.NoError(t, db.db.QueryRowContext(ctx, `
		SELECT incoming_snapshot, existing_snapshot, diff FROM duplicate_log
		WHERE filename = ?`, "X.json",
	).Scan(&incoming, &existing, &diff))
	assert.Equal(t, `{"m_name":"Tempest T2A Changed"}`, incoming)
	assert.Equal(t, `{"m_name":"Tempest T2A"}`, existing)
	assert.NotEmpty(t, diff)

	// rejecting is idempotent
	outcome, err = db.Persist(ctx, "X.json", second, `{"m_name":"Tempest T2A Changed"}`)
	require.NoError(t, err)
	assert.Equal(t, PersistDuplicateRejected, outcome)

	count, err = db.CardCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPersistFailureLeavesNoRows(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	outcome, err := db.Persist(ctx, "A.json", testTemplate("A"), `{}`)
	require.NoError(t, err)
	require.Equal(t, PersistInserted, outcome)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	outcome, err = db.Persist(cancelled, "B.json", testTemplate("B"), `{}`)
	require.Error(t, err)
	assert.Equal(t, PersistFailed, outcome)

	// the failed record wrote nothing, the earlier commit is intact
	count, err := db.CardCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var effectCount int64
	require.NoError(t, db.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM spell_effects WHERE filename = ?`, "B.json").Scan(&effectCount))
	assert.Zero(t, effectCount)
}

// unmappedEffect has no row mapping, so inserting it fails the
// transaction after earlier rows were already written.
type unmappedEffect struct{ spells.SpellEffect }

func (*unmappedEffect) Kind() string { return "UnmappedEffect" }

func TestPersistRollbackMidWrite(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	outcome, err := db.Persist(ctx, "A.json", testTemplate("A"), `{}`)
	require.NoError(t, err)
	require.Equal(t, PersistInserted, outcome)

	// the card, rank and first effects insert cleanly before the
	// unmapped effect aborts the transaction
	broken := testTemplate("B")
	broken.Effects = append(broken.Effects, &unmappedEffect{})
	outcome, err = db.Persist(ctx, "B.json", broken, `{}`)
	require.Error(t, err)
	assert.Equal(t, PersistFailed, outcome)

	for _, table := range []string{
		"spell_cards", "spell_ranks", "spell_adjectives",
		"spell_effects", "requirements", "tiered_spell_data",
	} {
		var count int64
		require.NoError(t, db.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM `+table+` WHERE filename = ?`, "B.json").Scan(&count))
		assert.Zero(t, count, table)
	}

	// the earlier commit is untouched
	count, err := db.CardCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	var effectCount int64
	require.NoError(t, db.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM spell_effects WHERE filename = ?`, "A.json").Scan(&effectCount))
	assert.NotZero(t, effectCount)
}

func TestPersistRejectsNonTemplate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	outcome, err := db.Persist(ctx, "rank.json", &spells.SpellRank{SpellRank: 3}, `{}`)
	require.Error(t, err)
	assert.Equal(t, PersistFailed, outcome)
}

func TestRecordSkips(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	err := db.RecordSkips(ctx, "Y.json", []materialize.SkipEntry{
		{Reason: materialize.SkipUnknownType, TypeHash: 999, Path: "m_effects[1]", Detail: "type hash not present in type list", RawSnapshot: `{"$__type":999}`},
		{Reason: materialize.SkipMalformedField, Path: "m_accuracy", Detail: "expected integer in range", RawSnapshot: `"75"`},
	})
	require.NoError(t, err)

	rows, err := db.db.QueryContext(ctx,
		`SELECT reason, type_hash, field_path FROM skip_log WHERE filename = ? ORDER BY id`, "Y.json")
	require.NoError(t, err)
	defer func() { assert.NoError(t, rows.Close()) }()

	type skipRow struct {
		reason   string
		typeHash int64
		path     string
	}
	var got []skipRow
	for rows.Next() {
		var row skipRow
		require.NoError(t, rows.Scan(&row.reason, &row.typeHash, &row.path))
		got = append(got, row)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []skipRow{
		{"unknown_type", 999, "m_effects[1]"},
		{"malformed_field", 0, "m_accuracy"},
	}, got)
}

func TestRecordRun(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	summary := RunSummary{
		Revision:  "r745435",
		Processed: 10, Inserted: 7, Duplicates: 2, Failed: 1, Skipped: 4,
		SourceDir: "/dumps", TypesPath: "/types.json",
	}
	require.NoError(t, db.RecordRun(ctx, summary))

	var processed, inserted, duplicates, failed, skipped int64
	var revision string
	require.NoError(t, db.db.QueryRowContext(ctx, `
		SELECT revision, processed, inserted, duplicates, failed, skipped
		FROM process_runs`).Scan(&revision, &processed, &inserted, &duplicates, &failed, &skipped))
	assert.Equal(t, "r745435", revision)
	assert.Equal(t, int64(10), processed)
	assert.Equal(t, int64(7), inserted)
	assert.Equal(t, int64(2), duplicates)
	assert.Equal(t, int64(1), failed)
	assert.Equal(t, int64(4), skipped)
}
