// Copyright (C) 2026 BattleBot Developers.
// See LICENSE for copying information.

package spells_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CIick/BattleBot/materialize"
	"github.com/CIick/BattleBot/spells"
	"github.com/CIick/BattleBot/typelist"
)

func TestFactoryKnows(t *testing.T) {
	factory := spells.NewFactory()

	for _, name := range []string{
		"SpellTemplate", "TieredSpellTemplate", "CastleMagicSpellTemplate",
		"FishingSpellTemplate", "GardenSpellTemplate", "CantripsSpellTemplate",
		"WhirlyBurlySpellTemplate", "SpellRank", "SpellEffect",
		"ConditionalSpellEffect", "RequirementList", "ReqHangingCharm",
	} {
		assert.True(t, factory.Knows(&typelist.Descriptor{Name: name}), name)
	}
	assert.False(t, factory.Knows(&typelist.Descriptor{Name: "BehaviorTemplate"}))
}

func TestBuildUnknownKind(t *testing.T) {
	factory := spells.NewFactory()

	record, ok := factory.Build(&typelist.Descriptor{Name: "BehaviorTemplate"}, materialize.NewFieldSet())
	assert.False(t, ok)
	assert.Nil(t, record)
}

func TestBuildSpellTemplate(t *testing.T) {
	factory := spells.NewFactory()

	rank, ok := factory.Build(&typelist.Descriptor{Name: "SpellRank"}, func() *materialize.FieldSet {
		fields := materialize.NewFieldSet()
		fields.SetInt("m_spellRank", 4)
		fields.SetInt("m_shadowPips", 1)
		fields.SetBool("m_xPipSpell", false)
		return fields
	}())
	require.True(t, ok)

	effect, ok := factory.Build(&typelist.Descriptor{Name: "SpellEffect"}, func() *materialize.FieldSet {
		fields := materialize.NewFieldSet()
		fields.SetInt("m_effectParam", 440)
		fields.SetInt("m_effectType", 2)
		fields.SetString("m_sDamageType", "Fire")
		return fields
	}())
	require.True(t, ok)

	fields := materialize.NewFieldSet()
	fields.SetString("m_name", "Fire Cat")
	fields.SetString("m_sMagicSchoolName", "Fire")
	fields.SetString("m_sTypeName", "Damage")
	fields.SetInt("m_accuracy", 75)
	fields.SetBool("m_PvE", true)
	fields.SetObject("m_spellRank", rank)
	// nil keeps the failed element's position in the list
	fields.SetObjects("m_effects", []materialize.Record{effect, nil})
	fields.SetStrings("m_adjectives", []string{"Damage", "Fire"})

	record, ok := factory.Build(&typelist.Descriptor{Name: "SpellTemplate"}, fields)
	require.True(t, ok)
	template, ok := record.(*spells.SpellTemplate)
	require.True(t, ok)

	assert.Equal(t, "SpellTemplate", template.Kind())
	assert.Equal(t, "Fire Cat", template.Name)
	assert.Equal(t, "Fire", template.MagicSchoolName)
	assert.Equal(t, int64(75), template.Accuracy)
	assert.True(t, template.PvE)
	assert.False(t, template.PvP)

	require.NotNil(t, template.Rank)
	assert.Equal(t, int64(4), template.Rank.SpellRank)
	assert.Equal(t, int64(1), template.Rank.ShadowPips)

	require.Len(t, template.Effects, 2)
	base, ok := template.Effects[0].(*spells.SpellEffect)
	require.True(t, ok)
	assert.Equal(t, int64(440), base.EffectParam)
	assert.Equal(t, "Fire", base.DamageTypeName)
	assert.Nil(t, template.Effects[1])

	assert.Equal(t, []string{"Damage", "Fire"}, template.Adjectives)
	assert.Nil(t, template.PurchaseRequirements)
}

func TestBuildTieredSpellTemplate(t *testing.T) {
	factory := spells.NewFactory()

	fields := materialize.NewFieldSet()
	fields.SetString("m_name", "Tempest T2A")
	fields.SetStrings("m_nextTierSpells", []string{"Tempest T3A", "Tempest T3B"})
	fields.SetBool("m_retired", true)
	fields.SetInt("m_shardCost", 12)

	record, ok := factory.Build(&typelist.Descriptor{Name: "TieredSpellTemplate"}, fields)
	require.True(t, ok)
	tiered, ok := record.(*spells.TieredSpellTemplate)
	require.True(t, ok)

	assert.Equal(t, "TieredSpellTemplate", tiered.Kind())
	assert.Equal(t, "Tempest T2A", tiered.Name)
	assert.Equal(t, []string{"Tempest T3A", "Tempest T3B"}, tiered.NextTierSpells)
	assert.True(t, tiered.Retired)
	assert.Equal(t, int64(12), tiered.ShardCost)
}

func TestBuildEffectVariants(t *testing.T) {
	factory := spells.NewFactory()

	t.Run("Delay", func(t *testing.T) {
		fields := materialize.NewFieldSet()
		fields.SetInt("m_damage", 335)
		fields.SetInt("m_rounds", 3)
		fields.SetInts("m_targetSubcircleList", []int64{0, 2})

		record, ok := factory.Build(&typelist.Descriptor{Name: "DelaySpellEffect"}, fields)
		require.True(t, ok)
		delay, ok := record.(*spells.DelaySpellEffect)
		require.True(t, ok)
		assert.Equal(t, int64(335), delay.Damage)
		assert.Equal(t, int64(3), delay.Rounds)
		assert.Equal(t, []int64{0, 2}, delay.TargetSubcircleList)
	})

	t.Run("Shadow", func(t *testing.T) {
		inner, ok := factory.Build(&typelist.Descriptor{Name: "SpellEffect"}, materialize.NewFieldSet())
		require.True(t, ok)

		fields := materialize.NewFieldSet()
		fields.SetInt("m_shadowType", 2)
		fields.SetObjects("m_effectList", []materialize.Record{inner})

		record, ok := factory.Build(&typelist.Descriptor{Name: "ShadowSpellEffect"}, fields)
		require.True(t, ok)
		shadow, ok := record.(*spells.ShadowSpellEffect)
		require.True(t, ok)
		assert.Equal(t, int64(2), shadow.ShadowType)
		require.Len(t, shadow.EffectList, 1)
	})

	t.Run("Conditional", func(t *testing.T) {
		req, ok := factory.Build(&typelist.Descriptor{Name: "ReqPipCount"}, func() *materialize.FieldSet {
			fields := materialize.NewFieldSet()
			fields.SetInt("m_minPips", 7)
			return fields
		}())
		require.True(t, ok)
		effect, ok := factory.Build(&typelist.Descriptor{Name: "SpellEffect"}, materialize.NewFieldSet())
		require.True(t, ok)

		element, ok := factory.Build(&typelist.Descriptor{Name: "ConditionalSpellElement"}, func() *materialize.FieldSet {
			fields := materialize.NewFieldSet()
			fields.SetObject("m_pReqs", req)
			fields.SetObject("m_pEffect", effect)
			return fields
		}())
		require.True(t, ok)

		fields := materialize.NewFieldSet()
		fields.SetObjects("m_elements", []materialize.Record{element})

		record, ok := factory.Build(&typelist.Descriptor{Name: "ConditionalSpellEffect"}, fields)
		require.True(t, ok)
		conditional, ok := record.(*spells.ConditionalSpellEffect)
		require.True(t, ok)
		require.Len(t, conditional.Elements, 1)
		pips, ok := conditional.Elements[0].Reqs.(*spells.ReqPipCount)
		require.True(t, ok)
		assert.Equal(t, int64(7), pips.MinPips)
		assert.NotNil(t, conditional.Elements[0].Effect)
	})

	t.Run("HangingConversion", func(t *testing.T) {
		fields := materialize.NewFieldSet()
		fields.SetInt("m_hangingEffectType", 31)
		fields.SetBool("m_scaleSourceEffectValue", true)
		fields.SetFloat("m_sourceEffectValuePercent", 0.5)
		fields.SetInts("m_specificEffectTypes", []int64{2, 3})

		record, ok := factory.Build(&typelist.Descriptor{Name: "HangingConversionSpellEffect"}, fields)
		require.True(t, ok)
		conversion, ok := record.(*spells.HangingConversionSpellEffect)
		require.True(t, ok)
		assert.Equal(t, int64(31), conversion.HangingEffectType)
		assert.True(t, conversion.ScaleSourceEffectValue)
		assert.Equal(t, 0.5, conversion.SourceEffectValuePercent)
		assert.Equal(t, []int64{2, 3}, conversion.SpecificEffectTypes)
	})
}

func TestBuildRequirementVariants(t *testing.T) {
	factory := spells.NewFactory()

	level, ok := factory.Build(&typelist.Descriptor{Name: "ReqMagicLevel"}, func() *materialize.FieldSet {
		fields := materialize.NewFieldSet()
		fields.SetString("m_magicSchool", "Storm")
		fields.SetFloat("m_numericValue", 48)
		fields.SetInt("m_operatorType", 3)
		return fields
	}())
	require.True(t, ok)

	charm, ok := factory.Build(&typelist.Descriptor{Name: "ReqHangingCharm"}, func() *materialize.FieldSet {
		fields := materialize.NewFieldSet()
		fields.SetBool("m_applyNOT", true)
		fields.SetInt("m_disposition", 1)
		fields.SetInt("m_minCount", 1)
		fields.SetInt("m_maxCount", 3)
		return fields
	}())
	require.True(t, ok)

	fields := materialize.NewFieldSet()
	fields.SetInt("m_operator", 1)
	fields.SetObjects("m_requirements", []materialize.Record{level, charm})

	record, ok := factory.Build(&typelist.Descriptor{Name: "RequirementList"}, fields)
	require.True(t, ok)
	list, ok := record.(*spells.RequirementList)
	require.True(t, ok)

	assert.Equal(t, int64(1), list.Operator)
	require.Len(t, list.Requirements, 2)

	magic, ok := list.Requirements[0].(*spells.ReqMagicLevel)
	require.True(t, ok)
	assert.Equal(t, "Storm", magic.MagicSchool)
	assert.Equal(t, float64(48), magic.NumericValue)

	hanging, ok := list.Requirements[1].(*spells.ReqHangingCharm)
	require.True(t, ok)
	assert.True(t, hanging.ApplyNot)
	assert.Equal(t, int64(1), hanging.Disposition)
	assert.Equal(t, int64(3), hanging.MaxCount)
}
