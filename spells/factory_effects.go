// Copyright (C) 2026 BattleBot Developers.
// See LICENSE for copying information.

package spells

import (
	"github.com/CIick/BattleBot/materialize"
)

func registerEffects(factory *Factory) {
	factory.Register("SpellEffect", func(fields *materialize.FieldSet) materialize.Record {
		e := &SpellEffect{}
		bindEffect(e, fields)
		return e
	})
	factory.Register("DelaySpellEffect", func(fields *materialize.FieldSet) materialize.Record {
		e := &DelaySpellEffect{}
		bindEffect(&e.SpellEffect, fields)
		e.Damage = fields.Int("m_damage")
		e.Rounds = fields.Int("m_rounds")
		e.SpellDelayedTemplateID = fields.Int("m_spellDelayedTemplateID")
		e.SpellDelayedTemplateDamageID = fields.Int("m_spellDelayedTemplateDamageID")
		e.SpellEnchanterTemplateID = fields.Int("m_spellEnchanterTemplateID")
		e.SpellHits = fields.Int("m_spellHits")
		e.TargetSubcircleList = fields.Ints("m_targetSubcircleList")
		return e
	})
	factory.Register("RandomSpellEffect", func(fields *materialize.FieldSet) materialize.Record {
		e := &RandomSpellEffect{}
		bindEffect(&e.SpellEffect, fields)
		e.EffectList = asEffects(fields.Objects("m_effectList"))
		return e
	})
	factory.Register("RandomPerTargetSpellEffect", func(fields *materialize.FieldSet) materialize.Record {
		e := &RandomPerTargetSpellEffect{}
		bindEffect(&e.SpellEffect, fields)
		e.EffectList = asEffects(fields.Objects("m_effectList"))
		return e
	})
	factory.Register("EffectListSpellEffect", func(fields *materialize.FieldSet) materialize.Record {
		e := &EffectListSpellEffect{}
		bindEffect(&e.SpellEffect, fields)
		e.EffectList = asEffects(fields.Objects("m_effectList"))
		return e
	})
	factory.Register("ShadowSpellEffect", func(fields *materialize.FieldSet) materialize.Record {
		e := &ShadowSpellEffect{}
		bindEffect(&e.SpellEffect, fields)
		e.EffectList = asEffects(fields.Objects("m_effectList"))
		e.ShadowType = fields.Int("m_shadowType")
		return e
	})
	factory.Register("VariableSpellEffect", func(fields *materialize.FieldSet) materialize.Record {
		e := &VariableSpellEffect{}
		bindEffect(&e.SpellEffect, fields)
		e.EffectList = asEffects(fields.Objects("m_effectList"))
		return e
	})
	factory.Register("ConditionalSpellElement", func(fields *materialize.FieldSet) materialize.Record {
		return &ConditionalSpellElement{
			Reqs:   asRequirement(fields.Object("m_pReqs")),
			Effect: asEffect(fields.Object("m_pEffect")),
		}
	})
	factory.Register("ConditionalSpellEffect", func(fields *materialize.FieldSet) materialize.Record {
		e := &ConditionalSpellEffect{}
		bindEffect(&e.SpellEffect, fields)
		for _, record := range fields.Objects("m_elements") {
			element, _ := record.(*ConditionalSpellElement)
			e.Elements = append(e.Elements, element)
		}
		return e
	})
	factory.Register("TargetCountSpellEffect", func(fields *materialize.FieldSet) materialize.Record {
		e := &TargetCountSpellEffect{}
		bindEffect(&e.SpellEffect, fields)
		e.EffectLists = asEffectLists(fields.Objects("m_effectLists"))
		return e
	})
	factory.Register("HangingConversionSpellEffect", func(fields *materialize.FieldSet) materialize.Record {
		e := &HangingConversionSpellEffect{}
		bindEffect(&e.SpellEffect, fields)
		e.HangingEffectType = fields.Int("m_hangingEffectType")
		e.OutputSelector = fields.Int("m_outputSelector")
		e.SpecificEffectTypes = fields.Ints("m_specificEffectTypes")
		e.MinEffectValue = fields.Int("m_minEffectValue")
		e.MaxEffectValue = fields.Int("m_maxEffectValue")
		e.MinEffectCount = fields.Int("m_minEffectCount")
		e.MaxEffectCount = fields.Int("m_maxEffectCount")
		e.NotDamageType = fields.Bool("m_notDamageType")
		e.ScaleSourceEffectValue = fields.Bool("m_scaleSourceEffectValue")
		e.SourceEffectValuePercent = fields.Float("m_sourceEffectValuePercent")
		e.ApplyToEffectSource = fields.Bool("m_applyToEffectSource")
		e.OutputEffect = asEffects(fields.Objects("m_outputEffect"))
		return e
	})
	factory.Register("CountBasedSpellEffect", func(fields *materialize.FieldSet) materialize.Record {
		e := &CountBasedSpellEffect{}
		bindEffect(&e.SpellEffect, fields)
		e.EffectList = asEffects(fields.Objects("m_effectList"))
		e.CountThreshold = fields.Int("m_countThreshold")
		return e
	})
}

func bindEffect(e *SpellEffect, fields *materialize.FieldSet) {
	e.Act = fields.Bool("m_act")
	e.ActNum = fields.Int("m_actNum")
	e.ArmorPiercingParam = fields.Int("m_armorPiercingParam")
	e.BypassProtection = fields.Bool("m_bypassProtection")
	e.ChancePerTarget = fields.Int("m_chancePerTarget")
	e.Cloaked = fields.Bool("m_cloaked")
	e.Converted = fields.Bool("m_converted")
	e.DamageType = fields.Int("m_damageType")
	e.DamageTypeName = fields.String("m_sDamageType")
	e.Disposition = fields.Int("m_disposition")
	e.EffectParam = fields.Int("m_effectParam")
	e.EffectTarget = fields.Int("m_effectTarget")
	e.EffectType = fields.Int("m_effectType")
	e.EnchantmentSpellTemplateID = fields.Int("m_enchantmentSpellTemplateID")
	e.HealModifier = fields.Float("m_healModifier")
	e.NumRounds = fields.Int("m_numRounds")
	e.ParamPerRound = fields.Int("m_paramPerRound")
	e.PipNum = fields.Int("m_pipNum")
	e.Protected = fields.Bool("m_protected")
	e.Rank = fields.Int("m_rank")
	e.SpellTemplateID = fields.Int("m_spellTemplateID")
}
