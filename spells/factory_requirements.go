// Copyright (C) 2026 BattleBot Developers.
// See LICENSE for copying information.

package spells

import (
	"github.com/CIick/BattleBot/materialize"
)

func registerRequirements(factory *Factory) {
	factory.Register("RequirementList", func(fields *materialize.FieldSet) materialize.Record {
		r := &RequirementList{}
		bindReq(&r.ReqBase, fields)
		r.Requirements = asRequirements(fields.Objects("m_requirements"))
		return r
	})
	factory.Register("ReqMagicLevel", func(fields *materialize.FieldSet) materialize.Record {
		r := &ReqMagicLevel{}
		bindReq(&r.ReqBase, fields)
		r.MagicSchool = fields.String("m_magicSchool")
		r.NumericValue = fields.Float("m_numericValue")
		r.OperatorType = fields.Int("m_operatorType")
		return r
	})
	factory.Register("ReqGardeningLevel", func(fields *materialize.FieldSet) materialize.Record {
		r := &ReqGardeningLevel{}
		bindReq(&r.ReqBase, fields)
		r.NumericValue = fields.Float("m_numericValue")
		r.OperatorType = fields.Int("m_operatorType")
		return r
	})
	factory.Register("ReqHasBadge", func(fields *materialize.FieldSet) materialize.Record {
		r := &ReqHasBadge{}
		bindReq(&r.ReqBase, fields)
		r.BadgeName = fields.String("m_badgeName")
		return r
	})
	factory.Register("ReqIsSchool", func(fields *materialize.FieldSet) materialize.Record {
		r := &ReqIsSchool{}
		bindReq(&r.ReqBase, fields)
		r.TargetType = fields.Int("m_targetType")
		r.MagicSchoolName = fields.String("m_magicSchoolName")
		return r
	})
	factory.Register("ReqSchoolOfFocus", func(fields *materialize.FieldSet) materialize.Record {
		r := &ReqSchoolOfFocus{}
		bindReq(&r.ReqBase, fields)
		r.TargetType = fields.Int("m_targetType")
		r.MagicSchoolName = fields.String("m_magicSchoolName")
		return r
	})
	factory.Register("ReqPipCount", func(fields *materialize.FieldSet) materialize.Record {
		r := &ReqPipCount{}
		bindReq(&r.ReqBase, fields)
		r.TargetType = fields.Int("m_targetType")
		r.MinPips = fields.Int("m_minPips")
		r.MaxPips = fields.Int("m_maxPips")
		return r
	})
	factory.Register("ReqShadowPipCount", func(fields *materialize.FieldSet) materialize.Record {
		r := &ReqShadowPipCount{}
		bindReq(&r.ReqBase, fields)
		r.TargetType = fields.Int("m_targetType")
		r.MinPips = fields.Int("m_minPips")
		r.MaxPips = fields.Int("m_maxPips")
		return r
	})
	factory.Register("ReqCombatHealth", func(fields *materialize.FieldSet) materialize.Record {
		r := &ReqCombatHealth{}
		bindReq(&r.ReqBase, fields)
		r.TargetType = fields.Int("m_targetType")
		r.MinPercent = fields.Float("m_fMinPercent")
		r.MaxPercent = fields.Float("m_fMaxPercent")
		return r
	})
	factory.Register("ReqCombatStatus", func(fields *materialize.FieldSet) materialize.Record {
		r := &ReqCombatStatus{}
		bindReq(&r.ReqBase, fields)
		r.TargetType = fields.Int("m_targetType")
		r.CombatStatus = fields.Int("m_combatStatus")
		return r
	})
	factory.Register("ReqMinion", func(fields *materialize.FieldSet) materialize.Record {
		r := &ReqMinion{}
		bindReq(&r.ReqBase, fields)
		r.TargetType = fields.Int("m_targetType")
		r.MinCount = fields.Int("m_minCount")
		r.MaxCount = fields.Int("m_maxCount")
		return r
	})
	factory.Register("ReqHasEntry", func(fields *materialize.FieldSet) materialize.Record {
		r := &ReqHasEntry{}
		bindReq(&r.ReqBase, fields)
		r.TargetType = fields.Int("m_targetType")
		r.EntryName = fields.String("m_entryName")
		return r
	})
	factory.Register("ReqPvPCombat", func(fields *materialize.FieldSet) materialize.Record {
		r := &ReqPvPCombat{}
		bindReq(&r.ReqBase, fields)
		r.TargetType = fields.Int("m_targetType")
		return r
	})
	factory.Register("ReqHangingCharm", func(fields *materialize.FieldSet) materialize.Record {
		r := &ReqHangingCharm{}
		bindReq(&r.ReqBase, fields)
		r.TargetType = fields.Int("m_targetType")
		bindHanging(&r.HangingFilter, fields)
		return r
	})
	factory.Register("ReqHangingWard", func(fields *materialize.FieldSet) materialize.Record {
		r := &ReqHangingWard{}
		bindReq(&r.ReqBase, fields)
		r.TargetType = fields.Int("m_targetType")
		bindHanging(&r.HangingFilter, fields)
		return r
	})
	factory.Register("ReqHangingOverTime", func(fields *materialize.FieldSet) materialize.Record {
		r := &ReqHangingOverTime{}
		bindReq(&r.ReqBase, fields)
		r.TargetType = fields.Int("m_targetType")
		bindHanging(&r.HangingFilter, fields)
		return r
	})
	factory.Register("ReqHangingAura", func(fields *materialize.FieldSet) materialize.Record {
		r := &ReqHangingAura{}
		bindReq(&r.ReqBase, fields)
		r.TargetType = fields.Int("m_targetType")
		bindHanging(&r.HangingFilter, fields)
		return r
	})
	factory.Register("ReqHangingEffectType", func(fields *materialize.FieldSet) materialize.Record {
		r := &ReqHangingEffectType{}
		bindReq(&r.ReqBase, fields)
		r.TargetType = fields.Int("m_targetType")
		r.EffectType = fields.Int("m_effectType")
		r.MinCount = fields.Int("m_minCount")
		r.MaxCount = fields.Int("m_maxCount")
		return r
	})
}

func bindReq(r *ReqBase, fields *materialize.FieldSet) {
	r.ApplyNot = fields.Bool("m_applyNOT")
	r.Operator = fields.Int("m_operator")
}

func bindHanging(h *HangingFilter, fields *materialize.FieldSet) {
	h.Disposition = fields.Int("m_disposition")
	h.MinCount = fields.Int("m_minCount")
	h.MaxCount = fields.Int("m_maxCount")
}
