// Copyright (C) 2026 BattleBot Developers.
// See LICENSE for copying information.

package spells

// ReqBase carries the fields shared by every requirement kind.
type ReqBase struct {
	ApplyNot bool
	Operator int64
}

// Common implements Requirement.
func (r *ReqBase) Common() *ReqBase { return r }

func (*ReqBase) Kind() string { return "Requirement" }

// RequirementList combines sub requirements under one operator.
type RequirementList struct {
	ReqBase
	Requirements []Requirement
}

func (*RequirementList) Kind() string { return "RequirementList" }

// ReqMagicLevel requires a magic school level.
type ReqMagicLevel struct {
	ReqBase
	MagicSchool  string
	NumericValue float64
	OperatorType int64
}

func (*ReqMagicLevel) Kind() string { return "ReqMagicLevel" }

// ReqGardeningLevel requires a gardening level.
type ReqGardeningLevel struct {
	ReqBase
	NumericValue float64
	OperatorType int64
}

func (*ReqGardeningLevel) Kind() string { return "ReqGardeningLevel" }

// ReqHasBadge requires an earned badge.
type ReqHasBadge struct {
	ReqBase
	BadgeName string
}

func (*ReqHasBadge) Kind() string { return "ReqHasBadge" }

// ReqIsSchool requires the target to be of a school.
type ReqIsSchool struct {
	ReqBase
	TargetType      int64
	MagicSchoolName string
}

func (*ReqIsSchool) Kind() string { return "ReqIsSchool" }

// ReqSchoolOfFocus requires the target's school of focus.
type ReqSchoolOfFocus struct {
	ReqBase
	TargetType      int64
	MagicSchoolName string
}

func (*ReqSchoolOfFocus) Kind() string { return "ReqSchoolOfFocus" }

// ReqPipCount requires a pip count range.
type ReqPipCount struct {
	ReqBase
	TargetType int64
	MinPips    int64
	MaxPips    int64
}

func (*ReqPipCount) Kind() string { return "ReqPipCount" }

// ReqShadowPipCount requires a shadow pip count range.
type ReqShadowPipCount struct {
	ReqBase
	TargetType int64
	MinPips    int64
	MaxPips    int64
}

func (*ReqShadowPipCount) Kind() string { return "ReqShadowPipCount" }

// ReqCombatHealth requires a health percentage range.
type ReqCombatHealth struct {
	ReqBase
	TargetType int64
	MinPercent float64
	MaxPercent float64
}

func (*ReqCombatHealth) Kind() string { return "ReqCombatHealth" }

// ReqCombatStatus requires a combat status.
type ReqCombatStatus struct {
	ReqBase
	TargetType   int64
	CombatStatus int64
}

func (*ReqCombatStatus) Kind() string { return "ReqCombatStatus" }

// ReqMinion requires a minion count range.
type ReqMinion struct {
	ReqBase
	TargetType int64
	MinCount   int64
	MaxCount   int64
}

func (*ReqMinion) Kind() string { return "ReqMinion" }

// ReqHasEntry requires a registry entry on the target.
type ReqHasEntry struct {
	ReqBase
	TargetType int64
	EntryName  string
}

func (*ReqHasEntry) Kind() string { return "ReqHasEntry" }

// ReqPvPCombat requires the combat to be player versus player.
type ReqPvPCombat struct {
	ReqBase
	TargetType int64
}

func (*ReqPvPCombat) Kind() string { return "ReqPvPCombat" }

// HangingFilter narrows a hanging-effect requirement by disposition and
// count. Shared by the charm, ward, over-time and aura requirements.
type HangingFilter struct {
	Disposition int64
	MinCount    int64
	MaxCount    int64
}

// ReqHangingCharm requires hanging charms on the target.
type ReqHangingCharm struct {
	ReqBase
	TargetType int64
	HangingFilter
}

func (*ReqHangingCharm) Kind() string { return "ReqHangingCharm" }

// ReqHangingWard requires hanging wards on the target.
type ReqHangingWard struct {
	ReqBase
	TargetType int64
	HangingFilter
}

func (*ReqHangingWard) Kind() string { return "ReqHangingWard" }

// ReqHangingOverTime requires hanging over-time effects on the target.
type ReqHangingOverTime struct {
	ReqBase
	TargetType int64
	HangingFilter
}

func (*ReqHangingOverTime) Kind() string { return "ReqHangingOverTime" }

// ReqHangingAura requires hanging auras on the target.
type ReqHangingAura struct {
	ReqBase
	TargetType int64
	HangingFilter
}

func (*ReqHangingAura) Kind() string { return "ReqHangingAura" }

// ReqHangingEffectType requires hanging effects of a specific type.
type ReqHangingEffectType struct {
	ReqBase
	TargetType int64
	EffectType int64
	MinCount   int64
	MaxCount   int64
}

func (*ReqHangingEffectType) Kind() string { return "ReqHangingEffectType" }
