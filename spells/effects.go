// Copyright (C) 2026 BattleBot Developers.
// See LICENSE for copying information.

package spells

// SpellEffect is the base effect every effect kind shares.
type SpellEffect struct {
	Act                        bool
	ActNum                     int64
	ArmorPiercingParam         int64
	BypassProtection           bool
	ChancePerTarget            int64
	Cloaked                    bool
	Converted                  bool
	DamageType                 int64
	DamageTypeName             string
	Disposition                int64
	EffectParam                int64
	EffectTarget               int64
	EffectType                 int64
	EnchantmentSpellTemplateID int64
	HealModifier               float64
	NumRounds                  int64
	ParamPerRound              int64
	PipNum                     int64
	Protected                  bool
	Rank                       int64
	SpellTemplateID            int64
}

func (*SpellEffect) Kind() string { return "SpellEffect" }

// Base implements Effect.
func (e *SpellEffect) Base() *SpellEffect { return e }

// DelaySpellEffect is an effect that casts another spell after a number of
// rounds.
type DelaySpellEffect struct {
	SpellEffect
	Damage                       int64
	Rounds                       int64
	SpellDelayedTemplateID       int64
	SpellDelayedTemplateDamageID int64
	SpellEnchanterTemplateID     int64
	SpellHits                    int64
	TargetSubcircleList          []int64
}

func (*DelaySpellEffect) Kind() string { return "DelaySpellEffect" }

// RandomSpellEffect picks one of its sub effects at cast time.
type RandomSpellEffect struct {
	SpellEffect
	EffectList []Effect
}

func (*RandomSpellEffect) Kind() string { return "RandomSpellEffect" }

// RandomPerTargetSpellEffect rerolls the random choice per target.
type RandomPerTargetSpellEffect struct {
	RandomSpellEffect
}

func (*RandomPerTargetSpellEffect) Kind() string { return "RandomPerTargetSpellEffect" }

// EffectListSpellEffect applies every sub effect in order.
type EffectListSpellEffect struct {
	SpellEffect
	EffectList []Effect
}

func (*EffectListSpellEffect) Kind() string { return "EffectListSpellEffect" }

// ShadowSpellEffect is an effect list gated on shadow pips.
type ShadowSpellEffect struct {
	EffectListSpellEffect
	ShadowType int64
}

func (*ShadowSpellEffect) Kind() string { return "ShadowSpellEffect" }

// VariableSpellEffect scales its sub effects with the pips spent.
type VariableSpellEffect struct {
	SpellEffect
	EffectList []Effect
}

func (*VariableSpellEffect) Kind() string { return "VariableSpellEffect" }

// ConditionalSpellElement pairs a requirement list with the effect applied
// when it holds. It is a container, not an effect kind of its own.
type ConditionalSpellElement struct {
	Reqs   Requirement
	Effect Effect
}

func (*ConditionalSpellElement) Kind() string { return "ConditionalSpellElement" }

// ConditionalSpellEffect evaluates its elements in order and applies the
// first whose requirements hold.
type ConditionalSpellEffect struct {
	SpellEffect
	Elements []*ConditionalSpellElement
}

func (*ConditionalSpellEffect) Kind() string { return "ConditionalSpellEffect" }

// TargetCountSpellEffect selects an effect list by the number of targets.
type TargetCountSpellEffect struct {
	SpellEffect
	EffectLists []*EffectListSpellEffect
}

func (*TargetCountSpellEffect) Kind() string { return "TargetCountSpellEffect" }

// HangingConversionSpellEffect converts hanging effects into new output
// effects.
type HangingConversionSpellEffect struct {
	SpellEffect
	HangingEffectType        int64
	OutputSelector           int64
	SpecificEffectTypes      []int64
	MinEffectValue           int64
	MaxEffectValue           int64
	MinEffectCount           int64
	MaxEffectCount           int64
	NotDamageType            bool
	ScaleSourceEffectValue   bool
	SourceEffectValuePercent float64
	ApplyToEffectSource      bool
	OutputEffect             []Effect
}

func (*HangingConversionSpellEffect) Kind() string { return "HangingConversionSpellEffect" }

// CountBasedSpellEffect applies its sub effects once a count threshold is
// reached.
type CountBasedSpellEffect struct {
	SpellEffect
	EffectList     []Effect
	CountThreshold int64
}

func (*CountBasedSpellEffect) Kind() string { return "CountBasedSpellEffect" }
