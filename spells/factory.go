// Copyright (C) 2026 BattleBot Developers.
// See LICENSE for copying information.

package spells

import (
	"github.com/CIick/BattleBot/materialize"
	"github.com/CIick/BattleBot/typelist"
)

// BuilderFunc packs a coerced field set into one concrete record kind.
type BuilderFunc func(fields *materialize.FieldSet) materialize.Record

// Factory selects the concrete record kind for a resolved descriptor and
// packs its fields. Adding a new kind means registering a new builder; the
// materializer's traversal never changes for it.
type Factory struct {
	builders map[string]BuilderFunc
}

// NewFactory returns a factory with every spell record kind registered.
func NewFactory() *Factory {
	factory := &Factory{builders: make(map[string]BuilderFunc)}

	factory.Register("SpellTemplate", func(fields *materialize.FieldSet) materialize.Record {
		t := &SpellTemplate{}
		bindTemplate(t, fields)
		return t
	})
	factory.Register("TieredSpellTemplate", func(fields *materialize.FieldSet) materialize.Record {
		t := &TieredSpellTemplate{}
		bindTemplate(&t.SpellTemplate, fields)
		t.NextTierSpells = fields.Strings("m_nextTierSpells")
		t.Requirements = asRequirement(fields.Object("m_requirements"))
		t.Retired = fields.Bool("m_retired")
		t.ShardCost = fields.Int("m_shardCost")
		return t
	})
	factory.Register("CastleMagicSpellTemplate", func(fields *materialize.FieldSet) materialize.Record {
		t := &CastleMagicSpellTemplate{}
		bindTemplate(&t.SpellTemplate, fields)
		t.AnimationKFM = fields.String("m_animationKFM")
		t.AnimationSequence = fields.String("m_animationSequence")
		t.CastleMagicSpellEffect = fields.Int("m_castleMagicSpellEffect")
		t.CastleMagicSpellType = fields.Int("m_castleMagicSpellType")
		t.EffectSchool = fields.String("m_effectSchool")
		return t
	})
	factory.Register("FishingSpellTemplate", func(fields *materialize.FieldSet) materialize.Record {
		t := &FishingSpellTemplate{}
		bindTemplate(&t.SpellTemplate, fields)
		t.AnimationKFM = fields.String("m_animationKFM")
		t.AnimationName = fields.String("m_animationName")
		t.EnergyCost = fields.Int("m_energyCost")
		t.FishingSchoolFocus = fields.String("m_fishingSchoolFocus")
		t.FishingSpellImageIndex = fields.Int("m_fishingSpellImageIndex")
		t.FishingSpellImageName = fields.String("m_fishingSpellImageName")
		t.FishingSpellType = fields.Int("m_fishingSpellType")
		t.SoundEffectGain = fields.Float("m_soundEffectGain")
		t.SoundEffectName = fields.String("m_soundEffectName")
		return t
	})
	factory.Register("GardenSpellTemplate", func(fields *materialize.FieldSet) materialize.Record {
		t := &GardenSpellTemplate{}
		bindTemplate(&t.SpellTemplate, fields)
		t.AffectedRadius = fields.Int("m_affectedRadius")
		t.AnimationKFM = fields.String("m_animationKFM")
		t.AnimationName = fields.String("m_animationName")
		t.AnimationNameLarge = fields.String("m_animationNameLarge")
		t.AnimationNameSmall = fields.String("m_animationNameSmall")
		t.BugZapLevel = fields.Int("m_bugZapLevel")
		t.EnergyCost = fields.Int("m_energyCost")
		t.GardenSpellImageIndex = fields.Int("m_gardenSpellImageIndex")
		t.GardenSpellImageName = fields.String("m_gardenSpellImageName")
		t.GardenSpellType = fields.Int("m_gardenSpellType")
		t.ProtectionTemplateID = fields.Int("m_protectionTemplateID")
		t.ProvidesMagic = fields.Bool("m_providesMagic")
		t.ProvidesMusic = fields.Bool("m_providesMusic")
		t.ProvidesPollination = fields.Bool("m_providesPollination")
		t.ProvidesSun = fields.Bool("m_providesSun")
		t.ProvidesWater = fields.Bool("m_providesWater")
		t.SoilTemplateID = fields.Int("m_soilTemplateID")
		t.SoundEffectGain = fields.Float("m_soundEffectGain")
		t.SoundEffectName = fields.String("m_soundEffectName")
		t.UtilitySpellType = fields.Int("m_utilitySpellType")
		t.YOffset = fields.Float("m_yOffset")
		return t
	})
	factory.Register("CantripsSpellTemplate", func(fields *materialize.FieldSet) materialize.Record {
		t := &CantripsSpellTemplate{}
		bindTemplate(&t.SpellTemplate, fields)
		t.AnimationNames = fields.Strings("m_animationNames")
		t.CantripsSpellEffect = fields.Int("m_cantripsSpellEffect")
		t.CantripsSpellImageIndex = fields.Int("m_cantripsSpellImageIndex")
		t.CantripsSpellImageName = fields.String("m_cantripsSpellImageName")
		t.CantripsSpellType = fields.Int("m_cantripsSpellType")
		t.CooldownSeconds = fields.Int("m_cooldownSeconds")
		t.EffectParameter = fields.String("m_effectParameter")
		t.EnergyCost = fields.Int("m_energyCost")
		t.SoundEffectGain = fields.Float("m_soundEffectGain")
		t.SoundEffectName = fields.String("m_soundEffectName")
		return t
	})
	factory.Register("WhirlyBurlySpellTemplate", func(fields *materialize.FieldSet) materialize.Record {
		t := &WhirlyBurlySpellTemplate{}
		bindTemplate(&t.SpellTemplate, fields)
		t.SpecialUnits = fields.String("m_specialUnits")
		t.UnitMovement = fields.String("m_unitMovement")
		return t
	})

	factory.Register("SpellRank", func(fields *materialize.FieldSet) materialize.Record {
		return &SpellRank{
			BalancePips: fields.Int("m_balancePips"),
			DeathPips:   fields.Int("m_deathPips"),
			FirePips:    fields.Int("m_firePips"),
			IcePips:     fields.Int("m_icePips"),
			LifePips:    fields.Int("m_lifePips"),
			MythPips:    fields.Int("m_mythPips"),
			ShadowPips:  fields.Int("m_shadowPips"),
			SpellRank:   fields.Int("m_spellRank"),
			StormPips:   fields.Int("m_stormPips"),
			XPipSpell:   fields.Bool("m_xPipSpell"),
		}
	})

	registerEffects(factory)
	registerRequirements(factory)
	return factory
}

// Register adds or replaces the builder for a type name.
func (factory *Factory) Register(name string, build BuilderFunc) {
	factory.builders[name] = build
}

// Knows reports whether a record kind is registered for the descriptor.
func (factory *Factory) Knows(desc *typelist.Descriptor) bool {
	_, ok := factory.builders[desc.Name]
	return ok
}

// Build implements materialize.Factory.
func (factory *Factory) Build(desc *typelist.Descriptor, fields *materialize.FieldSet) (materialize.Record, bool) {
	build, ok := factory.builders[desc.Name]
	if !ok {
		return nil, false
	}
	return build(fields), true
}

func bindTemplate(t *SpellTemplate, fields *materialize.FieldSet) {
	t.Name = fields.String("m_name")
	t.DisplayName = fields.String("m_displayName")
	t.Description = fields.String("m_description")
	t.AdvancedDescription = fields.String("m_advancedDescription")
	t.DescriptionCombatHUD = fields.String("m_descriptionCombatHUD")
	t.DescriptionTrainer = fields.String("m_descriptionTrainer")
	t.MagicSchoolName = fields.String("m_sMagicSchoolName")
	t.SecondarySchoolName = fields.String("m_secondarySchoolName")
	t.RequiredSchoolName = fields.String("m_requiredSchoolName")
	t.TypeName = fields.String("m_sTypeName")
	t.SpellBase = fields.String("m_spellBase")
	t.SpellCategory = fields.String("m_spellCategory")
	t.PreviousSpellName = fields.String("m_previousSpellName")
	t.CloakedName = fields.String("m_cloakedName")
	t.ImageName = fields.String("m_imageName")
	t.CardFront = fields.String("m_cardFront")
	t.BoosterPackIcon = fields.String("m_boosterPackIcon")
	t.Accuracy = fields.Int("m_accuracy")
	t.BaseCost = fields.Int("m_baseCost")
	t.CreditsCost = fields.Int("m_creditsCost")
	t.PvpCurrencyCost = fields.Int("m_pvpCurrencyCost")
	t.PvpTourneyCurrencyCost = fields.Int("m_pvpTourneyCurrencyCost")
	t.TrainingCost = fields.Int("m_trainingCost")
	t.LevelRestriction = fields.Int("m_levelRestriction")
	t.MaxCopies = fields.Int("m_maxCopies")
	t.DisplayIndex = fields.Int("m_displayIndex")
	t.ImageIndex = fields.Int("m_imageIndex")
	t.SpellFusion = fields.Int("m_spellFusion")
	t.SpellSourceType = fields.Int("m_spellSourceType")
	t.PvE = fields.Bool("m_PvE")
	t.PvP = fields.Bool("m_PvP")
	t.Treasure = fields.Bool("m_Treasure")
	t.AlwaysFizzle = fields.Bool("m_alwaysFizzle")
	t.BackRowFriendly = fields.Bool("m_backRowFriendly")
	t.BattlegroundsOnly = fields.Bool("m_battlegroundsOnly")
	t.CasterInvisible = fields.Bool("m_casterInvisible")
	t.Cloaked = fields.Bool("m_cloaked")
	t.DelayEnchantment = fields.Bool("m_delayEnchantment")
	t.HiddenFromEffectsWindow = fields.Bool("m_hiddenFromEffectsWindow")
	t.IgnoreCharms = fields.Bool("m_ignoreCharms")
	t.IgnoreDispel = fields.Bool("m_ignoreDispel")
	t.LeavesPlayWhenCast = fields.Bool("m_leavesPlayWhenCast")
	t.NoDiscard = fields.Bool("m_noDiscard")
	t.NoPvEEnchant = fields.Bool("m_noPvEEnchant")
	t.NoPvPEnchant = fields.Bool("m_noPvPEnchant")
	t.ShowPolymorphedName = fields.Bool("m_showPolymorphedName")
	t.SkipTruncation = fields.Bool("m_skipTruncation")
	t.UseGloss = fields.Bool("m_useGloss")

	t.Rank = asRank(fields.Object("m_spellRank"))
	t.Effects = asEffects(fields.Objects("m_effects"))
	t.PurchaseRequirements = asRequirement(fields.Object("m_purchaseRequirements"))
	t.DisplayRequirements = asRequirement(fields.Object("m_displayRequirements"))
	t.Adjectives = fields.Strings("m_adjectives")
	t.Behaviors = fields.Strings("m_behaviors")
	t.ValidTargetSpells = fields.Strings("m_validTargetSpells")
}

// asRank narrows a record to a spell rank; a mistyped nested record is
// treated as absent, the materializer already logged what it saw.
func asRank(record materialize.Record) *SpellRank {
	rank, _ := record.(*SpellRank)
	return rank
}

func asRequirement(record materialize.Record) Requirement {
	req, _ := record.(Requirement)
	return req
}

func asEffect(record materialize.Record) Effect {
	effect, _ := record.(Effect)
	return effect
}

// asEffects narrows a record list, keeping nil placeholders so positions
// survive into the store.
func asEffects(records []materialize.Record) []Effect {
	if records == nil {
		return nil
	}
	out := make([]Effect, len(records))
	for i, record := range records {
		out[i] = asEffect(record)
	}
	return out
}

func asRequirements(records []materialize.Record) []Requirement {
	if records == nil {
		return nil
	}
	out := make([]Requirement, len(records))
	for i, record := range records {
		out[i] = asRequirement(record)
	}
	return out
}

func asEffectLists(records []materialize.Record) []*EffectListSpellEffect {
	if records == nil {
		return nil
	}
	out := make([]*EffectListSpellEffect, len(records))
	for i, record := range records {
		list, _ := record.(*EffectListSpellEffect)
		out[i] = list
	}
	return out
}
