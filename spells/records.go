// Copyright (C) 2026 BattleBot Developers.
// See LICENSE for copying information.

// Package spells defines the closed set of record kinds the extractor
// understands, mirroring the archive's spell class hierarchy. Inheritance
// in the archive becomes struct embedding here: a specialized kind embeds
// its base's fields, ancestor fields first, with no dynamic dispatch.
package spells

import (
	"github.com/CIick/BattleBot/materialize"
)

// Effect is any spell effect variant. Base returns the embedded common
// fields shared by every effect kind.
type Effect interface {
	materialize.Record
	Base() *SpellEffect
}

// Requirement is any cast requirement variant.
type Requirement interface {
	materialize.Record
	Common() *ReqBase
}

// Template is any spell template variant, the persistable top-level kind.
type Template interface {
	materialize.Record
	Card() *SpellTemplate
}

// SpellRank describes the pip cost of a spell.
type SpellRank struct {
	BalancePips int64
	DeathPips   int64
	FirePips    int64
	IcePips     int64
	LifePips    int64
	MythPips    int64
	ShadowPips  int64
	SpellRank   int64
	StormPips   int64
	XPipSpell   bool
}

func (*SpellRank) Kind() string { return "SpellRank" }

// SpellTemplate is the base template every spell card shares.
type SpellTemplate struct {
	Name                    string
	DisplayName             string
	Description             string
	AdvancedDescription     string
	DescriptionCombatHUD    string
	DescriptionTrainer      string
	MagicSchoolName         string
	SecondarySchoolName     string
	RequiredSchoolName      string
	TypeName                string
	SpellBase               string
	SpellCategory           string
	PreviousSpellName       string
	CloakedName             string
	ImageName               string
	CardFront               string
	BoosterPackIcon         string
	Accuracy                int64
	BaseCost                int64
	CreditsCost             int64
	PvpCurrencyCost         int64
	PvpTourneyCurrencyCost  int64
	TrainingCost            int64
	LevelRestriction        int64
	MaxCopies               int64
	DisplayIndex            int64
	ImageIndex              int64
	SpellFusion             int64
	SpellSourceType         int64
	PvE                     bool
	PvP                     bool
	Treasure                bool
	AlwaysFizzle            bool
	BackRowFriendly         bool
	BattlegroundsOnly       bool
	CasterInvisible         bool
	Cloaked                 bool
	DelayEnchantment        bool
	HiddenFromEffectsWindow bool
	IgnoreCharms            bool
	IgnoreDispel            bool
	LeavesPlayWhenCast      bool
	NoDiscard               bool
	NoPvEEnchant            bool
	NoPvPEnchant            bool
	ShowPolymorphedName     bool
	SkipTruncation          bool
	UseGloss                bool

	Rank                 *SpellRank
	Effects              []Effect
	PurchaseRequirements Requirement
	DisplayRequirements  Requirement
	Adjectives           []string
	Behaviors            []string
	ValidTargetSpells    []string
}

func (*SpellTemplate) Kind() string { return "SpellTemplate" }

// Card implements Template.
func (t *SpellTemplate) Card() *SpellTemplate { return t }

// TieredSpellTemplate is a template that upgrades through spellwrighting
// tiers.
type TieredSpellTemplate struct {
	SpellTemplate
	NextTierSpells []string
	Requirements   Requirement
	Retired        bool
	ShardCost      int64
}

func (*TieredSpellTemplate) Kind() string { return "TieredSpellTemplate" }

// CastleMagicSpellTemplate is a housing magic template.
type CastleMagicSpellTemplate struct {
	SpellTemplate
	AnimationKFM           string
	AnimationSequence      string
	CastleMagicSpellEffect int64
	CastleMagicSpellType   int64
	EffectSchool           string
}

func (*CastleMagicSpellTemplate) Kind() string { return "CastleMagicSpellTemplate" }

// FishingSpellTemplate is a fishing spell template.
type FishingSpellTemplate struct {
	SpellTemplate
	AnimationKFM           string
	AnimationName          string
	EnergyCost             int64
	FishingSchoolFocus     string
	FishingSpellImageIndex int64
	FishingSpellImageName  string
	FishingSpellType       int64
	SoundEffectGain        float64
	SoundEffectName        string
}

func (*FishingSpellTemplate) Kind() string { return "FishingSpellTemplate" }

// GardenSpellTemplate is a gardening spell template.
type GardenSpellTemplate struct {
	SpellTemplate
	AffectedRadius        int64
	AnimationKFM          string
	AnimationName         string
	AnimationNameLarge    string
	AnimationNameSmall    string
	BugZapLevel           int64
	EnergyCost            int64
	GardenSpellImageIndex int64
	GardenSpellImageName  string
	GardenSpellType       int64
	ProtectionTemplateID  int64
	ProvidesMagic         bool
	ProvidesMusic         bool
	ProvidesPollination   bool
	ProvidesSun           bool
	ProvidesWater         bool
	SoilTemplateID        int64
	SoundEffectGain       float64
	SoundEffectName       string
	UtilitySpellType      int64
	YOffset               float64
}

func (*GardenSpellTemplate) Kind() string { return "GardenSpellTemplate" }

// CantripsSpellTemplate is a cantrip template.
type CantripsSpellTemplate struct {
	SpellTemplate
	AnimationNames          []string
	CantripsSpellEffect     int64
	CantripsSpellImageIndex int64
	CantripsSpellImageName  string
	CantripsSpellType       int64
	CooldownSeconds         int64
	EffectParameter         string
	EnergyCost              int64
	SoundEffectGain         float64
	SoundEffectName         string
}

func (*CantripsSpellTemplate) Kind() string { return "CantripsSpellTemplate" }

// WhirlyBurlySpellTemplate is a whirlyburly minigame template.
type WhirlyBurlySpellTemplate struct {
	SpellTemplate
	SpecialUnits string
	UnitMovement string
}

func (*WhirlyBurlySpellTemplate) Kind() string { return "WhirlyBurlySpellTemplate" }
