// Copyright (C) 2026 BattleBot Developers.
// See LICENSE for copying information.

package demondb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/CIick/BattleBot/materialize"
	"github.com/CIick/BattleBot/spells"
)

// PersistOutcome classifies what happened to one top-level record.
type PersistOutcome int

const (
	// PersistFailed means the transaction did not commit; no rows were
	// written for the record.
	PersistFailed PersistOutcome = iota
	// PersistInserted means every row of the record committed.
	PersistInserted
	// PersistDuplicateRejected means a record with the same filename
	// already exists; the existing rows were kept and the collision was
	// recorded in the duplicate log.
	PersistDuplicateRejected
)

// String returns the log name of the outcome.
func (outcome PersistOutcome) String() string {
	switch outcome {
	case PersistInserted:
		return "inserted"
	case PersistDuplicateRejected:
		return "duplicate_rejected"
	case PersistFailed:
		return "failed"
	}
	return "unknown"
}

// Persist writes one materialized spell record under its natural key, the
// entry filename. The card row, rank, position children, effect tree and
// requirement trees commit in a single transaction. A filename collision
// loses on the spell_cards primary key: the first writer's rows stay, the
// collision goes to the duplicate log, and the outcome is
// PersistDuplicateRejected with a nil error.
func (db *DB) Persist(ctx context.Context, filename string, record materialize.Record, rawSnapshot string) (_ PersistOutcome, err error) {
	defer mon.Task()(&ctx)(&err)

	template, ok := record.(spells.Template)
	if !ok {
		return PersistFailed, ErrDatabase.New("record kind %q is not persistable", record.Kind())
	}

	err = db.withTx(ctx, func(tx *sql.Tx) error {
		return db.insertTemplate(ctx, tx, filename, record.Kind(), template, rawSnapshot)
	})
	if err == nil {
		return PersistInserted, nil
	}
	if !isConstraintError(err) {
		return PersistFailed, ErrDatabase.Wrap(err)
	}

	logErr := db.logDuplicate(ctx, filename, record.Kind(), err.Error(), rawSnapshot)
	if logErr != nil {
		return PersistFailed, ErrDatabase.Wrap(logErr)
	}
	db.log.Debug("duplicate rejected", zap.String("filename", filename))
	return PersistDuplicateRejected, nil
}

func isConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrConstraint
}

func (db *DB) insertTemplate(ctx context.Context, tx *sql.Tx, filename, kind string, template spells.Template, rawSnapshot string) error {
	card := template.Card()

	_, err := tx.ExecContext(ctx, `
		INSERT INTO spell_cards (
			filename, kind, raw_snapshot,
			name, display_name, description, advanced_description,
			description_combat_hud, description_trainer,
			magic_school_name, secondary_school_name, required_school_name,
			type_name, spell_base, spell_category, previous_spell_name,
			cloaked_name, image_name, card_front, booster_pack_icon,
			accuracy, base_cost, credits_cost, pvp_currency_cost,
			pvp_tourney_currency_cost, training_cost, level_restriction,
			max_copies, display_index, image_index, spell_fusion,
			spell_source_type,
			pve, pvp, treasure, always_fizzle, back_row_friendly,
			battlegrounds_only, caster_invisible, cloaked, delay_enchantment,
			hidden_from_effects_window, ignore_charms, ignore_dispel,
			leaves_play_when_cast, no_discard, no_pve_enchant, no_pvp_enchant,
			show_polymorphed_name, skip_truncation, use_gloss
		) VALUES (?, ?, ?,
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		filename, kind, rawSnapshot,
		card.Name, card.DisplayName, card.Description, card.AdvancedDescription,
		card.DescriptionCombatHUD, card.DescriptionTrainer,
		card.MagicSchoolName, card.SecondarySchoolName, card.RequiredSchoolName,
		card.TypeName, card.SpellBase, card.SpellCategory, card.PreviousSpellName,
		card.CloakedName, card.ImageName, card.CardFront, card.BoosterPackIcon,
		card.Accuracy, card.BaseCost, card.CreditsCost, card.PvpCurrencyCost,
		card.PvpTourneyCurrencyCost, card.TrainingCost, card.LevelRestriction,
		card.MaxCopies, card.DisplayIndex, card.ImageIndex, card.SpellFusion,
		card.SpellSourceType,
		card.PvE, card.PvP, card.Treasure, card.AlwaysFizzle, card.BackRowFriendly,
		card.BattlegroundsOnly, card.CasterInvisible, card.Cloaked, card.DelayEnchantment,
		card.HiddenFromEffectsWindow, card.IgnoreCharms, card.IgnoreDispel,
		card.LeavesPlayWhenCast, card.NoDiscard, card.NoPvEEnchant, card.NoPvPEnchant,
		card.ShowPolymorphedName, card.SkipTruncation, card.UseGloss,
	)
	if err != nil {
		return err
	}

	if card.Rank != nil {
		rank := card.Rank
		_, err = tx.ExecContext(ctx, `
			INSERT INTO spell_ranks (
				filename, balance_pips, death_pips, fire_pips, ice_pips,
				life_pips, myth_pips, shadow_pips, spell_rank, storm_pips,
				x_pip_spell
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			filename, rank.BalancePips, rank.DeathPips, rank.FirePips, rank.IcePips,
			rank.LifePips, rank.MythPips, rank.ShadowPips, rank.SpellRank, rank.StormPips,
			rank.XPipSpell,
		)
		if err != nil {
			return err
		}
	}

	for table, values := range map[string][]string{
		"spell_adjectives":    card.Adjectives,
		"spell_behaviors":     card.Behaviors,
		"spell_valid_targets": card.ValidTargetSpells,
	} {
		err = insertPositions(ctx, tx, table, filename, values)
		if err != nil {
			return err
		}
	}

	for position, effect := range card.Effects {
		if effect == nil {
			// a degraded list element keeps its position, nothing to store
			continue
		}
		_, err = db.insertEffect(ctx, tx, filename, sql.NullInt64{}, int64(position), effect)
		if err != nil {
			return err
		}
	}

	if card.PurchaseRequirements != nil {
		_, err = db.insertRequirement(ctx, tx, filename, sql.NullInt64{}, 0, "purchase", card.PurchaseRequirements)
		if err != nil {
			return err
		}
	}
	if card.DisplayRequirements != nil {
		_, err = db.insertRequirement(ctx, tx, filename, sql.NullInt64{}, 0, "display", card.DisplayRequirements)
		if err != nil {
			return err
		}
	}

	return db.insertExtension(ctx, tx, filename, template)
}

func insertPositions(ctx context.Context, tx *sql.Tx, table, filename string, values []string) error {
	for position, value := range values {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO `+table+` (filename, position, value) VALUES (?, ?, ?)`,
			filename, position, value,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) insertExtension(ctx context.Context, tx *sql.Tx, filename string, template spells.Template) error {
	switch t := template.(type) {
	case *spells.SpellTemplate:
		return nil

	case *spells.TieredSpellTemplate:
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tiered_spell_data (filename, retired, shard_cost)
			VALUES (?, ?, ?)`,
			filename, t.Retired, t.ShardCost,
		)
		if err != nil {
			return err
		}
		for position, name := range t.NextTierSpells {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO tiered_spell_next_tiers (filename, position, spell_name)
				VALUES (?, ?, ?)`,
				filename, position, name,
			)
			if err != nil {
				return err
			}
		}
		if t.Requirements != nil {
			_, err = db.insertRequirement(ctx, tx, filename, sql.NullInt64{}, 0, "tiered", t.Requirements)
		}
		return err

	case *spells.CantripsSpellTemplate:
		_, err := tx.ExecContext(ctx, `
			INSERT INTO cantrips_spell_data (
				filename, cantrips_spell_effect, cantrips_spell_image_index,
				cantrips_spell_image_name, cantrips_spell_type,
				cooldown_seconds, effect_parameter, energy_cost,
				sound_effect_gain, sound_effect_name
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			filename, t.CantripsSpellEffect, t.CantripsSpellImageIndex,
			t.CantripsSpellImageName, t.CantripsSpellType,
			t.CooldownSeconds, t.EffectParameter, t.EnergyCost,
			t.SoundEffectGain, t.SoundEffectName,
		)
		if err != nil {
			return err
		}
		return insertPositions(ctx, tx, "cantrips_animation_names", filename, t.AnimationNames)

	case *spells.CastleMagicSpellTemplate:
		_, err := tx.ExecContext(ctx, `
			INSERT INTO castle_magic_spell_data (
				filename, animation_kfm, animation_sequence,
				castle_magic_spell_effect, castle_magic_spell_type, effect_school
			) VALUES (?, ?, ?, ?, ?, ?)`,
			filename, t.AnimationKFM, t.AnimationSequence,
			t.CastleMagicSpellEffect, t.CastleMagicSpellType, t.EffectSchool,
		)
		return err

	case *spells.FishingSpellTemplate:
		_, err := tx.ExecContext(ctx, `
			INSERT INTO fishing_spell_data (
				filename, animation_kfm, animation_name, energy_cost,
				fishing_school_focus, fishing_spell_image_index,
				fishing_spell_image_name, fishing_spell_type,
				sound_effect_gain, sound_effect_name
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			filename, t.AnimationKFM, t.AnimationName, t.EnergyCost,
			t.FishingSchoolFocus, t.FishingSpellImageIndex,
			t.FishingSpellImageName, t.FishingSpellType,
			t.SoundEffectGain, t.SoundEffectName,
		)
		return err

	case *spells.GardenSpellTemplate:
		_, err := tx.ExecContext(ctx, `
			INSERT INTO garden_spell_data (
				filename, affected_radius, animation_kfm, animation_name,
				animation_name_large, animation_name_small, bug_zap_level,
				energy_cost, garden_spell_image_index, garden_spell_image_name,
				garden_spell_type, protection_template_id, provides_magic,
				provides_music, provides_pollination, provides_sun,
				provides_water, soil_template_id, sound_effect_gain,
				sound_effect_name, utility_spell_type, y_offset
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			filename, t.AffectedRadius, t.AnimationKFM, t.AnimationName,
			t.AnimationNameLarge, t.AnimationNameSmall, t.BugZapLevel,
			t.EnergyCost, t.GardenSpellImageIndex, t.GardenSpellImageName,
			t.GardenSpellType, t.ProtectionTemplateID, t.ProvidesMagic,
			t.ProvidesMusic, t.ProvidesPollination, t.ProvidesSun,
			t.ProvidesWater, t.SoilTemplateID, t.SoundEffectGain,
			t.SoundEffectName, t.UtilitySpellType, t.YOffset,
		)
		return err

	case *spells.WhirlyBurlySpellTemplate:
		_, err := tx.ExecContext(ctx, `
			INSERT INTO whirlyburly_spell_data (filename, special_units, unit_movement)
			VALUES (?, ?, ?)`,
			filename, t.SpecialUnits, t.UnitMovement,
		)
		return err
	}
	return ErrDatabase.New("no extension mapping for template kind %q", template.Kind())
}

func (db *DB) insertEffect(ctx context.Context, tx *sql.Tx, filename string, parent sql.NullInt64, position int64, effect spells.Effect) (int64, error) {
	base := effect.Base()
	result, err := tx.ExecContext(ctx, `
		INSERT INTO spell_effects (
			filename, parent_effect_id, position, kind,
			act, act_num, armor_piercing_param, bypass_protection,
			chance_per_target, cloaked, converted, damage_type,
			damage_type_name, disposition, effect_param, effect_target,
			effect_type, enchantment_spell_template_id, heal_modifier,
			num_rounds, param_per_round, pip_num, protected, rank,
			spell_template_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		filename, parent, position, effect.Kind(),
		base.Act, base.ActNum, base.ArmorPiercingParam, base.BypassProtection,
		base.ChancePerTarget, base.Cloaked, base.Converted, base.DamageType,
		base.DamageTypeName, base.Disposition, base.EffectParam, base.EffectTarget,
		base.EffectType, base.EnchantmentSpellTemplateID, base.HealModifier,
		base.NumRounds, base.ParamPerRound, base.PipNum, base.Protected, base.Rank,
		base.SpellTemplateID,
	)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	self := sql.NullInt64{Int64: id, Valid: true}

	insertChildren := func(children []spells.Effect) error {
		for childPos, child := range children {
			if child == nil {
				continue
			}
			_, err := db.insertEffect(ctx, tx, filename, self, int64(childPos), child)
			if err != nil {
				return err
			}
		}
		return nil
	}

	switch e := effect.(type) {
	case *spells.SpellEffect:

	case *spells.DelaySpellEffect:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO delay_spell_effects (
				effect_id, damage, rounds, spell_delayed_template_id,
				spell_delayed_template_damage_id, spell_enchanter_template_id,
				spell_hits
			) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, e.Damage, e.Rounds, e.SpellDelayedTemplateID,
			e.SpellDelayedTemplateDamageID, e.SpellEnchanterTemplateID,
			e.SpellHits,
		)
		if err != nil {
			return 0, err
		}
		for subPos, subcircle := range e.TargetSubcircleList {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO delay_spell_target_subcircles (effect_id, position, subcircle)
				VALUES (?, ?, ?)`,
				id, subPos, subcircle,
			)
			if err != nil {
				return 0, err
			}
		}

	case *spells.RandomPerTargetSpellEffect:
		err = insertChildren(e.EffectList)

	case *spells.RandomSpellEffect:
		err = insertChildren(e.EffectList)

	case *spells.ShadowSpellEffect:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO shadow_spell_effects (effect_id, shadow_type) VALUES (?, ?)`,
			id, e.ShadowType,
		)
		if err != nil {
			return 0, err
		}
		err = insertChildren(e.EffectList)

	case *spells.EffectListSpellEffect:
		err = insertChildren(e.EffectList)

	case *spells.VariableSpellEffect:
		err = insertChildren(e.EffectList)

	case *spells.ConditionalSpellEffect:
		for elemPos, element := range e.Elements {
			if element == nil {
				continue
			}
			var reqID, effID sql.NullInt64
			if element.Reqs != nil {
				reqRow, err := db.insertRequirement(ctx, tx, filename, sql.NullInt64{}, int64(elemPos), "conditional", element.Reqs)
				if err != nil {
					return 0, err
				}
				reqID = sql.NullInt64{Int64: reqRow, Valid: true}
			}
			if element.Effect != nil {
				effRow, err := db.insertEffect(ctx, tx, filename, self, int64(elemPos), element.Effect)
				if err != nil {
					return 0, err
				}
				effID = sql.NullInt64{Int64: effRow, Valid: true}
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO conditional_spell_elements (effect_id, position, requirement_id, element_effect_id)
				VALUES (?, ?, ?, ?)`,
				id, elemPos, reqID, effID,
			)
			if err != nil {
				return 0, err
			}
		}

	case *spells.TargetCountSpellEffect:
		for childPos, child := range e.EffectLists {
			if child == nil {
				continue
			}
			_, err = db.insertEffect(ctx, tx, filename, self, int64(childPos), child)
			if err != nil {
				return 0, err
			}
		}

	case *spells.HangingConversionSpellEffect:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO hanging_conversion_spell_effects (
				effect_id, hanging_effect_type, output_selector,
				min_effect_value, max_effect_value, min_effect_count,
				max_effect_count, not_damage_type, scale_source_effect_value,
				source_effect_value_percent, apply_to_effect_source
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, e.HangingEffectType, e.OutputSelector,
			e.MinEffectValue, e.MaxEffectValue, e.MinEffectCount,
			e.MaxEffectCount, e.NotDamageType, e.ScaleSourceEffectValue,
			e.SourceEffectValuePercent, e.ApplyToEffectSource,
		)
		if err != nil {
			return 0, err
		}
		for subPos, effectType := range e.SpecificEffectTypes {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO hanging_conversion_specific_types (effect_id, position, effect_type)
				VALUES (?, ?, ?)`,
				id, subPos, effectType,
			)
			if err != nil {
				return 0, err
			}
		}
		err = insertChildren(e.OutputEffect)

	case *spells.CountBasedSpellEffect:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO count_based_spell_effects (effect_id, count_threshold) VALUES (?, ?)`,
			id, e.CountThreshold,
		)
		if err != nil {
			return 0, err
		}
		err = insertChildren(e.EffectList)

	default:
		return 0, ErrDatabase.New("no effect mapping for kind %q", effect.Kind())
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (db *DB) insertRequirement(ctx context.Context, tx *sql.Tx, filename string, parent sql.NullInt64, position int64, role string, requirement spells.Requirement) (int64, error) {
	common := requirement.Common()
	targetType := requirementTargetType(requirement)
	result, err := tx.ExecContext(ctx, `
		INSERT INTO requirements (
			filename, parent_list_id, position, role, kind,
			apply_not, operator, target_type
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		filename, parent, position, role, requirement.Kind(),
		common.ApplyNot, common.Operator, targetType,
	)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	self := sql.NullInt64{Int64: id, Valid: true}

	switch r := requirement.(type) {
	case *spells.RequirementList:
		for childPos, child := range r.Requirements {
			if child == nil {
				continue
			}
			_, err := db.insertRequirement(ctx, tx, filename, self, int64(childPos), role, child)
			if err != nil {
				return 0, err
			}
		}
		return id, nil

	case *spells.ReqMagicLevel:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO req_magic_level (requirement_id, magic_school, numeric_value, operator_type)
			VALUES (?, ?, ?, ?)`,
			id, r.MagicSchool, r.NumericValue, r.OperatorType,
		)

	case *spells.ReqGardeningLevel:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO req_gardening_level (requirement_id, numeric_value, operator_type)
			VALUES (?, ?, ?)`,
			id, r.NumericValue, r.OperatorType,
		)

	case *spells.ReqHasBadge:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO req_has_badge (requirement_id, badge_name) VALUES (?, ?)`,
			id, r.BadgeName,
		)

	case *spells.ReqIsSchool:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO req_is_school (requirement_id, magic_school_name) VALUES (?, ?)`,
			id, r.MagicSchoolName,
		)

	case *spells.ReqSchoolOfFocus:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO req_school_of_focus (requirement_id, magic_school_name) VALUES (?, ?)`,
			id, r.MagicSchoolName,
		)

	case *spells.ReqPipCount:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO req_pip_count (requirement_id, min_pips, max_pips) VALUES (?, ?, ?)`,
			id, r.MinPips, r.MaxPips,
		)

	case *spells.ReqShadowPipCount:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO req_shadow_pip_count (requirement_id, min_pips, max_pips) VALUES (?, ?, ?)`,
			id, r.MinPips, r.MaxPips,
		)

	case *spells.ReqCombatHealth:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO req_combat_health (requirement_id, min_percent, max_percent) VALUES (?, ?, ?)`,
			id, r.MinPercent, r.MaxPercent,
		)

	case *spells.ReqCombatStatus:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO req_combat_status (requirement_id, combat_status) VALUES (?, ?)`,
			id, r.CombatStatus,
		)

	case *spells.ReqMinion:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO req_minion (requirement_id, min_count, max_count) VALUES (?, ?, ?)`,
			id, r.MinCount, r.MaxCount,
		)

	case *spells.ReqHasEntry:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO req_has_entry (requirement_id, entry_name) VALUES (?, ?)`,
			id, r.EntryName,
		)

	case *spells.ReqPvPCombat:
		// base columns only

	case *spells.ReqHangingCharm:
		err = insertHanging(ctx, tx, id, r.HangingFilter)
	case *spells.ReqHangingWard:
		err = insertHanging(ctx, tx, id, r.HangingFilter)
	case *spells.ReqHangingOverTime:
		err = insertHanging(ctx, tx, id, r.HangingFilter)
	case *spells.ReqHangingAura:
		err = insertHanging(ctx, tx, id, r.HangingFilter)

	case *spells.ReqHangingEffectType:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO req_hanging_effect_type (requirement_id, effect_type, min_count, max_count)
			VALUES (?, ?, ?, ?)`,
			id, r.EffectType, r.MinCount, r.MaxCount,
		)

	default:
		return 0, ErrDatabase.New("no requirement mapping for kind %q", requirement.Kind())
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func insertHanging(ctx context.Context, tx *sql.Tx, id int64, filter spells.HangingFilter) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO req_hanging (requirement_id, disposition, min_count, max_count)
		VALUES (?, ?, ?, ?)`,
		id, filter.Disposition, filter.MinCount, filter.MaxCount,
	)
	return err
}

func requirementTargetType(requirement spells.Requirement) int64 {
	switch r := requirement.(type) {
	case *spells.ReqIsSchool:
		return r.TargetType
	case *spells.ReqSchoolOfFocus:
		return r.TargetType
	case *spells.ReqPipCount:
		return r.TargetType
	case *spells.ReqShadowPipCount:
		return r.TargetType
	case *spells.ReqCombatHealth:
		return r.TargetType
	case *spells.ReqCombatStatus:
		return r.TargetType
	case *spells.ReqMinion:
		return r.TargetType
	case *spells.ReqHasEntry:
		return r.TargetType
	case *spells.ReqPvPCombat:
		return r.TargetType
	case *spells.ReqHangingCharm:
		return r.TargetType
	case *spells.ReqHangingWard:
		return r.TargetType
	case *spells.ReqHangingOverTime:
		return r.TargetType
	case *spells.ReqHangingAura:
		return r.TargetType
	case *spells.ReqHangingEffectType:
		return r.TargetType
	}
	return 0
}

// logDuplicate records a natural-key collision with both raw snapshots and
// a field diff, outside the failed insert's transaction.
func (db *DB) logDuplicate(ctx context.Context, filename, kind, message, incomingSnapshot string) error {
	var existingSnapshot string
	err := db.db.QueryRowContext(ctx,
		`SELECT raw_snapshot FROM spell_cards WHERE filename = ?`, filename,
	).Scan(&existingSnapshot)
	if err != nil {
		return err
	}

	_, err = db.db.ExecContext(ctx, `
		INSERT INTO duplicate_log (
			filename, duplicate_type, error_message,
			incoming_snapshot, existing_snapshot, diff, detected_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		filename, kind, message,
		incomingSnapshot, existingSnapshot,
		snapshotDiff(existingSnapshot, incomingSnapshot),
		time.Now().UTC(),
	)
	return err
}
