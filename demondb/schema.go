// Copyright (C) 2026 BattleBot Developers.
// See LICENSE for copying information.

package demondb

import (
	"github.com/CIick/BattleBot/internal/migrate"
)

// Migration returns the full schema history of the spell database.
func (db *DB) Migration() *migrate.Migration {
	return &migrate.Migration{
		Table: VersionTable,
		Steps: []*migrate.Step{
			{
				DB:          db.db,
				Description: "Initial spell card schema",
				Version:     0,
				Action: migrate.SQL{
					`CREATE TABLE spell_cards (
						filename TEXT NOT NULL PRIMARY KEY,
						kind TEXT NOT NULL,
						raw_snapshot TEXT NOT NULL,
						name TEXT NOT NULL,
						display_name TEXT NOT NULL,
						description TEXT NOT NULL,
						advanced_description TEXT NOT NULL,
						description_combat_hud TEXT NOT NULL,
						description_trainer TEXT NOT NULL,
						magic_school_name TEXT NOT NULL,
						secondary_school_name TEXT NOT NULL,
						required_school_name TEXT NOT NULL,
						type_name TEXT NOT NULL,
						spell_base TEXT NOT NULL,
						spell_category TEXT NOT NULL,
						previous_spell_name TEXT NOT NULL,
						cloaked_name TEXT NOT NULL,
						image_name TEXT NOT NULL,
						card_front TEXT NOT NULL,
						booster_pack_icon TEXT NOT NULL,
						accuracy INTEGER NOT NULL,
						base_cost INTEGER NOT NULL,
						credits_cost INTEGER NOT NULL,
						pvp_currency_cost INTEGER NOT NULL,
						pvp_tourney_currency_cost INTEGER NOT NULL,
						training_cost INTEGER NOT NULL,
						level_restriction INTEGER NOT NULL,
						max_copies INTEGER NOT NULL,
						display_index INTEGER NOT NULL,
						image_index INTEGER NOT NULL,
						spell_fusion INTEGER NOT NULL,
						spell_source_type INTEGER NOT NULL,
						pve INTEGER NOT NULL,
						pvp INTEGER NOT NULL,
						treasure INTEGER NOT NULL,
						always_fizzle INTEGER NOT NULL,
						back_row_friendly INTEGER NOT NULL,
						battlegrounds_only INTEGER NOT NULL,
						caster_invisible INTEGER NOT NULL,
						cloaked INTEGER NOT NULL,
						delay_enchantment INTEGER NOT NULL,
						hidden_from_effects_window INTEGER NOT NULL,
						ignore_charms INTEGER NOT NULL,
						ignore_dispel INTEGER NOT NULL,
						leaves_play_when_cast INTEGER NOT NULL,
						no_discard INTEGER NOT NULL,
						no_pve_enchant INTEGER NOT NULL,
						no_pvp_enchant INTEGER NOT NULL,
						show_polymorphed_name INTEGER NOT NULL,
						skip_truncation INTEGER NOT NULL,
						use_gloss INTEGER NOT NULL
					)`,
					`CREATE TABLE spell_ranks (
						filename TEXT NOT NULL PRIMARY KEY REFERENCES spell_cards(filename),
						balance_pips INTEGER NOT NULL,
						death_pips INTEGER NOT NULL,
						fire_pips INTEGER NOT NULL,
						ice_pips INTEGER NOT NULL,
						life_pips INTEGER NOT NULL,
						myth_pips INTEGER NOT NULL,
						shadow_pips INTEGER NOT NULL,
						spell_rank INTEGER NOT NULL,
						storm_pips INTEGER NOT NULL,
						x_pip_spell INTEGER NOT NULL
					)`,
					`CREATE TABLE spell_adjectives (
						filename TEXT NOT NULL REFERENCES spell_cards(filename),
						position INTEGER NOT NULL,
						value TEXT NOT NULL,
						PRIMARY KEY (filename, position)
					)`,
					`CREATE TABLE spell_behaviors (
						filename TEXT NOT NULL REFERENCES spell_cards(filename),
						position INTEGER NOT NULL,
						value TEXT NOT NULL,
						PRIMARY KEY (filename, position)
					)`,
					`CREATE TABLE spell_valid_targets (
						filename TEXT NOT NULL REFERENCES spell_cards(filename),
						position INTEGER NOT NULL,
						value TEXT NOT NULL,
						PRIMARY KEY (filename, position)
					)`,
				},
			},
			{
				DB:          db.db,
				Description: "Per-kind card extension tables",
				Version:     1,
				Action: migrate.SQL{
					`CREATE TABLE tiered_spell_data (
						filename TEXT NOT NULL PRIMARY KEY REFERENCES spell_cards(filename),
						retired INTEGER NOT NULL,
						shard_cost INTEGER NOT NULL
					)`,
					`CREATE TABLE tiered_spell_next_tiers (
						filename TEXT NOT NULL REFERENCES spell_cards(filename),
						position INTEGER NOT NULL,
						spell_name TEXT NOT NULL,
						PRIMARY KEY (filename, position)
					)`,
					`CREATE TABLE cantrips_spell_data (
						filename TEXT NOT NULL PRIMARY KEY REFERENCES spell_cards(filename),
						cantrips_spell_effect INTEGER NOT NULL,
						cantrips_spell_image_index INTEGER NOT NULL,
						cantrips_spell_image_name TEXT NOT NULL,
						cantrips_spell_type INTEGER NOT NULL,
						cooldown_seconds INTEGER NOT NULL,
						effect_parameter TEXT NOT NULL,
						energy_cost INTEGER NOT NULL,
						sound_effect_gain REAL NOT NULL,
						sound_effect_name TEXT NOT NULL
					)`,
					`CREATE TABLE cantrips_animation_names (
						filename TEXT NOT NULL REFERENCES spell_cards(filename),
						position INTEGER NOT NULL,
						value TEXT NOT NULL,
						PRIMARY KEY (filename, position)
					)`,
					`CREATE TABLE castle_magic_spell_data (
						filename TEXT NOT NULL PRIMARY KEY REFERENCES spell_cards(filename),
						animation_kfm TEXT NOT NULL,
						animation_sequence TEXT NOT NULL,
						castle_magic_spell_effect INTEGER NOT NULL,
						castle_magic_spell_type INTEGER NOT NULL,
						effect_school TEXT NOT NULL
					)`,
					`CREATE TABLE fishing_spell_data (
						filename TEXT NOT NULL PRIMARY KEY REFERENCES spell_cards(filename),
						animation_kfm TEXT NOT NULL,
						animation_name TEXT NOT NULL,
						energy_cost INTEGER NOT NULL,
						fishing_school_focus TEXT NOT NULL,
						fishing_spell_image_index INTEGER NOT NULL,
						fishing_spell_image_name TEXT NOT NULL,
						fishing_spell_type INTEGER NOT NULL,
						sound_effect_gain REAL NOT NULL,
						sound_effect_name TEXT NOT NULL
					)`,
					`CREATE TABLE garden_spell_data (
						filename TEXT NOT NULL PRIMARY KEY REFERENCES spell_cards(filename),
						affected_radius INTEGER NOT NULL,
						animation_kfm TEXT NOT NULL,
						animation_name TEXT NOT NULL,
						animation_name_large TEXT NOT NULL,
						animation_name_small TEXT NOT NULL,
						bug_zap_level INTEGER NOT NULL,
						energy_cost INTEGER NOT NULL,
						garden_spell_image_index INTEGER NOT NULL,
						garden_spell_image_name TEXT NOT NULL,
						garden_spell_type INTEGER NOT NULL,
						protection_template_id INTEGER NOT NULL,
						provides_magic INTEGER NOT NULL,
						provides_music INTEGER NOT NULL,
						provides_pollination INTEGER NOT NULL,
						provides_sun INTEGER NOT NULL,
						provides_water INTEGER NOT NULL,
						soil_template_id INTEGER NOT NULL,
						sound_effect_gain REAL NOT NULL,
						sound_effect_name TEXT NOT NULL,
						utility_spell_type INTEGER NOT NULL,
						y_offset REAL NOT NULL
					)`,
					`CREATE TABLE whirlyburly_spell_data (
						filename TEXT NOT NULL PRIMARY KEY REFERENCES spell_cards(filename),
						special_units TEXT NOT NULL,
						unit_movement TEXT NOT NULL
					)`,
				},
			},
			{
				DB:          db.db,
				Description: "Effect tree and requirement tables",
				Version:     2,
				Action: migrate.SQL{
					`CREATE TABLE spell_effects (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						filename TEXT NOT NULL REFERENCES spell_cards(filename),
						parent_effect_id INTEGER REFERENCES spell_effects(id),
						position INTEGER NOT NULL,
						kind TEXT NOT NULL,
						act INTEGER NOT NULL,
						act_num INTEGER NOT NULL,
						armor_piercing_param INTEGER NOT NULL,
						bypass_protection INTEGER NOT NULL,
						chance_per_target INTEGER NOT NULL,
						cloaked INTEGER NOT NULL,
						converted INTEGER NOT NULL,
						damage_type INTEGER NOT NULL,
						damage_type_name TEXT NOT NULL,
						disposition INTEGER NOT NULL,
						effect_param INTEGER NOT NULL,
						effect_target INTEGER NOT NULL,
						effect_type INTEGER NOT NULL,
						enchantment_spell_template_id INTEGER NOT NULL,
						heal_modifier REAL NOT NULL,
						num_rounds INTEGER NOT NULL,
						param_per_round INTEGER NOT NULL,
						pip_num INTEGER NOT NULL,
						protected INTEGER NOT NULL,
						rank INTEGER NOT NULL,
						spell_template_id INTEGER NOT NULL
					)`,
					`CREATE INDEX spell_effects_filename ON spell_effects(filename)`,
					`CREATE INDEX spell_effects_parent ON spell_effects(parent_effect_id)`,
					`CREATE TABLE delay_spell_effects (
						effect_id INTEGER NOT NULL PRIMARY KEY REFERENCES spell_effects(id),
						damage INTEGER NOT NULL,
						rounds INTEGER NOT NULL,
						spell_delayed_template_id INTEGER NOT NULL,
						spell_delayed_template_damage_id INTEGER NOT NULL,
						spell_enchanter_template_id INTEGER NOT NULL,
						spell_hits INTEGER NOT NULL
					)`,
					`CREATE TABLE delay_spell_target_subcircles (
						effect_id INTEGER NOT NULL REFERENCES spell_effects(id),
						position INTEGER NOT NULL,
						subcircle INTEGER NOT NULL,
						PRIMARY KEY (effect_id, position)
					)`,
					`CREATE TABLE shadow_spell_effects (
						effect_id INTEGER NOT NULL PRIMARY KEY REFERENCES spell_effects(id),
						shadow_type INTEGER NOT NULL
					)`,
					`CREATE TABLE hanging_conversion_spell_effects (
						effect_id INTEGER NOT NULL PRIMARY KEY REFERENCES spell_effects(id),
						hanging_effect_type INTEGER NOT NULL,
						output_selector INTEGER NOT NULL,
						min_effect_value INTEGER NOT NULL,
						max_effect_value INTEGER NOT NULL,
						min_effect_count INTEGER NOT NULL,
						max_effect_count INTEGER NOT NULL,
						not_damage_type INTEGER NOT NULL,
						scale_source_effect_value INTEGER NOT NULL,
						source_effect_value_percent REAL NOT NULL,
						apply_to_effect_source INTEGER NOT NULL
					)`,
					`CREATE TABLE hanging_conversion_specific_types (
						effect_id INTEGER NOT NULL REFERENCES spell_effects(id),
						position INTEGER NOT NULL,
						effect_type INTEGER NOT NULL,
						PRIMARY KEY (effect_id, position)
					)`,
					`CREATE TABLE count_based_spell_effects (
						effect_id INTEGER NOT NULL PRIMARY KEY REFERENCES spell_effects(id),
						count_threshold INTEGER NOT NULL
					)`,
					`CREATE TABLE requirements (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						filename TEXT NOT NULL REFERENCES spell_cards(filename),
						parent_list_id INTEGER REFERENCES requirements(id),
						position INTEGER NOT NULL,
						role TEXT NOT NULL,
						kind TEXT NOT NULL,
						apply_not INTEGER NOT NULL,
						operator INTEGER NOT NULL,
						target_type INTEGER NOT NULL
					)`,
					`CREATE INDEX requirements_filename ON requirements(filename)`,
					`CREATE INDEX requirements_parent ON requirements(parent_list_id)`,
					`CREATE TABLE conditional_spell_elements (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						effect_id INTEGER NOT NULL REFERENCES spell_effects(id),
						position INTEGER NOT NULL,
						requirement_id INTEGER REFERENCES requirements(id),
						element_effect_id INTEGER REFERENCES spell_effects(id)
					)`,
					`CREATE TABLE req_magic_level (
						requirement_id INTEGER NOT NULL PRIMARY KEY REFERENCES requirements(id),
						magic_school TEXT NOT NULL,
						numeric_value REAL NOT NULL,
						operator_type INTEGER NOT NULL
					)`,
					`CREATE TABLE req_gardening_level (
						requirement_id INTEGER NOT NULL PRIMARY KEY REFERENCES requirements(id),
						numeric_value REAL NOT NULL,
						operator_type INTEGER NOT NULL
					)`,
					`CREATE TABLE req_has_badge (
						requirement_id INTEGER NOT NULL PRIMARY KEY REFERENCES requirements(id),
						badge_name TEXT NOT NULL
					)`,
					`CREATE TABLE req_is_school (
						requirement_id INTEGER NOT NULL PRIMARY KEY REFERENCES requirements(id),
						magic_school_name TEXT NOT NULL
					)`,
					`CREATE TABLE req_school_of_focus (
						requirement_id INTEGER NOT NULL PRIMARY KEY REFERENCES requirements(id),
						magic_school_name TEXT NOT NULL
					)`,
					`CREATE TABLE req_pip_count (
						requirement_id INTEGER NOT NULL PRIMARY KEY REFERENCES requirements(id),
						min_pips INTEGER NOT NULL,
						max_pips INTEGER NOT NULL
					)`,
					`CREATE TABLE req_shadow_pip_count (
						requirement_id INTEGER NOT NULL PRIMARY KEY REFERENCES requirements(id),
						min_pips INTEGER NOT NULL,
						max_pips INTEGER NOT NULL
					)`,
					`CREATE TABLE req_combat_health (
						requirement_id INTEGER NOT NULL PRIMARY KEY REFERENCES requirements(id),
						min_percent REAL NOT NULL,
						max_percent REAL NOT NULL
					)`,
					`CREATE TABLE req_combat_status (
						requirement_id INTEGER NOT NULL PRIMARY KEY REFERENCES requirements(id),
						combat_status INTEGER NOT NULL
					)`,
					`CREATE TABLE req_minion (
						requirement_id INTEGER NOT NULL PRIMARY KEY REFERENCES requirements(id),
						min_count INTEGER NOT NULL,
						max_count INTEGER NOT NULL
					)`,
					`CREATE TABLE req_has_entry (
						requirement_id INTEGER NOT NULL PRIMARY KEY REFERENCES requirements(id),
						entry_name TEXT NOT NULL
					)`,
					`CREATE TABLE req_hanging (
						requirement_id INTEGER NOT NULL PRIMARY KEY REFERENCES requirements(id),
						disposition INTEGER NOT NULL,
						min_count INTEGER NOT NULL,
						max_count INTEGER NOT NULL
					)`,
					`CREATE TABLE req_hanging_effect_type (
						requirement_id INTEGER NOT NULL PRIMARY KEY REFERENCES requirements(id),
						effect_type INTEGER NOT NULL,
						min_count INTEGER NOT NULL,
						max_count INTEGER NOT NULL
					)`,
				},
			},
			{
				DB:          db.db,
				Description: "Diagnostics and run bookkeeping",
				Version:     3,
				Action: migrate.SQL{
					`CREATE TABLE duplicate_log (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						filename TEXT NOT NULL,
						duplicate_type TEXT NOT NULL,
						error_message TEXT NOT NULL,
						incoming_snapshot TEXT NOT NULL,
						existing_snapshot TEXT NOT NULL,
						diff TEXT NOT NULL,
						detected_at TIMESTAMP NOT NULL
					)`,
					`CREATE TABLE skip_log (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						filename TEXT NOT NULL,
						reason TEXT NOT NULL,
						type_hash INTEGER NOT NULL,
						field_path TEXT NOT NULL,
						detail TEXT NOT NULL,
						raw_snapshot TEXT NOT NULL,
						created_at TIMESTAMP NOT NULL
					)`,
					`CREATE TABLE process_runs (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						revision TEXT NOT NULL,
						started_at TIMESTAMP NOT NULL,
						finished_at TIMESTAMP NOT NULL,
						processed INTEGER NOT NULL,
						inserted INTEGER NOT NULL,
						duplicates INTEGER NOT NULL,
						failed INTEGER NOT NULL,
						skipped INTEGER NOT NULL,
						source_dir TEXT NOT NULL,
						types_path TEXT NOT NULL
					)`,
				},
			},
		},
	}
}
