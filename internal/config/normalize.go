package config

import (
	"log/slog"

	"github.com/udisondev/elemental/internal/game/pointroll"
)

// Normalize clamps out-of-range values to the nearest safe one, logging a
// warning per fixed field. Returns the number of fixes.
func (c *Engine) Normalize() int {
	n := &normalizer{}

	n.minInt("ticks_per_second", &c.TicksPerSecond, 1)
	n.minInt("wetness_sample_ticks", &c.WetnessSampleTicks, 1)
	n.minInt("steam_sample_ticks", &c.SteamSampleTicks, 1)
	n.minFloat("compact_interval_seconds", &c.CompactIntervalSeconds, 0)

	d := &c.Damage
	n.minFloat("damage.damage_multiplier", &d.DamageMultiplier, 0)
	n.minFloat("damage.resistance_multiplier", &d.ResistanceMultiplier, 0)
	n.minFloat("damage.strength_per_half_damage", &d.StrengthPerHalfDamage, 1)
	n.minFloat("damage.resist_per_half_reduction", &d.ResistPerHalfReduction, 1)
	n.ratio("damage.restraint_floor_ratio", &d.RestraintFloorRatio)

	r := &c.Restraint
	n.minFloat("restraint.strong_multiplier", &r.StrongMultiplier, 1)
	n.clamp("restraint.weak_multiplier", &r.WeakMultiplier, 0.01, 1)

	w := &c.Wetness
	n.minInt("wetness.max_level", &w.MaxLevel, 1)
	n.ratio("wetness.shallow_ratio", &w.ShallowRatio)
	n.minFloat("wetness.rain_gain_seconds", &w.RainGainSeconds, 0.05)
	n.minFloat("wetness.decay_base_seconds", &w.DecayBaseSeconds, 0.05)
	n.minInt("wetness.splash_increment", &w.SplashIncrement, 0)
	n.minFloat("wetness.paused_display_seconds", &w.PausedDisplaySeconds, 0)
	n.minFloat("wetness.fire_reduction_per_level", &w.FireReductionPerLevel, 0)
	n.minFloat("wetness.charged_bonus_per_level", &w.ChargedBonusPerLevel, 0)

	s := &c.Scorched
	n.minFloat("scorched.base_damage", &s.BaseDamage, 0)
	n.minFloat("scorched.scaling_step", &s.ScalingStep, 1)
	n.minFloat("scorched.cooldown_seconds", &s.CooldownSeconds, 0)
	n.minFloat("scorched.fire_immune_factor", &s.FireImmuneFactor, 0)
	n.minFloat("scorched.nature_vulnerability", &s.NatureVulnerability, 0)
	n.minFloat("scorched.fire_prot_per_level", &s.FireProtPerLevel, 0)
	n.ratio("scorched.fire_prot_max", &s.FireProtMax)
	n.minFloat("scorched.general_prot_per_level", &s.GeneralProtPerLevel, 0)
	n.ratio("scorched.general_prot_max", &s.GeneralProtMax)

	st := &c.Steam
	n.ratio("steam.self_drying_penalty_ratio", &st.SelfDryingPenaltyRatio)
	n.minFloat("steam.self_drying_cooldown_seconds", &st.SelfDryingCooldownSeconds, 0)
	n.minInt("steam.drying_threshold", &st.DryingThreshold, 1)
	n.minInt("steam.fire_trigger_threshold", &st.FireTriggerThreshold, 0)
	n.minInt("steam.frost_trigger_threshold", &st.FrostTriggerThreshold, 0)
	n.minInt("steam.condensation_step_cold", &st.CondensationStepCold, 1)
	n.minInt("steam.condensation_step_hot", &st.CondensationStepHot, 1)
	n.minFloat("steam.high_base_radius", &st.HighBaseRadius, 0)
	n.minFloat("steam.high_radius_per_level", &st.HighRadiusPerLevel, 0)
	n.minFloat("steam.low_radius", &st.LowRadius, 0)
	n.minFloat("steam.high_base_duration_seconds", &st.HighBaseDurationSeconds, 0.05)
	n.minFloat("steam.high_duration_per_level_seconds", &st.HighDurationPerLevelSeconds, 0)
	n.minFloat("steam.low_base_duration_seconds", &st.LowBaseDurationSeconds, 0.05)
	n.minFloat("steam.low_duration_per_level_seconds", &st.LowDurationPerLevelSeconds, 0)
	n.minFloat("steam.scald_base_damage", &st.ScaldBaseDamage, 0)
	n.minFloat("steam.scald_scale_per_level", &st.ScaldScalePerLevel, 0)
	n.minFloat("steam.weakness_multiplier", &st.WeaknessMultiplier, 0)
	n.minFloat("steam.condensation_delay_seconds", &st.CondensationDelaySeconds, 0.05)

	df := &st.Defense
	n.minFloat("steam.defense.epf_per_level", &df.EPFPerLevel, 0)
	n.minInt("steam.defense.epf_cap", &df.EPFCap, 0)
	n.minFloat("steam.defense.fire_prot_per_level", &df.FireProtPerLevel, 0)
	n.ratio("steam.defense.fire_prot_max", &df.FireProtMax)
	n.minFloat("steam.defense.general_prot_per_level", &df.GeneralProtPerLevel, 0)
	n.ratio("steam.defense.general_prot_max", &df.GeneralProtMax)
	n.ratio("steam.defense.floor_ratio", &df.FloorRatio)

	nt := &c.Nature
	n.minFloat("nature.wildfire_duration_seconds", &nt.WildfireDurationSeconds, 0.05)
	n.minFloat("nature.wildfire_cooldown_seconds", &nt.WildfireCooldownSeconds, 0)
	n.minFloat("nature.heal_per_layer", &nt.HealPerLayer, 0)
	n.minFloat("nature.parasitic_cooldown_seconds", &nt.ParasiticCooldownSeconds, 0)
	n.minFloat("nature.infection_bonus", &nt.InfectionBonus, 0)

	p := &c.Points
	n.minInt("points.per_level", &p.PerLevel, 1)
	n.minInt("points.max_total", &p.MaxTotal, 0)
	n.minInt("points.step", &p.Step, 1)
	if !validTiers(p.Tiers) {
		def := pointroll.DefaultTiers()
		slog.Warn("config value out of range", "field", "points.tiers", "value", p.Tiers, "using", def[:])
		p.Tiers = def[:]
		n.fixed++
	}

	n.ratio("random_rolls.chance", &c.RandomRolls.Chance)
	n.minFloat("database.autosave_seconds", &c.Database.AutosaveSeconds, 0)

	return n.fixed
}

func validTiers(tiers []float64) bool {
	if len(tiers) != pointroll.TierCount {
		return false
	}
	var sum float64
	for _, w := range tiers {
		if w < 0 {
			return false
		}
		sum += w
	}
	return sum > 0
}

type normalizer struct {
	fixed int
}

func (n *normalizer) warn(field string, value, using any) {
	slog.Warn("config value out of range", "field", field, "value", value, "using", using)
	n.fixed++
}

func (n *normalizer) minInt(field string, v *int, lo int) {
	if *v < lo {
		n.warn(field, *v, lo)
		*v = lo
	}
}

func (n *normalizer) minFloat(field string, v *float64, lo float64) {
	if *v < lo {
		n.warn(field, *v, lo)
		*v = lo
	}
}

func (n *normalizer) clamp(field string, v *float64, lo, hi float64) {
	switch {
	case *v < lo:
		n.warn(field, *v, lo)
		*v = lo
	case *v > hi:
		n.warn(field, *v, hi)
		*v = hi
	}
}

func (n *normalizer) ratio(field string, v *float64) {
	n.clamp(field, v, 0, 1)
}
