package config

import (
	"math"

	"github.com/udisondev/elemental/internal/element"
	"github.com/udisondev/elemental/internal/game/damage"
	"github.com/udisondev/elemental/internal/game/engine"
	"github.com/udisondev/elemental/internal/game/nature"
	"github.com/udisondev/elemental/internal/game/pointroll"
	"github.com/udisondev/elemental/internal/game/scorched"
	"github.com/udisondev/elemental/internal/game/steam"
	"github.com/udisondev/elemental/internal/game/wetness"
)

// Params converts the config into engine tunables. Call Normalize first.
func (c *Engine) Params() *engine.Params {
	tps := max(c.TicksPerSecond, 1)
	ticks := func(seconds float64) int { return secondsToTicks(seconds, tps) }

	strong := make([]element.Pair, 0, len(c.Restraint.Strong))
	for _, p := range c.Restraint.Strong {
		strong = append(strong, element.Pair{Attacker: p.Attacker, Defender: p.Defender})
	}

	var tiers pointroll.Tiers
	if validTiers(c.Points.Tiers) {
		copy(tiers[:], c.Points.Tiers)
	} else {
		tiers = pointroll.DefaultTiers()
	}

	return &engine.Params{
		TicksPerSecond:        tps,
		WetnessSampleInterval: max(c.WetnessSampleTicks, 1),
		SteamSampleInterval:   max(c.SteamSampleTicks, 1),
		CompactInterval:       ticks(c.CompactIntervalSeconds),

		MaxTotalPoints: c.Points.MaxTotal,
		PointsStep:     max(c.Points.Step, 1),
		Tiers:          tiers,

		Damage: damage.Params{
			DamageMultiplier:         c.Damage.DamageMultiplier,
			ResistanceMultiplier:     c.Damage.ResistanceMultiplier,
			StrengthPerHalfDamage:    c.Damage.StrengthPerHalfDamage,
			ResistPerHalfReduction:   c.Damage.ResistPerHalfReduction,
			RestraintFloorRatio:      c.Damage.RestraintFloorRatio,
			WetFireReductionPerLevel: c.Wetness.FireReductionPerLevel,
			WetChargedBonusPerLevel:  c.Wetness.ChargedBonusPerLevel,
			Restraint: element.NewRestraintTable(
				strong, c.Restraint.StrongMultiplier, c.Restraint.WeakMultiplier,
			),
		},
		Wetness: wetness.Params{
			MaxLevel:           c.Wetness.MaxLevel,
			ShallowRatio:       c.Wetness.ShallowRatio,
			RainGainTicks:      ticks(c.Wetness.RainGainSeconds),
			DecayBaseTicks:     ticks(c.Wetness.DecayBaseSeconds),
			SplashIncrement:    c.Wetness.SplashIncrement,
			PausedDisplayTicks: ticks(c.Wetness.PausedDisplaySeconds),
		},
		Scorched: scorched.Params{
			TicksPerSecond:      tps,
			BaseDamage:          c.Scorched.BaseDamage,
			ScalingStep:         c.Scorched.ScalingStep,
			CooldownTicks:       ticks(c.Scorched.CooldownSeconds),
			FireImmuneFactor:    c.Scorched.FireImmuneFactor,
			NatureVulnerability: c.Scorched.NatureVulnerability,
			FireProtPerLevel:    c.Scorched.FireProtPerLevel,
			FireProtMax:         c.Scorched.FireProtMax,
			GeneralProtPerLevel: c.Scorched.GeneralProtPerLevel,
			GeneralProtMax:      c.Scorched.GeneralProtMax,
			ImmunityThreshold:   c.Scorched.ImmunityThreshold,
		},
		Nature: nature.Params{
			WildfireThreshold:      c.Nature.WildfireThreshold,
			WildfireDurationTicks:  ticks(c.Nature.WildfireDurationSeconds),
			WildfireCooldownTicks:  ticks(c.Nature.WildfireCooldownSeconds),
			HealPerLayer:           c.Nature.HealPerLayer,
			ParasiticCooldownTicks: ticks(c.Nature.ParasiticCooldownSeconds),
			InfectionBonus:         c.Nature.InfectionBonus,
		},
		Trigger: steam.TriggerParams{
			SelfDryingPenaltyRatio: c.Steam.SelfDryingPenaltyRatio,
			DryingThreshold:        c.Steam.DryingThreshold,
			FireTriggerThreshold:   c.Steam.FireTriggerThreshold,
			FrostTriggerThreshold:  c.Steam.FrostTriggerThreshold,
			CondensationStepCold:   c.Steam.CondensationStepCold,
			CondensationStepHot:    c.Steam.CondensationStepHot,
		},
		SelfDryingCooldownTicks: ticks(c.Steam.SelfDryingCooldownSeconds),
		Clouds: steam.CloudParams{
			HighBaseRadius:       c.Steam.HighBaseRadius,
			HighRadiusPerLevel:   c.Steam.HighRadiusPerLevel,
			LowRadius:            c.Steam.LowRadius,
			HighBaseDuration:     ticks(c.Steam.HighBaseDurationSeconds),
			HighDurationPerLevel: ticks(c.Steam.HighDurationPerLevelSeconds),
			LowBaseDuration:      ticks(c.Steam.LowBaseDurationSeconds),
			LowDurationPerLevel:  ticks(c.Steam.LowDurationPerLevelSeconds),
		},
		Effects: steam.EffectParams{
			TicksPerSecond:         tps,
			ScaldBaseDamage:        c.Steam.ScaldBaseDamage,
			ScaldScalePerLevel:     c.Steam.ScaldScalePerLevel,
			WeaknessMultiplier:     c.Steam.WeaknessMultiplier,
			CondensationDelayTicks: ticks(c.Steam.CondensationDelaySeconds),
		},
		Defense: steam.DefenseParams{
			EPFPerLevel:         c.Steam.Defense.EPFPerLevel,
			EPFCap:              c.Steam.Defense.EPFCap,
			FireProtPerLevel:    c.Steam.Defense.FireProtPerLevel,
			FireProtMax:         c.Steam.Defense.FireProtMax,
			GeneralProtPerLevel: c.Steam.Defense.GeneralProtPerLevel,
			GeneralProtMax:      c.Steam.Defense.GeneralProtMax,
			FloorRatio:          c.Steam.Defense.FloorRatio,
			ImmunityThreshold:   c.Steam.Defense.ImmunityThreshold,
		},

		Immunity: engine.Immunity{
			EntityTypes: toSet(c.Immunity.EntityTypes),
			Dimensions:  toSet(c.Immunity.Dimensions),
		},
	}
}

// secondsToTicks rounds to the nearest tick.
func secondsToTicks(seconds float64, tps int) int {
	if seconds <= 0 {
		return 0
	}
	return int(math.Round(seconds * float64(tps)))
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
